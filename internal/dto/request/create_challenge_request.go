package request

// CreateChallengeRequest 发起 1v1 挑战请求
// wager_amount 可选，发起方押注金币，胜者赢得双倍
// 使用位置:
//   - internal/handler/battle_handler.go: CreateChallengeHandler
//   - internal/service/battle/service.go: CreateChallenge
type CreateChallengeRequest struct {
	InitiatorUuid string `json:"initiator_uuid" binding:"required"`
	OpponentUuid  string `json:"opponent_uuid" binding:"required"`
	WagerAmount   int    `json:"wager_amount" binding:"min=0"`
}
