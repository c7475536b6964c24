package request

// SpendCoinRequest 公会金库消费请求
// 使用位置:
//   - internal/handler/cabal_handler.go: SpendCoinHandler
//   - internal/service/membership/service.go: SpendCoin
type SpendCoinRequest struct {
	LeaderUuid string `json:"leader_uuid" binding:"required"`
	Amount     int    `json:"amount" binding:"required,min=1"`
	Reason     string `json:"reason" binding:"required,max=100"`
}
