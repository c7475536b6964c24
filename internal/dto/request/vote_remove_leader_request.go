package request

// VoteRemoveLeaderRequest 罢免会长投票请求
// 使用位置:
//   - internal/handler/governance_handler.go: VoteRemoveLeaderHandler
//   - internal/service/governance/service.go: VoteRemoveLeader
type VoteRemoveLeaderRequest struct {
	VoterUuid string `json:"voter_uuid" binding:"required"`
}
