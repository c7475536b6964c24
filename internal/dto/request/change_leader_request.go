package request

// ChangeLeaderRequest 会长主动移交请求
// 使用位置:
//   - internal/handler/cabal_handler.go: ChangeLeaderHandler
//   - internal/service/membership/service.go: ChangeLeader
type ChangeLeaderRequest struct {
	LeaderUuid    string `json:"leader_uuid" binding:"required"`
	NewLeaderUuid string `json:"new_leader_uuid" binding:"required"`
}
