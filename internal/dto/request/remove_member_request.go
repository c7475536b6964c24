package request

// RemoveMemberRequest 会长移除成员请求
// 使用位置:
//   - internal/handler/cabal_handler.go: RemoveMemberHandler
//   - internal/service/membership/service.go: RemoveMember
type RemoveMemberRequest struct {
	LeaderUuid string `json:"leader_uuid" binding:"required"`
	TargetUuid string `json:"target_uuid" binding:"required"`
}
