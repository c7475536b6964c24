package request

// DisbandCabalRequest 解散公会请求
// 使用位置:
//   - internal/handler/cabal_handler.go: DisbandCabalHandler
//   - internal/service/membership/service.go: Disband
type DisbandCabalRequest struct {
	LeaderUuid string `json:"leader_uuid" binding:"required"`
}
