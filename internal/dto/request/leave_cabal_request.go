package request

// LeaveCabalRequest 退出公会请求
// 使用位置:
//   - internal/handler/cabal_handler.go: LeaveCabalHandler
//   - internal/service/membership/service.go: Leave
type LeaveCabalRequest struct {
	ChadUuid string `json:"chad_uuid" binding:"required"`
}
