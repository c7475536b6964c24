package request

// CreateCabalRequest 创建公会请求
// 使用位置:
//   - internal/handler/cabal_handler.go: CreateCabalHandler
//   - internal/service/membership/service.go: CreateCabal
type CreateCabalRequest struct {
	LeaderUuid  string `json:"leader_uuid" binding:"required"`
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"max=500"`
}
