package respond

// CreateCabalRespond 创建公会响应
// 使用位置:
//   - internal/service/membership/service.go: CreateCabal
type CreateCabalRespond struct {
	CabalUuid  string `json:"cabal_uuid"`
	Name       string `json:"name"`
	InviteCode string `json:"invite_code"`
}
