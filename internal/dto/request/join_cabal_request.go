package request

// JoinCabalRequest 凭邀请码加入公会请求
// referrer_uuid 可选，填写后触发推荐奖励
// 使用位置:
//   - internal/handler/cabal_handler.go: JoinCabalHandler
//   - internal/service/membership/service.go: JoinByInviteCode
type JoinCabalRequest struct {
	ChadUuid     string `json:"chad_uuid" binding:"required"`
	InviteCode   string `json:"invite_code" binding:"required,len=6"`
	ReferrerUuid string `json:"referrer_uuid"`
}
