package respond

// MemberListRespond 公会成员列表条目响应
// 使用位置:
//   - internal/service/membership/service.go: GetMemberList
type MemberListRespond struct {
	ChadUuid            string `json:"chad_uuid"`
	Role                int8   `json:"role"`
	Contribution        int    `json:"contribution"`
	BattlesParticipated int    `json:"battles_participated"`
	JoinedAt            string `json:"joined_at"`
}
