package respond

// VoteRespond 罢免投票结果响应
// leader_changed 为 true 时本票触发了会长更替
// 使用位置:
//   - internal/service/governance/service.go: VoteRemoveLeader
type VoteRespond struct {
	Votes         int64  `json:"votes"`
	ActiveMembers int64  `json:"active_members"`
	LeaderChanged bool   `json:"leader_changed"`
	NewLeaderUuid string `json:"new_leader_uuid,omitempty"`
}
