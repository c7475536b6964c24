package respond

// OfficerListRespond 官员列表条目响应
// 使用位置:
//   - internal/service/governance/service.go: GetOfficerList
type OfficerListRespond struct {
	ChadUuid    string `json:"chad_uuid"`
	StatType    string `json:"stat_type"`
	AppointedAt string `json:"appointed_at"`
}
