package request

// RemoveOfficerRequest 撤销官员席位请求
// 使用位置:
//   - internal/handler/governance_handler.go: RemoveOfficerHandler
//   - internal/service/governance/service.go: RemoveOfficer
type RemoveOfficerRequest struct {
	LeaderUuid string `json:"leader_uuid" binding:"required"`
	StatType   string `json:"stat_type" binding:"required,oneof=power aggression resistance style"`
}
