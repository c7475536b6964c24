package request

// AppointOfficerRequest 任命官员请求
// stat_type 取值: power / aggression / resistance / style
// 使用位置:
//   - internal/handler/governance_handler.go: AppointOfficerHandler
//   - internal/service/governance/service.go: AppointOfficer
type AppointOfficerRequest struct {
	LeaderUuid string `json:"leader_uuid" binding:"required"`
	TargetUuid string `json:"target_uuid" binding:"required"`
	StatType   string `json:"stat_type" binding:"required,oneof=power aggression resistance style"`
}
