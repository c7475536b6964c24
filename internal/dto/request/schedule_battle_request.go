package request

// ScheduleBattleRequest 排期公会对战请求
// opponent_uuid 为对方公会 UUID，填 "random" 表示随机匹配
// scheduled_at 为 RFC3339 格式时间
// 使用位置:
//   - internal/handler/scheduler_handler.go: ScheduleBattleHandler
//   - internal/service/scheduler/service.go: ScheduleBattle
type ScheduleBattleRequest struct {
	LeaderUuid   string `json:"leader_uuid" binding:"required"`
	OpponentUuid string `json:"opponent_uuid" binding:"required"`
	ScheduledAt  string `json:"scheduled_at" binding:"required"`
}
