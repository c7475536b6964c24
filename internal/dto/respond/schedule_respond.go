package respond

// ScheduleRespond 公会对战排期响应
// 使用位置:
//   - internal/service/scheduler/service.go: ScheduleBattle, GetUpcoming
type ScheduleRespond struct {
	Uuid         string `json:"uuid"`
	CabalUuid    string `json:"cabal_uuid"`
	OpponentUuid string `json:"opponent_uuid"`
	ScheduledAt  string `json:"scheduled_at"`
	WeekNumber   int    `json:"week_number"`
	Completed    bool   `json:"completed"`
	Cancelled    bool   `json:"cancelled"`
}
