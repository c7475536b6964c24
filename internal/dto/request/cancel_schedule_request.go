package request

// CancelScheduleRequest 取消对战排期请求
// 使用位置:
//   - internal/handler/scheduler_handler.go: CancelScheduleHandler
//   - internal/service/scheduler/service.go: CancelSchedule
type CancelScheduleRequest struct {
	LeaderUuid   string `json:"leader_uuid" binding:"required"`
	ScheduleUuid string `json:"schedule_uuid" binding:"required"`
}
