package request

// OptInRequest 报名参加公会对战请求
// 使用位置:
//   - internal/handler/scheduler_handler.go: OptInHandler
//   - internal/service/scheduler/service.go: OptIn
type OptInRequest struct {
	ChadUuid     string `json:"chad_uuid" binding:"required"`
	ScheduleUuid string `json:"schedule_uuid" binding:"required"`
}
