package request

// StartBattleRequest 开始对战请求（接受挑战）
// 使用位置:
//   - internal/handler/battle_handler.go: StartBattleHandler
//   - internal/service/battle/service.go: Start
type StartBattleRequest struct {
	ChadUuid   string `json:"chad_uuid" binding:"required"`
	BattleUuid string `json:"battle_uuid" binding:"required"`
}
