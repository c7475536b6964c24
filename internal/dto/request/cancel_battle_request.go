package request

// CancelBattleRequest 取消对战请求（拒绝挑战）
// 使用位置:
//   - internal/handler/battle_handler.go: CancelBattleHandler
//   - internal/service/battle/service.go: Cancel
type CancelBattleRequest struct {
	ChadUuid   string `json:"chad_uuid" binding:"required"`
	BattleUuid string `json:"battle_uuid" binding:"required"`
}
