package request

// BattleActionRequest 对战回合动作请求
// action 取值: roast / flex / defend / special
// 使用位置:
//   - internal/handler/battle_handler.go: PerformActionHandler
//   - internal/service/battle/service.go: PerformAction
type BattleActionRequest struct {
	ChadUuid   string `json:"chad_uuid" binding:"required"`
	BattleUuid string `json:"battle_uuid" binding:"required"`
	Action     string `json:"action" binding:"required,oneof=roast flex defend special"`
}
