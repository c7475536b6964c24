package respond

import "cabal_battles_server/internal/model"

// BattleRespond 对战详情响应
// 使用位置:
//   - internal/service/battle/service.go: GetBattle, PerformAction
type BattleRespond struct {
	Uuid          string                 `json:"uuid"`
	Type          string                 `json:"type"`
	Status        string                 `json:"status"`
	InitiatorUuid string                 `json:"initiator_uuid"`
	DefenderUuid  string                 `json:"defender_uuid"`
	WagerAmount   int                    `json:"wager_amount"`
	CurrentTurn   int                    `json:"current_turn"`
	TurnCount     int                    `json:"turn_count"`
	WinnerUuid    string                 `json:"winner_uuid,omitempty"`
	RewardCoins   int                    `json:"reward_coins"`
	BattleLog     []model.BattleLogEntry `json:"battle_log"`
	StartedAt     string                 `json:"started_at,omitempty"`
	CompletedAt   string                 `json:"completed_at,omitempty"`
}
