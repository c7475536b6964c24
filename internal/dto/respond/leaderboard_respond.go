package respond

// LeaderboardRespond 公会排行榜条目响应
// 使用位置:
//   - internal/service/leaderboard/service.go: GetLeaderboard
type LeaderboardRespond struct {
	Rank        int    `json:"rank"`
	CabalUuid   string `json:"cabal_uuid"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Xp          int    `json:"xp"`
	TotalPower  int    `json:"total_power"`
	BattlesWon  int    `json:"battles_won"`
	BattlesLost int    `json:"battles_lost"`
}
