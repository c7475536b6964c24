package respond

// CabalInfoRespond 公会详情响应
// 使用位置:
//   - internal/service/membership/service.go: GetCabalInfo
type CabalInfoRespond struct {
	Uuid        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LeaderId    string `json:"leader_id"`
	InviteCode  string `json:"invite_code"`
	Level       int    `json:"level"`
	Xp          int    `json:"xp"`
	NextLevelXp int    `json:"next_level_xp"`
	CoinBalance int    `json:"coin_balance"`
	BattlesWon  int    `json:"battles_won"`
	BattlesLost int    `json:"battles_lost"`
	MemberCnt   int    `json:"member_cnt"`
	TotalPower  int    `json:"total_power"`
	Status      int8   `json:"status"`
}
