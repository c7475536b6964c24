package model

import (
	"gorm.io/gorm"
)

// 公会状态
const (
	CabalStatusNormal    int8 = 0 // 正常
	CabalStatusDisbanded int8 = 2 // 已解散（终态，不可恢复）
)

// Cabal 公会表
// LeaderId 指向角色（Chad）而非账号；会长必须同时是本会的在籍成员
type Cabal struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:公会唯一id"`
	Name        string `gorm:"column:name;type:varchar(50);uniqueIndex;not null;comment:公会名称"`
	Description string `gorm:"column:description;type:varchar(500);comment:公会简介"`
	LeaderId    string `gorm:"column:leader_id;type:char(40);not null;comment:会长角色uuid"`
	InviteCode  string `gorm:"column:invite_code;uniqueIndex;type:char(6);not null;comment:邀请码"`

	// 成长属性
	Level       int `gorm:"column:level;default:1;comment:等级"`
	Xp          int `gorm:"column:xp;default:0;comment:经验值"`
	CoinBalance int `gorm:"column:coin_balance;default:0;comment:金库余额"`

	// 战绩与派生统计
	BattlesWon  int `gorm:"column:battles_won;default:0;comment:累计胜场"`
	BattlesLost int `gorm:"column:battles_lost;default:0;comment:累计败场"`
	MemberCnt   int `gorm:"column:member_cnt;default:1;comment:在籍成员数"`
	TotalPower  int `gorm:"column:total_power;default:0;comment:聚合战力（派生值，定期重算）"`

	Status int8 `gorm:"column:status;default:0;comment:状态，0.正常，2.已解散"`
}

func (Cabal) TableName() string {
	return "cabals"
}

// XpForNextLevel 升到下一级所需经验
// 曲线: 1000*level + 500*(level-1)^2
func (c *Cabal) XpForNextLevel() int {
	return 1000*c.Level + 500*(c.Level-1)*(c.Level-1)
}
