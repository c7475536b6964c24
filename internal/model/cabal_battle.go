package model

import (
	"time"

	"gorm.io/gorm"
)

// RandomOpponent 表示随机匹配对手的占位标识
const RandomOpponent = "random"

// CabalBattle 公会对战排期表
// 每个公会在任一 UTC 自然周内至多 3 场未完成的排期；
// week_number 按排期时间的 ISO 周编号（year*100+week）分桶
type CabalBattle struct {
	gorm.Model
	Uuid         string    `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:排期唯一id"`
	CabalUuid    string    `gorm:"type:char(20);index;not null;comment:发起公会ID"`
	OpponentUuid string    `gorm:"type:char(20);not null;comment:对手公会ID，random表示随机匹配"`
	ScheduledAt  time.Time `gorm:"index;not null;comment:约战时间"`
	WeekNumber   int       `gorm:"index;not null;comment:周编号 year*100+ISO周"`

	Completed  bool   `gorm:"default:false;index;comment:是否已完成"`
	Cancelled  bool   `gorm:"default:false;comment:是否已取消（过期或对方拒绝）"`
	Result     string `gorm:"type:varchar(20);comment:结果 win/loss/draw"`
	BattleUuid string `gorm:"type:char(20);comment:关联的对战实例uuid"`
}

func (CabalBattle) TableName() string {
	return "cabal_battles"
}

// WeekNumberOf 计算 UTC 时间所属的周编号
func WeekNumberOf(t time.Time) int {
	year, week := t.UTC().ISOWeek()
	return year*100 + week
}
