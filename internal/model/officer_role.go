package model

import (
	"gorm.io/gorm"
)

// 官员席位对应的属性维度，四选一
const (
	StatPower      = "power"      // 力量
	StatAggression = "aggression" // 攻击性
	StatResistance = "resistance" // 抗性
	StatStyle      = "style"      // 风度
)

// ValidStatType 校验属性维度标签
func ValidStatType(statType string) bool {
	switch statType {
	case StatPower, StatAggression, StatResistance, StatStyle:
		return true
	}
	return false
}

// OfficerRole 官员席位表
// 每个 (公会, 属性维度) 至多一个现任；换人时旧席位软删除。
// 会长不得兼任官员；官员必须是在籍成员
type OfficerRole struct {
	gorm.Model
	CabalUuid string `gorm:"type:char(20);index;not null;comment:公会ID"`
	ChadUuid  string `gorm:"type:char(40);index;not null;comment:官员角色ID"`
	StatType  string `gorm:"type:varchar(20);not null;comment:属性维度 power/aggression/resistance/style"`
}

func (OfficerRole) TableName() string {
	return "officer_roles"
}
