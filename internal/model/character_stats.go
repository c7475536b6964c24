package model

import (
	"gorm.io/gorm"
)

// CharacterStats 角色当前总属性表
// 四个维度均为含装备与同伴加成后的总值，由外部角色服务维护；
// 本引擎只读，不参与属性计算
type CharacterStats struct {
	gorm.Model
	ChadUuid   string `gorm:"type:char(40);uniqueIndex;not null;comment:角色ID"`
	Power      int    `gorm:"default:0;comment:力量"`
	Aggression int    `gorm:"default:0;comment:攻击性"`
	Resistance int    `gorm:"default:0;comment:抗性"`
	Style      int    `gorm:"default:0;comment:风度"`
}

func (CharacterStats) TableName() string {
	return "character_stats"
}
