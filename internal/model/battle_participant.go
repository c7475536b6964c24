package model

import (
	"gorm.io/gorm"
)

// BattleParticipant 公会对战报名表
// (对战, 角色) 对唯一，重复报名按冲突处理
type BattleParticipant struct {
	gorm.Model
	CabalBattleUuid string `gorm:"type:char(20);index:idx_participant_pair,unique;not null;comment:公会对战ID"`
	ChadUuid        string `gorm:"type:char(40);index:idx_participant_pair,unique;not null;comment:报名角色ID"`
	CabalUuid       string `gorm:"type:char(20);index;not null;comment:所属公会ID"`
}

func (BattleParticipant) TableName() string {
	return "battle_participants"
}
