package model

import (
	"gorm.io/gorm"
)

// LeaderVote 罢免会长投票表
// 每个投票人对同一任会长只能投一票；target_uuid 记录投票时的在任会长，
// 会长更替后旧票全部清除，票只在目标仍为会长期间有效
type LeaderVote struct {
	gorm.Model
	CabalUuid  string `gorm:"type:char(20);index;not null;comment:公会ID"`
	VoterUuid  string `gorm:"type:char(40);index;not null;comment:投票角色ID"`
	TargetUuid string `gorm:"type:char(40);not null;comment:被投票会长角色ID"`
}

func (LeaderVote) TableName() string {
	return "leader_votes"
}
