package model

import (
	"gorm.io/gorm"
)

// Referral 推荐记录表
// (referrer, referred) 对唯一，推荐奖励按此幂等：同一人推荐同一人只发一次
type Referral struct {
	gorm.Model
	CabalUuid    string `gorm:"type:char(20);index;not null;comment:公会ID"`
	ReferrerUuid string `gorm:"type:char(40);index:idx_referral_pair,unique;not null;comment:推荐人角色ID"`
	ReferredUuid string `gorm:"type:char(40);index:idx_referral_pair,unique;not null;comment:被推荐人角色ID"`
}

func (Referral) TableName() string {
	return "referrals"
}
