package model

import (
	"gorm.io/gorm"
)

// RewardPayout 奖励补发队列表
// 对战已落定 completed 但账本服务调用失败时入队，由后台任务重试；
// 发放成功后置 done，保证奖励不丢也不重复
type RewardPayout struct {
	gorm.Model
	BattleUuid  string `gorm:"type:char(20);index;not null;comment:对战uuid"`
	AccountUuid string `gorm:"type:char(40);not null;comment:收款账户uuid"`
	Amount      int    `gorm:"not null;comment:金币数额"`
	Xp          int    `gorm:"default:0;comment:经验数额"`
	Reason      string `gorm:"type:varchar(255);not null;comment:原因描述"`
	Attempts    int    `gorm:"default:0;comment:已重试次数"`
	Done        bool   `gorm:"default:false;index;comment:是否已发放"`
}

func (RewardPayout) TableName() string {
	return "reward_payouts"
}
