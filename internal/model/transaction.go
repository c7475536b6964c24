package model

import (
	"gorm.io/gorm"
)

// 账本流水类型
const (
	TxBattleReward  = "battle_reward"  // 对战胜利金币奖励
	TxReferralBonus = "referral_bonus" // 推荐奖励
	TxLevelUpBonus  = "level_up_bonus" // 公会升级金库奖励
	TxWagerStake    = "wager_stake"    // 赌注冻结
	TxExperience    = "experience"     // 经验发放
	TxTreasurySpend = "treasury_spend" // 公会金库消费
)

// Transaction 账本流水表
// 每次 Credit/Debit/AwardExperience 写入一行，reason 为可审计的原因描述；
// flow_id 使用雪花 ID 保证单调有序
type Transaction struct {
	gorm.Model
	FlowId      int64  `gorm:"uniqueIndex;not null;comment:流水号（雪花ID）"`
	AccountUuid string `gorm:"type:char(40);index;not null;comment:账户（角色或公会）uuid"`
	Amount      int    `gorm:"not null;comment:变动数额，借记为负"`
	Type        string `gorm:"type:varchar(20);index;not null;comment:流水类型"`
	Reason      string `gorm:"type:varchar(255);not null;comment:原因描述"`
}

func (Transaction) TableName() string {
	return "transactions"
}
