package repository

import (
	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// rewardPayoutRepository 奖励补发队列数据访问实现
type rewardPayoutRepository struct {
	db *gorm.DB
}

// NewRewardPayoutRepository 创建奖励补发 Repository
func NewRewardPayoutRepository(db *gorm.DB) RewardPayoutRepository {
	return &rewardPayoutRepository{db: db}
}

func (r *rewardPayoutRepository) Create(payout *model.RewardPayout) error {
	if err := r.db.Create(payout).Error; err != nil {
		return wrapDBErrorf(err, "入队补发奖励失败, battle_uuid: %s", payout.BattleUuid)
	}
	return nil
}

func (r *rewardPayoutRepository) FindPending(limit int) ([]model.RewardPayout, error) {
	var payouts []model.RewardPayout
	err := r.db.Where("done = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&payouts).Error
	if err != nil {
		return nil, wrapDBError(err, "查找待补发奖励失败")
	}
	return payouts, nil
}

func (r *rewardPayoutRepository) Update(payout *model.RewardPayout) error {
	if err := r.db.Save(payout).Error; err != nil {
		return wrapDBErrorf(err, "更新补发记录失败, id: %d", payout.ID)
	}
	return nil
}
