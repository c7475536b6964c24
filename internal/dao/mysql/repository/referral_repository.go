package repository

import (
	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// referralRepository 推荐记录数据访问实现
type referralRepository struct {
	db *gorm.DB
}

// NewReferralRepository 创建推荐记录 Repository
func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) FindByPair(referrerUuid, referredUuid string) (*model.Referral, error) {
	var referral model.Referral
	err := r.db.First(&referral, "referrer_uuid = ? AND referred_uuid = ?",
		referrerUuid, referredUuid).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找推荐记录失败, referrer_uuid: %s, referred_uuid: %s",
			referrerUuid, referredUuid)
	}
	return &referral, nil
}

func (r *referralRepository) Create(referral *model.Referral) error {
	if err := r.db.Create(referral).Error; err != nil {
		return wrapDBErrorf(err, "创建推荐记录失败, referrer_uuid: %s, referred_uuid: %s",
			referral.ReferrerUuid, referral.ReferredUuid)
	}
	return nil
}
