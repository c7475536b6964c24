package repository

import (
	"time"

	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// cabalBattleRepository 公会对战排期数据访问实现
type cabalBattleRepository struct {
	db *gorm.DB
}

// NewCabalBattleRepository 创建公会对战排期 Repository
func NewCabalBattleRepository(db *gorm.DB) CabalBattleRepository {
	return &cabalBattleRepository{db: db}
}

func (r *cabalBattleRepository) FindByUuid(uuid string) (*model.CabalBattle, error) {
	var battle model.CabalBattle
	if err := r.db.First(&battle, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查找对战排期失败, uuid: %s", uuid)
	}
	return &battle, nil
}

func (r *cabalBattleRepository) FindUpcomingByCabal(cabalUuid string) ([]model.CabalBattle, error) {
	var battles []model.CabalBattle
	err := r.db.Where("cabal_uuid = ? AND completed = ? AND cancelled = ?", cabalUuid, false, false).
		Order("scheduled_at ASC").
		Find(&battles).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找对战排期列表失败, cabal_uuid: %s", cabalUuid)
	}
	return battles, nil
}

func (r *cabalBattleRepository) CountOpenByWeek(cabalUuid string, weekNumber int) (int64, error) {
	var count int64
	err := r.db.Model(&model.CabalBattle{}).
		Where("cabal_uuid = ? AND week_number = ? AND completed = ? AND cancelled = ?",
			cabalUuid, weekNumber, false, false).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计本周对战数失败, cabal_uuid: %s", cabalUuid)
	}
	return count, nil
}

func (r *cabalBattleRepository) FindStalePending(cutoff time.Time) ([]model.CabalBattle, error) {
	var battles []model.CabalBattle
	err := r.db.Where("scheduled_at < ? AND completed = ? AND cancelled = ?", cutoff, false, false).
		Find(&battles).Error
	if err != nil {
		return nil, wrapDBError(err, "查找过期排期失败")
	}
	return battles, nil
}

func (r *cabalBattleRepository) Create(battle *model.CabalBattle) error {
	if err := r.db.Create(battle).Error; err != nil {
		return wrapDBErrorf(err, "创建对战排期失败, cabal_uuid: %s", battle.CabalUuid)
	}
	return nil
}

func (r *cabalBattleRepository) Update(battle *model.CabalBattle) error {
	if err := r.db.Save(battle).Error; err != nil {
		return wrapDBErrorf(err, "更新对战排期失败, uuid: %s", battle.Uuid)
	}
	return nil
}
