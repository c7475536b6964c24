package repository

import (
	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// battleRepository 对战实例数据访问实现
type battleRepository struct {
	db *gorm.DB
}

// NewBattleRepository 创建对战实例 Repository
func NewBattleRepository(db *gorm.DB) BattleRepository {
	return &battleRepository{db: db}
}

func (r *battleRepository) FindByUuid(uuid string) (*model.Battle, error) {
	var battle model.Battle
	if err := r.db.First(&battle, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查找对战失败, uuid: %s", uuid)
	}
	return &battle, nil
}

func (r *battleRepository) FindActiveByChad(chadUuid string) ([]model.Battle, error) {
	var battles []model.Battle
	err := r.db.Where("(initiator_uuid = ? OR defender_uuid = ?) AND status IN ?",
		chadUuid, chadUuid, []string{model.BattleStatusPending, model.BattleStatusInProgress}).
		Order("created_at DESC").
		Find(&battles).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找进行中对战失败, chad_uuid: %s", chadUuid)
	}
	return battles, nil
}

func (r *battleRepository) Create(battle *model.Battle) error {
	if err := r.db.Create(battle).Error; err != nil {
		return wrapDBErrorf(err, "创建对战失败, initiator_uuid: %s", battle.InitiatorUuid)
	}
	return nil
}

func (r *battleRepository) Update(battle *model.Battle) error {
	if err := r.db.Save(battle).Error; err != nil {
		return wrapDBErrorf(err, "更新对战失败, uuid: %s", battle.Uuid)
	}
	return nil
}
