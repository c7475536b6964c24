package repository

import (
	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// characterStatsRepository 角色属性数据访问实现
type characterStatsRepository struct {
	db *gorm.DB
}

// NewCharacterStatsRepository 创建角色属性 Repository
func NewCharacterStatsRepository(db *gorm.DB) CharacterStatsRepository {
	return &characterStatsRepository{db: db}
}

func (r *characterStatsRepository) FindByChad(chadUuid string) (*model.CharacterStats, error) {
	var stats model.CharacterStats
	if err := r.db.First(&stats, "chad_uuid = ?", chadUuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查找角色属性失败, chad_uuid: %s", chadUuid)
	}
	return &stats, nil
}

func (r *characterStatsRepository) Upsert(stats *model.CharacterStats) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chad_uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"power", "aggression", "resistance", "style", "updated_at",
		}),
	}).Create(stats).Error
	if err != nil {
		return wrapDBErrorf(err, "写入角色属性失败, chad_uuid: %s", stats.ChadUuid)
	}
	return nil
}
