package repository

import (
	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// officerRoleRepository 官员席位数据访问实现
type officerRoleRepository struct {
	db *gorm.DB
}

// NewOfficerRoleRepository 创建官员席位 Repository
func NewOfficerRoleRepository(db *gorm.DB) OfficerRoleRepository {
	return &officerRoleRepository{db: db}
}

func (r *officerRoleRepository) FindByCabalAndStat(cabalUuid, statType string) (*model.OfficerRole, error) {
	var role model.OfficerRole
	err := r.db.First(&role, "cabal_uuid = ? AND stat_type = ?", cabalUuid, statType).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找官员席位失败, cabal_uuid: %s, stat_type: %s", cabalUuid, statType)
	}
	return &role, nil
}

func (r *officerRoleRepository) FindByCabal(cabalUuid string) ([]model.OfficerRole, error) {
	var roles []model.OfficerRole
	err := r.db.Where("cabal_uuid = ?", cabalUuid).
		Order("created_at ASC, id ASC").
		Find(&roles).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找官员列表失败, cabal_uuid: %s", cabalUuid)
	}
	return roles, nil
}

func (r *officerRoleRepository) Create(role *model.OfficerRole) error {
	if err := r.db.Create(role).Error; err != nil {
		return wrapDBErrorf(err, "任命官员失败, cabal_uuid: %s, stat_type: %s",
			role.CabalUuid, role.StatType)
	}
	return nil
}

func (r *officerRoleRepository) DeleteByCabalAndStat(cabalUuid, statType string) error {
	err := r.db.Where("cabal_uuid = ? AND stat_type = ?", cabalUuid, statType).
		Delete(&model.OfficerRole{}).Error
	if err != nil {
		return wrapDBErrorf(err, "清空官员席位失败, cabal_uuid: %s, stat_type: %s", cabalUuid, statType)
	}
	return nil
}

func (r *officerRoleRepository) DeleteByCabalAndChad(cabalUuid, chadUuid string) error {
	err := r.db.Where("cabal_uuid = ? AND chad_uuid = ?", cabalUuid, chadUuid).
		Delete(&model.OfficerRole{}).Error
	if err != nil {
		return wrapDBErrorf(err, "撤销官员失败, cabal_uuid: %s, chad_uuid: %s", cabalUuid, chadUuid)
	}
	return nil
}

func (r *officerRoleRepository) DeleteByCabal(cabalUuid string) error {
	err := r.db.Where("cabal_uuid = ?", cabalUuid).Delete(&model.OfficerRole{}).Error
	if err != nil {
		return wrapDBErrorf(err, "清空公会官员失败, cabal_uuid: %s", cabalUuid)
	}
	return nil
}
