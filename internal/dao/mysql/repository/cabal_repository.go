package repository

import (
	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// cabalRepository 公会数据访问实现
type cabalRepository struct {
	db *gorm.DB
}

// NewCabalRepository 创建公会 Repository
func NewCabalRepository(db *gorm.DB) CabalRepository {
	return &cabalRepository{db: db}
}

func (r *cabalRepository) FindByUuid(uuid string) (*model.Cabal, error) {
	var cabal model.Cabal
	if err := r.db.First(&cabal, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查找公会失败, uuid: %s", uuid)
	}
	return &cabal, nil
}

func (r *cabalRepository) FindByName(name string) (*model.Cabal, error) {
	var cabal model.Cabal
	if err := r.db.First(&cabal, "name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "查找公会失败, name: %s", name)
	}
	return &cabal, nil
}

func (r *cabalRepository) FindByInviteCode(code string) (*model.Cabal, error) {
	var cabal model.Cabal
	if err := r.db.First(&cabal, "invite_code = ?", code).Error; err != nil {
		return nil, wrapDBErrorf(err, "查找公会失败, invite_code: %s", code)
	}
	return &cabal, nil
}

func (r *cabalRepository) FindActive() ([]model.Cabal, error) {
	var cabals []model.Cabal
	if err := r.db.Where("status = ?", model.CabalStatusNormal).Find(&cabals).Error; err != nil {
		return nil, wrapDBError(err, "查找公会列表失败")
	}
	return cabals, nil
}

func (r *cabalRepository) GetLeaderboard(limit int) ([]model.Cabal, error) {
	var cabals []model.Cabal
	err := r.db.Where("status = ?", model.CabalStatusNormal).
		Order("level DESC, xp DESC, battles_won DESC").
		Limit(limit).
		Find(&cabals).Error
	if err != nil {
		return nil, wrapDBError(err, "查找公会排行榜失败")
	}
	return cabals, nil
}

func (r *cabalRepository) Create(cabal *model.Cabal) error {
	if err := r.db.Create(cabal).Error; err != nil {
		return wrapDBErrorf(err, "创建公会失败, name: %s", cabal.Name)
	}
	return nil
}

func (r *cabalRepository) Update(cabal *model.Cabal) error {
	if err := r.db.Save(cabal).Error; err != nil {
		return wrapDBErrorf(err, "更新公会失败, uuid: %s", cabal.Uuid)
	}
	return nil
}

func (r *cabalRepository) UpdateLeader(uuid, leaderId string) error {
	err := r.db.Model(&model.Cabal{}).Where("uuid = ?", uuid).
		Update("leader_id", leaderId).Error
	if err != nil {
		return wrapDBErrorf(err, "更新公会会长失败, uuid: %s", uuid)
	}
	return nil
}

func (r *cabalRepository) UpdateTotalPower(uuid string, power int) error {
	err := r.db.Model(&model.Cabal{}).Where("uuid = ?", uuid).
		Update("total_power", power).Error
	if err != nil {
		return wrapDBErrorf(err, "更新公会战力失败, uuid: %s", uuid)
	}
	return nil
}

func (r *cabalRepository) IncrementMemberCount(uuid string) error {
	err := r.db.Model(&model.Cabal{}).Where("uuid = ?", uuid).
		Update("member_cnt", gorm.Expr("member_cnt + 1")).Error
	if err != nil {
		return wrapDBErrorf(err, "更新公会成员数失败, uuid: %s", uuid)
	}
	return nil
}

func (r *cabalRepository) DecrementMemberCountBy(uuid string, count int) error {
	err := r.db.Model(&model.Cabal{}).Where("uuid = ? AND member_cnt >= ?", uuid, count).
		Update("member_cnt", gorm.Expr("member_cnt - ?", count)).Error
	if err != nil {
		return wrapDBErrorf(err, "更新公会成员数失败, uuid: %s", uuid)
	}
	return nil
}

func (r *cabalRepository) AddBattleResult(uuid string, won, lost int) error {
	updates := map[string]interface{}{
		"battles_won":  gorm.Expr("battles_won + ?", won),
		"battles_lost": gorm.Expr("battles_lost + ?", lost),
	}
	err := r.db.Model(&model.Cabal{}).Where("uuid = ?", uuid).Updates(updates).Error
	if err != nil {
		return wrapDBErrorf(err, "更新公会战绩失败, uuid: %s", uuid)
	}
	return nil
}

func (r *cabalRepository) SetStatus(uuid string, status int8) error {
	err := r.db.Model(&model.Cabal{}).Where("uuid = ?", uuid).
		Update("status", status).Error
	if err != nil {
		return wrapDBErrorf(err, "更新公会状态失败, uuid: %s", uuid)
	}
	return nil
}
