package repository

import (
	"time"

	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// cabalMemberRepository 公会成员数据访问实现
type cabalMemberRepository struct {
	db *gorm.DB
}

// NewCabalMemberRepository 创建公会成员 Repository
func NewCabalMemberRepository(db *gorm.DB) CabalMemberRepository {
	return &cabalMemberRepository{db: db}
}

func (r *cabalMemberRepository) FindActiveByChad(chadUuid string) (*model.CabalMember, error) {
	var member model.CabalMember
	err := r.db.First(&member, "chad_uuid = ? AND is_active = ?", chadUuid, true).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找在籍成员失败, chad_uuid: %s", chadUuid)
	}
	return &member, nil
}

func (r *cabalMemberRepository) FindActiveByCabalAndChad(cabalUuid, chadUuid string) (*model.CabalMember, error) {
	var member model.CabalMember
	err := r.db.First(&member, "cabal_uuid = ? AND chad_uuid = ? AND is_active = ?",
		cabalUuid, chadUuid, true).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找公会成员失败, cabal_uuid: %s, chad_uuid: %s", cabalUuid, chadUuid)
	}
	return &member, nil
}

func (r *cabalMemberRepository) FindActiveByCabal(cabalUuid string) ([]model.CabalMember, error) {
	var members []model.CabalMember
	err := r.db.Where("cabal_uuid = ? AND is_active = ?", cabalUuid, true).
		Order("joined_at ASC, id ASC").
		Find(&members).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找公会成员列表失败, cabal_uuid: %s", cabalUuid)
	}
	return members, nil
}

func (r *cabalMemberRepository) CountActiveByCabal(cabalUuid string) (int64, error) {
	var count int64
	err := r.db.Model(&model.CabalMember{}).
		Where("cabal_uuid = ? AND is_active = ?", cabalUuid, true).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计公会成员数失败, cabal_uuid: %s", cabalUuid)
	}
	return count, nil
}

func (r *cabalMemberRepository) Create(member *model.CabalMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBErrorf(err, "创建成员记录失败, cabal_uuid: %s, chad_uuid: %s",
			member.CabalUuid, member.ChadUuid)
	}
	return nil
}

func (r *cabalMemberRepository) Update(member *model.CabalMember) error {
	if err := r.db.Save(member).Error; err != nil {
		return wrapDBErrorf(err, "更新成员记录失败, chad_uuid: %s", member.ChadUuid)
	}
	return nil
}

func (r *cabalMemberRepository) DeactivateByCabal(cabalUuid string, leftAt time.Time) error {
	updates := map[string]interface{}{
		"is_active": false,
		"left_at":   leftAt,
	}
	err := r.db.Model(&model.CabalMember{}).
		Where("cabal_uuid = ? AND is_active = ?", cabalUuid, true).
		Updates(updates).Error
	if err != nil {
		return wrapDBErrorf(err, "批量离会失败, cabal_uuid: %s", cabalUuid)
	}
	return nil
}
