package repository

import (
	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// battleParticipantRepository 对战报名数据访问实现
type battleParticipantRepository struct {
	db *gorm.DB
}

// NewBattleParticipantRepository 创建对战报名 Repository
func NewBattleParticipantRepository(db *gorm.DB) BattleParticipantRepository {
	return &battleParticipantRepository{db: db}
}

func (r *battleParticipantRepository) FindByBattleAndChad(battleUuid, chadUuid string) (*model.BattleParticipant, error) {
	var participant model.BattleParticipant
	err := r.db.First(&participant, "cabal_battle_uuid = ? AND chad_uuid = ?", battleUuid, chadUuid).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找报名记录失败, battle_uuid: %s, chad_uuid: %s", battleUuid, chadUuid)
	}
	return &participant, nil
}

func (r *battleParticipantRepository) CountByBattle(battleUuid string) (int64, error) {
	var count int64
	err := r.db.Model(&model.BattleParticipant{}).
		Where("cabal_battle_uuid = ?", battleUuid).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计报名人数失败, battle_uuid: %s", battleUuid)
	}
	return count, nil
}

func (r *battleParticipantRepository) Create(participant *model.BattleParticipant) error {
	if err := r.db.Create(participant).Error; err != nil {
		return wrapDBErrorf(err, "创建报名记录失败, battle_uuid: %s, chad_uuid: %s",
			participant.CabalBattleUuid, participant.ChadUuid)
	}
	return nil
}
