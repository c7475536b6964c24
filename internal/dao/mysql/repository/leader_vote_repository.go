package repository

import (
	"time"

	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// leaderVoteRepository 罢免投票数据访问实现
type leaderVoteRepository struct {
	db *gorm.DB
}

// NewLeaderVoteRepository 创建罢免投票 Repository
func NewLeaderVoteRepository(db *gorm.DB) LeaderVoteRepository {
	return &leaderVoteRepository{db: db}
}

func (r *leaderVoteRepository) FindByVoter(cabalUuid, voterUuid, targetUuid string) (*model.LeaderVote, error) {
	var vote model.LeaderVote
	err := r.db.First(&vote, "cabal_uuid = ? AND voter_uuid = ? AND target_uuid = ?",
		cabalUuid, voterUuid, targetUuid).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找投票记录失败, cabal_uuid: %s, voter_uuid: %s", cabalUuid, voterUuid)
	}
	return &vote, nil
}

func (r *leaderVoteRepository) CountValid(cabalUuid, targetUuid string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.LeaderVote{}).
		Where("cabal_uuid = ? AND target_uuid = ? AND created_at >= ?", cabalUuid, targetUuid, since).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计票数失败, cabal_uuid: %s", cabalUuid)
	}
	return count, nil
}

func (r *leaderVoteRepository) Create(vote *model.LeaderVote) error {
	if err := r.db.Create(vote).Error; err != nil {
		return wrapDBErrorf(err, "记录投票失败, cabal_uuid: %s, voter_uuid: %s",
			vote.CabalUuid, vote.VoterUuid)
	}
	return nil
}

func (r *leaderVoteRepository) DeleteByCabal(cabalUuid string) error {
	err := r.db.Where("cabal_uuid = ?", cabalUuid).Delete(&model.LeaderVote{}).Error
	if err != nil {
		return wrapDBErrorf(err, "清空公会投票失败, cabal_uuid: %s", cabalUuid)
	}
	return nil
}

func (r *leaderVoteRepository) DeleteOlderThan(cutoff time.Time) error {
	err := r.db.Where("created_at < ?", cutoff).Delete(&model.LeaderVote{}).Error
	if err != nil {
		return wrapDBError(err, "清除过期投票失败")
	}
	return nil
}
