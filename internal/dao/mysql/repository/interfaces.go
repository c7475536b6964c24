// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository 接口定义 ====================

// CabalRepository 公会数据访问接口
type CabalRepository interface {
	// FindByUuid 根据 UUID 查找公会
	FindByUuid(uuid string) (*model.Cabal, error)
	// FindByName 根据名称精确查找公会（区分大小写）
	FindByName(name string) (*model.Cabal, error)
	// FindByInviteCode 根据邀请码查找公会
	FindByInviteCode(code string) (*model.Cabal, error)
	// FindActive 查找所有正常状态的公会
	FindActive() ([]model.Cabal, error)
	// GetLeaderboard 按等级、经验降序取前 N 个正常公会
	GetLeaderboard(limit int) ([]model.Cabal, error)
	// Create 创建公会
	Create(cabal *model.Cabal) error
	// Update 更新公会（全字段）
	Update(cabal *model.Cabal) error
	// UpdateLeader 更新会长引用
	UpdateLeader(uuid, leaderId string) error
	// UpdateTotalPower 回写聚合战力
	UpdateTotalPower(uuid string, power int) error
	// IncrementMemberCount 在籍成员数 +1
	IncrementMemberCount(uuid string) error
	// DecrementMemberCountBy 在籍成员数减指定数量
	DecrementMemberCountBy(uuid string, count int) error
	// AddBattleResult 累加战绩（won/lost 各自增量）
	AddBattleResult(uuid string, won, lost int) error
	// SetStatus 更新公会状态
	SetStatus(uuid string, status int8) error
}

// CabalMemberRepository 公会成员数据访问接口
type CabalMemberRepository interface {
	// FindActiveByChad 查找角色当前在籍的成员记录（至多一条）
	FindActiveByChad(chadUuid string) (*model.CabalMember, error)
	// FindActiveByCabalAndChad 查找角色在指定公会的在籍记录
	FindActiveByCabalAndChad(cabalUuid, chadUuid string) (*model.CabalMember, error)
	// FindActiveByCabal 查找公会全部在籍成员，按入会时间升序
	FindActiveByCabal(cabalUuid string) ([]model.CabalMember, error)
	// CountActiveByCabal 统计公会在籍成员数
	CountActiveByCabal(cabalUuid string) (int64, error)
	// Create 创建成员记录
	Create(member *model.CabalMember) error
	// Update 更新成员记录（全字段）
	Update(member *model.CabalMember) error
	// DeactivateByCabal 将公会全部在籍成员置为离会（解散用）
	DeactivateByCabal(cabalUuid string, leftAt time.Time) error
}

// OfficerRoleRepository 官员席位数据访问接口
type OfficerRoleRepository interface {
	// FindByCabalAndStat 查找指定席位的现任官员
	FindByCabalAndStat(cabalUuid, statType string) (*model.OfficerRole, error)
	// FindByCabal 查找公会全部现任官员，按任命时间升序
	FindByCabal(cabalUuid string) ([]model.OfficerRole, error)
	// Create 任命官员
	Create(role *model.OfficerRole) error
	// DeleteByCabalAndStat 清空指定席位
	DeleteByCabalAndStat(cabalUuid, statType string) error
	// DeleteByCabalAndChad 清空指定角色担任的所有席位
	DeleteByCabalAndChad(cabalUuid, chadUuid string) error
	// DeleteByCabal 清空公会全部席位（解散用）
	DeleteByCabal(cabalUuid string) error
}

// LeaderVoteRepository 罢免投票数据访问接口
type LeaderVoteRepository interface {
	// FindByVoter 查找投票人对指定会长的既有票
	FindByVoter(cabalUuid, voterUuid, targetUuid string) (*model.LeaderVote, error)
	// CountValid 统计指定会长在有效期内收到的票数
	CountValid(cabalUuid, targetUuid string, since time.Time) (int64, error)
	// Create 记录一票
	Create(vote *model.LeaderVote) error
	// DeleteByCabal 清空公会全部票（会长更替或解散时）
	DeleteByCabal(cabalUuid string) error
	// DeleteOlderThan 清除过期票
	DeleteOlderThan(cutoff time.Time) error
}

// ReferralRepository 推荐记录数据访问接口
type ReferralRepository interface {
	// FindByPair 查找 (推荐人, 被推荐人) 既有记录
	FindByPair(referrerUuid, referredUuid string) (*model.Referral, error)
	// Create 创建推荐记录
	Create(referral *model.Referral) error
}

// CabalBattleRepository 公会对战排期数据访问接口
type CabalBattleRepository interface {
	// FindByUuid 根据 UUID 查找排期
	FindByUuid(uuid string) (*model.CabalBattle, error)
	// FindUpcomingByCabal 查找公会未完成且未取消的排期，按约战时间升序
	FindUpcomingByCabal(cabalUuid string) ([]model.CabalBattle, error)
	// CountOpenByWeek 统计公会在指定周编号内未完成且未取消的排期数
	CountOpenByWeek(cabalUuid string, weekNumber int) (int64, error)
	// FindStalePending 查找约战时间早于 cutoff 且仍未完成未取消的排期
	FindStalePending(cutoff time.Time) ([]model.CabalBattle, error)
	// Create 创建排期
	Create(battle *model.CabalBattle) error
	// Update 更新排期（全字段）
	Update(battle *model.CabalBattle) error
}

// BattleParticipantRepository 对战报名数据访问接口
type BattleParticipantRepository interface {
	// FindByBattleAndChad 查找角色在指定对战的报名记录
	FindByBattleAndChad(battleUuid, chadUuid string) (*model.BattleParticipant, error)
	// CountByBattle 统计对战报名人数
	CountByBattle(battleUuid string) (int64, error)
	// Create 创建报名记录
	Create(participant *model.BattleParticipant) error
}

// BattleRepository 对战实例数据访问接口
type BattleRepository interface {
	// FindByUuid 根据 UUID 查找对战
	FindByUuid(uuid string) (*model.Battle, error)
	// FindActiveByChad 查找角色参与的未结束对战
	FindActiveByChad(chadUuid string) ([]model.Battle, error)
	// Create 创建对战
	Create(battle *model.Battle) error
	// Update 更新对战（全字段）
	Update(battle *model.Battle) error
}

// TransactionRepository 账本流水数据访问接口
type TransactionRepository interface {
	// Create 写入一条流水
	Create(tx *model.Transaction) error
	// FindByAccount 查找账户全部流水，按流水号升序
	FindByAccount(accountUuid string) ([]model.Transaction, error)
}

// CharacterStatsRepository 角色属性数据访问接口
type CharacterStatsRepository interface {
	// FindByChad 查找角色当前总属性
	FindByChad(chadUuid string) (*model.CharacterStats, error)
	// Upsert 创建或更新角色属性
	Upsert(stats *model.CharacterStats) error
}

// RewardPayoutRepository 奖励补发队列数据访问接口
type RewardPayoutRepository interface {
	// Create 入队一条待补发奖励
	Create(payout *model.RewardPayout) error
	// FindPending 查找未完成的补发记录
	FindPending(limit int) ([]model.RewardPayout, error)
	// Update 更新补发记录（全字段）
	Update(payout *model.RewardPayout) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB
	Cabal        CabalRepository
	Member       CabalMemberRepository
	Officer      OfficerRoleRepository
	Vote         LeaderVoteRepository
	Referral     ReferralRepository
	CabalBattle  CabalBattleRepository
	Participant  BattleParticipantRepository
	Battle       BattleRepository
	Ledger       TransactionRepository
	Stats        CharacterStatsRepository
	RewardPayout RewardPayoutRepository
}

// NewRepositories 创建所有 Repository 实例
// db: GORM 数据库实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		Cabal:        NewCabalRepository(db),
		Member:       NewCabalMemberRepository(db),
		Officer:      NewOfficerRoleRepository(db),
		Vote:         NewLeaderVoteRepository(db),
		Referral:     NewReferralRepository(db),
		CabalBattle:  NewCabalBattleRepository(db),
		Participant:  NewBattleParticipantRepository(db),
		Battle:       NewBattleRepository(db),
		Ledger:       NewTransactionRepository(db),
		Stats:        NewCharacterStatsRepository(db),
		RewardPayout: NewRewardPayoutRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
