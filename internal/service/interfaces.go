// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"context"

	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/dto/respond"
)

// MembershipService 公会会籍业务接口
// 处理公会创建、加入、退出、解散及金库等功能
type MembershipService interface {
	// CreateCabal 创建公会
	CreateCabal(req request.CreateCabalRequest) (*respond.CreateCabalRespond, error)
	// JoinByInviteCode 凭邀请码加入公会（可携带推荐人）
	JoinByInviteCode(req request.JoinCabalRequest) (*respond.CabalInfoRespond, error)
	// Leave 退出公会（会长不可退出）
	Leave(chadUuid string) error
	// RemoveMember 会长移除成员
	RemoveMember(leaderUuid, targetUuid string) error
	// ChangeLeader 会长主动移交
	ChangeLeader(leaderUuid, newLeaderUuid string) error
	// Disband 解散公会（终态）
	Disband(leaderUuid string) error
	// GetCabalInfo 获取公会详情
	GetCabalInfo(cabalUuid string) (*respond.CabalInfoRespond, error)
	// GetMemberList 获取在籍成员列表
	GetMemberList(cabalUuid string) ([]respond.MemberListRespond, error)
	// AddXp 增加公会经验，按升级曲线处理升级和金库奖励
	AddXp(cabalUuid string, xp int) error
	// SpendCoin 公会金库消费（会长专属）
	SpendCoin(req request.SpendCoinRequest) error
	// RecomputeTotalPower 重算公会聚合战力并回写
	RecomputeTotalPower(cabalUuid string) (int, error)
}

// GovernanceService 公会治理业务接口
// 处理官员任免和罢免会长投票
type GovernanceService interface {
	// AppointOfficer 任命官员（会长专属，顶替现任）
	AppointOfficer(req request.AppointOfficerRequest) error
	// RemoveOfficer 撤销官员席位（会长专属）
	RemoveOfficer(req request.RemoveOfficerRequest) error
	// GetOfficerList 获取现任官员列表
	GetOfficerList(cabalUuid string) ([]respond.OfficerListRespond, error)
	// VoteRemoveLeader 投票罢免会长，过半数时自动换届
	VoteRemoveLeader(voterUuid string) (*respond.VoteRespond, error)
	// PruneExpiredVotes 清除超过有效期的罢免票（后台任务调用）
	PruneExpiredVotes() error
	// StartVoteJanitor 启动过期票清理后台任务，ctx 取消时停止
	StartVoteJanitor(ctx context.Context)
}

// SchedulerService 对战排期业务接口
// 处理公会对战的排期、报名、取消与过期清理
type SchedulerService interface {
	// ScheduleBattle 排期公会对战（会长专属，受周场次上限约束）
	ScheduleBattle(req request.ScheduleBattleRequest) (*respond.ScheduleRespond, error)
	// CancelSchedule 取消排期（会长专属）
	CancelSchedule(req request.CancelScheduleRequest) error
	// OptIn 成员报名参战
	OptIn(req request.OptInRequest) error
	// GetUpcoming 获取公会未完成的排期列表
	GetUpcoming(cabalUuid string) ([]respond.ScheduleRespond, error)
	// ExpireStaleBattles 取消约战时间已超过 TTL 的排期，返回取消数量
	ExpireStaleBattles() (int, error)
	// StartSweeper 启动过期清理后台任务，ctx 取消时停止
	StartSweeper(ctx context.Context)
}

// BattleService 对战引擎业务接口
// 处理 1v1 挑战与公会大战的状态机、回合动作和结算
type BattleService interface {
	// CreateChallenge 发起 1v1 挑战，创建 pending 对战
	CreateChallenge(req request.CreateChallengeRequest) (*respond.BattleRespond, error)
	// Start 开始对战（pending → in_progress），扣除押注
	Start(req request.StartBattleRequest) (*respond.BattleRespond, error)
	// PerformAction 执行回合动作，达到动作上限后自动结算
	PerformAction(req request.BattleActionRequest) (*respond.BattleRespond, error)
	// Cancel 取消对战（pending 专属，即拒绝挑战）
	Cancel(req request.CancelBattleRequest) error
	// GetBattle 获取对战详情
	GetBattle(battleUuid string) (*respond.BattleRespond, error)
	// ResolveCabalWar 按排期结算公会大战
	ResolveCabalWar(scheduleUuid string) (*respond.BattleRespond, error)
	// RetryPendingPayouts 补发失败的奖励，返回成功补发数量
	RetryPendingPayouts() (int, error)
	// StartPayoutWorker 启动奖励补发后台任务，ctx 取消时停止
	StartPayoutWorker(ctx context.Context)
}

// LeaderboardService 排行榜业务接口
type LeaderboardService interface {
	// GetLeaderboard 获取公会排行榜（带 Redis 缓存）
	GetLeaderboard(limit int) ([]respond.LeaderboardRespond, error)
}
