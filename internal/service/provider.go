// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"cabal_battles_server/internal/config"
	"cabal_battles_server/internal/dao/mysql/repository"
	myredis "cabal_battles_server/internal/dao/redis"
	"cabal_battles_server/internal/infrastructure/mq"
	"cabal_battles_server/internal/service/battle"
	"cabal_battles_server/internal/service/governance"
	"cabal_battles_server/internal/service/leaderboard"
	"cabal_battles_server/internal/service/ledger"
	"cabal_battles_server/internal/service/membership"
	"cabal_battles_server/internal/service/scheduler"
	"cabal_battles_server/internal/service/stats"
	"cabal_battles_server/pkg/util/keylock"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	Membership  MembershipService  // 会籍 Service
	Governance  GovernanceService  // 治理 Service
	Scheduler   SchedulerService   // 排期 Service
	Battle      BattleService      // 对战 Service
	Leaderboard LeaderboardService // 排行榜 Service
	Publisher   mq.Publisher       // 事件发布者（观战网关订阅用）
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合、缓存服务和事件发布者
//  2. 组装记账与属性读取服务
//  3. 创建各领域 Service，共享同一把实体级 KeyLock
//
// repos: Repository 层聚合实例
// cache: 异步缓存服务
// publisher: 事件发布者
// 返回: Services 聚合指针
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService,
	publisher mq.Publisher, gameCfg *config.GameConfig) *Services {
	locks := keylock.New()
	ledgerSvc := ledger.NewService(repos.Ledger)
	statsSvc := stats.NewProvider(repos.Stats)

	membershipSvc := membership.NewMembershipService(repos, cache, ledgerSvc, statsSvc, publisher, locks)
	governanceSvc := governance.NewGovernanceService(repos, publisher, locks, gameCfg)
	schedulerSvc := scheduler.NewSchedulerService(repos, cache, publisher, locks, gameCfg)
	battleSvc := battle.NewBattleService(repos, ledgerSvc, statsSvc, publisher, locks, membershipSvc)
	leaderboardSvc := leaderboard.NewLeaderboardService(repos, cache)

	return &Services{
		Membership:  membershipSvc,
		Governance:  governanceSvc,
		Scheduler:   schedulerSvc,
		Battle:      battleSvc,
		Leaderboard: leaderboardSvc,
		Publisher:   publisher,
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.Membership.CreateCabal() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository 和事件发布者初始化之后
func InitServices(repos *repository.Repositories, cache myredis.AsyncCacheService,
	publisher mq.Publisher, gameCfg *config.GameConfig) {
	Svc = NewServices(repos, cache, publisher, gameCfg)
}
