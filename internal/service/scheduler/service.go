// Package scheduler 实现公会对战排期的核心业务逻辑
// 覆盖排期（含随机匹配）、报名、取消和过期清理后台任务
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cabal_battles_server/internal/config"
	"cabal_battles_server/internal/dao/mysql/repository"
	myredis "cabal_battles_server/internal/dao/redis"
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/dto/respond"
	"cabal_battles_server/internal/infrastructure/mq"
	"cabal_battles_server/internal/model"
	"cabal_battles_server/pkg/constants"
	"cabal_battles_server/pkg/errorx"
	"cabal_battles_server/pkg/util/keylock"
	"cabal_battles_server/pkg/util/random"
)

// opponentPoolKey 随机匹配候选公会池的缓存键
const opponentPoolKey = "cabal_opponent_pool"

// schedulerService 对战排期业务逻辑实现
type schedulerService struct {
	repos        *repository.Repositories
	cache        myredis.AsyncCacheService
	publisher    mq.Publisher
	locks        *keylock.KeyLock
	battleExpiry time.Duration
	sweepEvery   time.Duration
}

// NewSchedulerService 构造函数，注入所有依赖
// 排期过期 TTL 与清理间隔取自 GameConfig
func NewSchedulerService(repos *repository.Repositories, cache myredis.AsyncCacheService,
	publisher mq.Publisher, locks *keylock.KeyLock, gameCfg *config.GameConfig) *schedulerService {
	return &schedulerService{
		repos:        repos,
		cache:        cache,
		publisher:    publisher,
		locks:        locks,
		battleExpiry: time.Duration(gameCfg.BattleExpiryDays) * 24 * time.Hour,
		sweepEvery:   time.Duration(gameCfg.ExpirySweepMin) * time.Minute,
	}
}

// ScheduleBattle 排期公会对战
// 约战时间必须是未来且不超过 14 天；同一 UTC 周内未完成场次不超过 3 场
func (s *schedulerService) ScheduleBattle(req request.ScheduleBattleRequest) (*respond.ScheduleRespond, error) {
	leader, err := s.requireLeader(req.LeaderUuid)
	if err != nil {
		return nil, err
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "约战时间格式错误，应为 RFC3339")
	}
	now := time.Now()
	if !scheduledAt.After(now) {
		return nil, errorx.New(errorx.CodeInvalidParam, "约战时间必须是未来时间")
	}
	if scheduledAt.After(now.AddDate(0, 0, constants.SCHEDULE_MAX_AHEAD_DAYS)) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "约战时间不能超过 %d 天", constants.SCHEDULE_MAX_AHEAD_DAYS)
	}

	opponentUuid := req.OpponentUuid
	if opponentUuid == model.RandomOpponent {
		opponentUuid, err = s.pickRandomOpponent(leader.CabalUuid)
		if err != nil {
			return nil, err
		}
	} else {
		if opponentUuid == leader.CabalUuid {
			return nil, errorx.New(errorx.CodeInvalidParam, "不能与自己的公会对战")
		}
		opponent, err := s.repos.Cabal.FindByUuid(opponentUuid)
		if err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "对方公会不存在")
			}
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if opponent.Status != model.CabalStatusNormal {
			return nil, errorx.New(errorx.CodeInvalidState, "对方公会已解散")
		}
	}

	s.locks.Lock(leader.CabalUuid)
	defer s.locks.Unlock(leader.CabalUuid)

	weekNumber := model.WeekNumberOf(scheduledAt)
	openCount, err := s.repos.CabalBattle.CountOpenByWeek(leader.CabalUuid, weekNumber)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if openCount >= constants.WEEKLY_BATTLE_LIMIT {
		return nil, errorx.Newf(errorx.CodeConflict, "该周对战场次已达上限 %d 场", constants.WEEKLY_BATTLE_LIMIT)
	}

	battle := model.CabalBattle{
		Uuid:         fmt.Sprintf("W%s", random.GetNowAndLenRandomString(11)),
		CabalUuid:    leader.CabalUuid,
		OpponentUuid: opponentUuid,
		ScheduledAt:  scheduledAt,
		WeekNumber:   weekNumber,
	}
	if err := s.repos.CabalBattle.Create(&battle); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	s.publisher.Publish(context.Background(), mq.NewEvent(mq.EventBattleScheduled, battle.Uuid,
		map[string]interface{}{
			"cabal":        battle.CabalUuid,
			"opponent":     battle.OpponentUuid,
			"scheduled_at": battle.ScheduledAt.Format(time.RFC3339),
		}))

	return scheduleToRespond(&battle), nil
}

// pickRandomOpponent 从候选池随机挑选对手公会
// 候选池维护在 Redis 集合中，缓存缺失时从数据库重建
func (s *schedulerService) pickRandomOpponent(selfUuid string) (string, error) {
	candidates, err := s.cache.GetSetMembers(context.Background(), opponentPoolKey)
	if err != nil || len(candidates) == 0 {
		cabals, derr := s.repos.Cabal.FindActive()
		if derr != nil {
			zap.L().Error(derr.Error())
			return "", errorx.ErrServerBusy
		}
		candidates = make([]string, 0, len(cabals))
		for _, cabal := range cabals {
			candidates = append(candidates, cabal.Uuid)
		}
		// 异步重建候选池
		members := make([]interface{}, len(candidates))
		for i, uuid := range candidates {
			members[i] = uuid
		}
		if len(members) > 0 {
			s.cache.SubmitTask(func() {
				if err := s.cache.AddToSet(context.Background(), opponentPoolKey, members...); err != nil {
					zap.L().Error(err.Error())
				}
			})
		}
	}

	eligible := make([]string, 0, len(candidates))
	for _, uuid := range candidates {
		if uuid != selfUuid {
			eligible = append(eligible, uuid)
		}
	}
	if len(eligible) == 0 {
		return "", errorx.New(errorx.CodeNotFound, "没有可匹配的对手公会")
	}
	return eligible[random.GetIntn(len(eligible))], nil
}

// CancelSchedule 取消排期（会长专属，未完成的排期才可取消）
func (s *schedulerService) CancelSchedule(req request.CancelScheduleRequest) error {
	leader, err := s.requireLeader(req.LeaderUuid)
	if err != nil {
		return err
	}

	s.locks.Lock(req.ScheduleUuid)
	defer s.locks.Unlock(req.ScheduleUuid)

	battle, err := s.repos.CabalBattle.FindByUuid(req.ScheduleUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "对战排期不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if battle.CabalUuid != leader.CabalUuid {
		return errorx.New(errorx.CodeUnauthorized, "只能取消本公会发起的排期")
	}
	if battle.Completed || battle.Cancelled {
		return errorx.New(errorx.CodeInvalidState, "该排期已结束，不能取消")
	}

	battle.Cancelled = true
	if err := s.repos.CabalBattle.Update(battle); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	s.publisher.Publish(context.Background(), mq.NewEvent(mq.EventBattleCancelled, battle.Uuid,
		map[string]interface{}{"cabal": battle.CabalUuid, "reason": "cancelled_by_leader"}))
	return nil
}

// OptIn 成员报名参加公会对战
// 报名人必须是参战任一公会的在籍成员；每场每人一条报名记录；
// 报名增加每日参与计数（UTC 日切换时重置）和贡献分
func (s *schedulerService) OptIn(req request.OptInRequest) error {
	member, err := s.repos.Member.FindActiveByChad(req.ChadUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "未加入任何公会")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	s.locks.Lock(req.ScheduleUuid)
	defer s.locks.Unlock(req.ScheduleUuid)

	battle, err := s.repos.CabalBattle.FindByUuid(req.ScheduleUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "对战排期不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if battle.Completed || battle.Cancelled {
		return errorx.New(errorx.CodeInvalidState, "该排期已结束，不能报名")
	}
	if member.CabalUuid != battle.CabalUuid && member.CabalUuid != battle.OpponentUuid {
		return errorx.New(errorx.CodeUnauthorized, "只有参战公会的成员才能报名")
	}

	// 每场每人一条报名
	if _, err := s.repos.Participant.FindByBattleAndChad(battle.Uuid, req.ChadUuid); err == nil {
		return errorx.New(errorx.CodeConflict, "已报名本场对战")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		participant := model.BattleParticipant{
			CabalBattleUuid: battle.Uuid,
			ChadUuid:        req.ChadUuid,
			CabalUuid:       member.CabalUuid,
		}
		if err := txRepos.Participant.Create(&participant); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}

		// 每日参与计数，UTC 日切换时重置
		today := time.Now().UTC().Format("2006-01-02")
		if member.OptInDate != today {
			member.OptInDate = today
			member.DailyOptIns = 0
		}
		member.DailyOptIns++
		member.BattlesParticipated++
		member.Contribution += constants.PARTICIPATION_CONTRIBUTION
		if err := txRepos.Member.Update(member); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	return err
}

// GetUpcoming 获取公会未完成的排期列表
func (s *schedulerService) GetUpcoming(cabalUuid string) ([]respond.ScheduleRespond, error) {
	battles, err := s.repos.CabalBattle.FindUpcomingByCabal(cabalUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.ScheduleRespond, 0, len(battles))
	for i := range battles {
		rsp = append(rsp, *scheduleToRespond(&battles[i]))
	}
	return rsp, nil
}

// ExpireStaleBattles 取消约战时间已超过 TTL 仍未开打的排期
func (s *schedulerService) ExpireStaleBattles() (int, error) {
	cutoff := time.Now().Add(-s.battleExpiry)
	stale, err := s.repos.CabalBattle.FindStalePending(cutoff)
	if err != nil {
		zap.L().Error(err.Error())
		return 0, errorx.ErrServerBusy
	}

	cancelled := 0
	for i := range stale {
		battle := &stale[i]
		battle.Cancelled = true
		if err := s.repos.CabalBattle.Update(battle); err != nil {
			zap.L().Error(err.Error())
			continue
		}
		cancelled++
		s.publisher.Publish(context.Background(), mq.NewEvent(mq.EventBattleCancelled, battle.Uuid,
			map[string]interface{}{"cabal": battle.CabalUuid, "reason": "expired"}))
	}
	if cancelled > 0 {
		zap.L().Info("stale cabal battles expired", zap.Int("count", cancelled))
	}
	return cancelled, nil
}

// StartSweeper 启动过期清理后台任务
func (s *schedulerService) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.ExpireStaleBattles(); err != nil {
					zap.L().Error("expire sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// requireLeader 校验调用者是某公会的现任会长
func (s *schedulerService) requireLeader(chadUuid string) (*model.CabalMember, error) {
	member, err := s.repos.Member.FindActiveByChad(chadUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "未加入任何公会")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if member.Role != model.MemberRoleLeader {
		return nil, errorx.New(errorx.CodeUnauthorized, "仅会长可执行此操作")
	}
	return member, nil
}

// scheduleToRespond 构建排期响应
func scheduleToRespond(battle *model.CabalBattle) *respond.ScheduleRespond {
	return &respond.ScheduleRespond{
		Uuid:         battle.Uuid,
		CabalUuid:    battle.CabalUuid,
		OpponentUuid: battle.OpponentUuid,
		ScheduledAt:  battle.ScheduledAt.Format(time.RFC3339),
		WeekNumber:   battle.WeekNumber,
		Completed:    battle.Completed,
		Cancelled:    battle.Cancelled,
	}
}
