// Package battle 实现对战引擎的核心业务逻辑
// 覆盖 1v1 挑战流程、回合动作处理、公会大战结算和奖励补发
// 状态机: pending → in_progress → completed，pending → cancelled，只进不退
package battle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cabal_battles_server/internal/dao/mysql/repository"
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/dto/respond"
	"cabal_battles_server/internal/infrastructure/mq"
	"cabal_battles_server/internal/model"
	"cabal_battles_server/internal/service/ledger"
	"cabal_battles_server/internal/service/stats"
	"cabal_battles_server/pkg/constants"
	"cabal_battles_server/pkg/errorx"
	"cabal_battles_server/pkg/util/keylock"
	"cabal_battles_server/pkg/util/random"
)

// payoutRetryInterval 奖励补发后台任务执行间隔
const payoutRetryInterval = 5 * time.Minute

// payoutBatchSize 单次补发处理条数
const payoutBatchSize = 50

// CabalProgression 公会成长回调接口
// 公会大战结算时经此接口回写经验和聚合战力，由会籍模块实现
type CabalProgression interface {
	// AddXp 增加公会经验（含升级处理）
	AddXp(cabalUuid string, xp int) error
	// RecomputeTotalPower 重算公会聚合战力
	RecomputeTotalPower(cabalUuid string) (int, error)
}

// battleService 对战引擎业务逻辑实现
type battleService struct {
	repos       *repository.Repositories
	ledgerSvc   ledger.Service
	statsSvc    stats.Provider
	publisher   mq.Publisher
	locks       *keylock.KeyLock
	progression CabalProgression
}

// NewBattleService 构造函数，注入所有依赖
func NewBattleService(repos *repository.Repositories, ledgerSvc ledger.Service,
	statsSvc stats.Provider, publisher mq.Publisher, locks *keylock.KeyLock,
	progression CabalProgression) *battleService {
	return &battleService{
		repos:       repos,
		ledgerSvc:   ledgerSvc,
		statsSvc:    statsSvc,
		publisher:   publisher,
		locks:       locks,
		progression: progression,
	}
}

// CreateChallenge 发起 1v1 挑战
// 双方必须都有属性记录；创建 pending 对战等待对方接受
func (b *battleService) CreateChallenge(req request.CreateChallengeRequest) (*respond.BattleRespond, error) {
	if req.InitiatorUuid == req.OpponentUuid {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能挑战自己")
	}
	if req.WagerAmount < 0 {
		return nil, errorx.New(errorx.CodeInvalidParam, "押注金额不能为负数")
	}

	for _, uuid := range []string{req.InitiatorUuid, req.OpponentUuid} {
		if _, err := b.statsSvc.GetStats(uuid); err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.Newf(errorx.CodeNotFound, "角色 %s 不存在", uuid)
			}
			return nil, errorx.Wrap(err, errorx.CodeDependency, "属性服务不可用")
		}
	}

	battle := model.Battle{
		Uuid:          fmt.Sprintf("B%s", random.GetNowAndLenRandomString(11)),
		Type:          model.BattleTypePvp,
		Status:        model.BattleStatusPending,
		InitiatorUuid: req.InitiatorUuid,
		DefenderUuid:  req.OpponentUuid,
		WagerAmount:   req.WagerAmount,
	}
	if err := b.repos.Battle.Create(&battle); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	return battleToRespond(&battle), nil
}

// Start 开始对战（接受挑战）
// pending → in_progress；只有应战方可以接受；押注在此时冻结
func (b *battleService) Start(req request.StartBattleRequest) (*respond.BattleRespond, error) {
	b.locks.Lock(req.BattleUuid)
	defer b.locks.Unlock(req.BattleUuid)

	battle, err := b.findBattle(req.BattleUuid)
	if err != nil {
		return nil, err
	}
	if battle.Status != model.BattleStatusPending {
		return nil, errorx.New(errorx.CodeInvalidState, "对战不在待开始状态")
	}
	if req.ChadUuid != battle.DefenderUuid {
		return nil, errorx.New(errorx.CodeUnauthorized, "只有应战方可以接受挑战")
	}

	// 押注冻结：记账失败则对战不开始
	if battle.WagerAmount > 0 {
		if err := b.ledgerSvc.Debit(battle.InitiatorUuid, battle.WagerAmount,
			model.TxWagerStake, "对战押注: "+battle.Uuid); err != nil {
			return nil, errorx.Wrap(err, errorx.CodeDependency, "押注冻结失败")
		}
	}

	now := time.Now()
	battle.Status = model.BattleStatusInProgress
	battle.StartedAt = &now
	battle.CurrentTurn = 1
	battle.AppendLog(model.BattleLogEntry{
		Turn:      0,
		Timestamp: now.UTC().Format(time.RFC3339),
		Event:     "battle_started",
		Result:    "battle has begun",
	})
	if err := b.repos.Battle.Update(battle); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	b.publisher.Publish(context.Background(), mq.NewEvent(mq.EventBattleStarted, battle.Uuid,
		map[string]interface{}{"initiator": battle.InitiatorUuid, "defender": battle.DefenderUuid,
			"wager": battle.WagerAmount}))

	return battleToRespond(battle), nil
}

// PerformAction 执行回合动作
// 奇数回合发起方行动，偶数回合应战方行动；达到动作上限后自动结算
func (b *battleService) PerformAction(req request.BattleActionRequest) (*respond.BattleRespond, error) {
	if !model.ValidAction(req.Action) {
		return nil, errorx.New(errorx.CodeInvalidParam, "无效的动作类型")
	}

	b.locks.Lock(req.BattleUuid)
	defer b.locks.Unlock(req.BattleUuid)

	battle, err := b.findBattle(req.BattleUuid)
	if err != nil {
		return nil, err
	}
	if battle.Status != model.BattleStatusInProgress {
		return nil, errorx.New(errorx.CodeInvalidState, "对战不在进行中")
	}

	initiatorTurn := battle.CurrentTurn%2 == 1
	expectedActor := battle.DefenderUuid
	if initiatorTurn {
		expectedActor = battle.InitiatorUuid
	}
	if req.ChadUuid != battle.InitiatorUuid && req.ChadUuid != battle.DefenderUuid {
		return nil, errorx.New(errorx.CodeUnauthorized, "非本场对战的参与者")
	}
	if req.ChadUuid != expectedActor {
		return nil, errorx.New(errorx.CodeUnauthorized, "未轮到你行动")
	}

	targetUuid := battle.DefenderUuid
	if !initiatorTurn {
		targetUuid = battle.InitiatorUuid
	}

	result, gain, err := b.processAction(req.ChadUuid, targetUuid, req.Action)
	if err != nil {
		return nil, err
	}
	if initiatorTurn {
		battle.InitiatorBonus += gain
	} else {
		battle.DefenderBonus += gain
	}

	battle.AppendLog(model.BattleLogEntry{
		Turn:      battle.CurrentTurn,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Actor:     req.ChadUuid,
		Action:    req.Action,
		Result:    result,
	})
	battle.CurrentTurn++
	battle.TurnCount++

	// 达到动作上限自动结算
	if battle.TurnCount >= constants.BATTLE_ACTION_CAP {
		if err := b.finalize(battle); err != nil {
			return nil, err
		}
	} else {
		if err := b.repos.Battle.Update(battle); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
	}

	b.publisher.Publish(context.Background(), mq.NewEvent(mq.EventBattleAction, battle.Uuid,
		map[string]interface{}{"actor": req.ChadUuid, "action": req.Action, "result": result,
			"turn": battle.TurnCount}))

	return battleToRespond(battle), nil
}

// processAction 按动作类型计算结果描述和己方增益
func (b *battleService) processAction(actorUuid, targetUuid, action string) (string, int, error) {
	actor, err := b.statsSvc.GetStats(actorUuid)
	if err != nil {
		return "", 0, errorx.Wrap(err, errorx.CodeDependency, "属性服务不可用")
	}

	switch action {
	case model.ActionRoast:
		target, err := b.statsSvc.GetStats(targetUuid)
		if err != nil {
			return "", 0, errorx.Wrap(err, errorx.CodeDependency, "属性服务不可用")
		}
		damage := actor.Aggression - target.Resistance/2
		if damage < 1 {
			damage = 1
		}
		return fmt.Sprintf("roasted the opponent for %d damage", damage), damage, nil
	case model.ActionFlex:
		return fmt.Sprintf("flexed for %d power", actor.Power), actor.Power, nil
	case model.ActionDefend:
		return fmt.Sprintf("prepared to defend with %d resistance", actor.Resistance), actor.Resistance, nil
	case model.ActionSpecial:
		return fmt.Sprintf("used a special move with %d style", actor.Style), actor.Style, nil
	}
	return "", 0, errorx.New(errorx.CodeInvalidParam, "无效的动作类型")
}

// finalize 结算 1v1 对战
// 按双方四维属性总和判胜负，平局无胜者；状态先落库再发奖，
// 发奖失败入补发队列，绝不回滚 completed 状态
func (b *battleService) finalize(battle *model.Battle) error {
	initiator, err := b.statsSvc.GetStats(battle.InitiatorUuid)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeDependency, "属性服务不可用")
	}
	defender, err := b.statsSvc.GetStats(battle.DefenderUuid)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeDependency, "属性服务不可用")
	}

	now := time.Now()
	battle.Status = model.BattleStatusCompleted
	battle.CompletedAt = &now

	initiatorScore := initiator.Total()
	defenderScore := defender.Total()

	switch {
	case initiatorScore == defenderScore:
		battle.AppendLog(model.BattleLogEntry{
			Turn:      battle.CurrentTurn,
			Timestamp: now.UTC().Format(time.RFC3339),
			Event:     "battle_tied",
			Result:    "the battle ended in a tie",
		})
	case initiatorScore > defenderScore:
		battle.WinnerUuid = battle.InitiatorUuid
		battle.LoserUuid = battle.DefenderUuid
	default:
		battle.WinnerUuid = battle.DefenderUuid
		battle.LoserUuid = battle.InitiatorUuid
	}

	if battle.WinnerUuid != "" {
		reward := constants.DEFAULT_COIN_REWARD
		if battle.WagerAmount > 0 {
			reward = battle.WagerAmount * 2
		}
		battle.RewardCoins = reward
		battle.AppendLog(model.BattleLogEntry{
			Turn:      battle.CurrentTurn,
			Timestamp: now.UTC().Format(time.RFC3339),
			Event:     "battle_ended",
			Result:    fmt.Sprintf("%s defeated %s", battle.WinnerUuid, battle.LoserUuid),
		})
	}

	// 状态转移先持久化，发奖永远在 completed 之后
	if err := b.repos.Battle.Update(battle); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if battle.WinnerUuid != "" {
		b.payRewards(battle)
	}

	b.publisher.Publish(context.Background(), mq.NewEvent(mq.EventBattleCompleted, battle.Uuid,
		map[string]interface{}{"winner": battle.WinnerUuid, "loser": battle.LoserUuid,
			"reward": battle.RewardCoins}))
	return nil
}

// payRewards 发放对战奖励，失败入补发队列
// RewardPaid 标记保证重复调用不会二次发放
func (b *battleService) payRewards(battle *model.Battle) {
	if battle.RewardPaid {
		return
	}

	allPaid := true
	if err := b.ledgerSvc.Credit(battle.WinnerUuid, battle.RewardCoins,
		model.TxBattleReward, "对战胜利奖励: "+battle.Uuid); err != nil {
		zap.L().Error("battle reward credit failed", zap.String("battle", battle.Uuid), zap.Error(err))
		b.enqueuePayout(battle.Uuid, battle.WinnerUuid, battle.RewardCoins, 0, "对战胜利奖励")
		allPaid = false
	}
	if err := b.ledgerSvc.AwardExperience(battle.WinnerUuid, constants.WINNER_XP_REWARD,
		"对战胜利经验: "+battle.Uuid); err != nil {
		zap.L().Error("winner xp award failed", zap.String("battle", battle.Uuid), zap.Error(err))
		b.enqueuePayout(battle.Uuid, battle.WinnerUuid, 0, constants.WINNER_XP_REWARD, "对战胜利经验")
		allPaid = false
	}
	if err := b.ledgerSvc.AwardExperience(battle.LoserUuid, constants.LOSER_XP_REWARD,
		"对战参与经验: "+battle.Uuid); err != nil {
		zap.L().Error("loser xp award failed", zap.String("battle", battle.Uuid), zap.Error(err))
		b.enqueuePayout(battle.Uuid, battle.LoserUuid, 0, constants.LOSER_XP_REWARD, "对战参与经验")
		allPaid = false
	}

	if allPaid {
		battle.RewardPaid = true
		if err := b.repos.Battle.Update(battle); err != nil {
			zap.L().Error(err.Error())
		}
	}
}

// enqueuePayout 奖励入补发队列
func (b *battleService) enqueuePayout(battleUuid, accountUuid string, amount, xp int, reason string) {
	payout := model.RewardPayout{
		BattleUuid:  battleUuid,
		AccountUuid: accountUuid,
		Amount:      amount,
		Xp:          xp,
		Reason:      reason,
	}
	if err := b.repos.RewardPayout.Create(&payout); err != nil {
		zap.L().Error("enqueue reward payout failed", zap.String("battle", battleUuid), zap.Error(err))
	}
}

// Cancel 取消对战（拒绝挑战），仅 pending 状态允许
func (b *battleService) Cancel(req request.CancelBattleRequest) error {
	b.locks.Lock(req.BattleUuid)
	defer b.locks.Unlock(req.BattleUuid)

	battle, err := b.findBattle(req.BattleUuid)
	if err != nil {
		return err
	}
	if battle.Status != model.BattleStatusPending {
		return errorx.New(errorx.CodeInvalidState, "只有待开始的对战可以取消")
	}
	if req.ChadUuid != battle.InitiatorUuid && req.ChadUuid != battle.DefenderUuid {
		return errorx.New(errorx.CodeUnauthorized, "非本场对战的参与者")
	}

	battle.Status = model.BattleStatusCancelled
	if err := b.repos.Battle.Update(battle); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	b.publisher.Publish(context.Background(), mq.NewEvent(mq.EventBattleCancelled, battle.Uuid,
		map[string]interface{}{"by": req.ChadUuid}))
	return nil
}

// GetBattle 获取对战详情
func (b *battleService) GetBattle(battleUuid string) (*respond.BattleRespond, error) {
	battle, err := b.findBattle(battleUuid)
	if err != nil {
		return nil, err
	}
	return battleToRespond(battle), nil
}

// ResolveCabalWar 按排期结算公会大战
// 每方得分 = 报名成员四维属性总和 + 公会聚合战力；
// 胜方公会获得金库奖励和经验，双方战绩回写，排期标记完成
func (b *battleService) ResolveCabalWar(scheduleUuid string) (*respond.BattleRespond, error) {
	b.locks.Lock(scheduleUuid)
	defer b.locks.Unlock(scheduleUuid)

	schedule, err := b.repos.CabalBattle.FindByUuid(scheduleUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "对战排期不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if schedule.Completed || schedule.Cancelled {
		return nil, errorx.New(errorx.CodeInvalidState, "该排期已结束")
	}
	if time.Now().Before(schedule.ScheduledAt) {
		return nil, errorx.New(errorx.CodeInvalidState, "未到约战时间")
	}

	homeScore, err := b.cabalSideScore(schedule.Uuid, schedule.CabalUuid)
	if err != nil {
		return nil, err
	}
	awayScore, err := b.cabalSideScore(schedule.Uuid, schedule.OpponentUuid)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	battle := model.Battle{
		Uuid:               fmt.Sprintf("B%s", random.GetNowAndLenRandomString(11)),
		Type:               model.BattleTypeCabalWar,
		Status:             model.BattleStatusCompleted,
		InitiatorUuid:      schedule.CabalUuid,
		DefenderUuid:       schedule.OpponentUuid,
		InitiatorCabalUuid: schedule.CabalUuid,
		DefenderCabalUuid:  schedule.OpponentUuid,
		InitiatorBonus:     homeScore,
		DefenderBonus:      awayScore,
		StartedAt:          &now,
		CompletedAt:        &now,
	}
	battle.AppendLog(model.BattleLogEntry{
		Turn:      0,
		Timestamp: now.UTC().Format(time.RFC3339),
		Event:     "battle_started",
		Result:    fmt.Sprintf("cabal war: %d vs %d", homeScore, awayScore),
	})

	result := "tie"
	switch {
	case homeScore > awayScore:
		battle.WinnerUuid = schedule.CabalUuid
		battle.LoserUuid = schedule.OpponentUuid
		result = "win"
	case awayScore > homeScore:
		battle.WinnerUuid = schedule.OpponentUuid
		battle.LoserUuid = schedule.CabalUuid
		result = "loss"
	}

	if battle.WinnerUuid != "" {
		battle.RewardCoins = constants.DEFAULT_COIN_REWARD
		battle.AppendLog(model.BattleLogEntry{
			Turn:      0,
			Timestamp: now.UTC().Format(time.RFC3339),
			Event:     "battle_ended",
			Result:    fmt.Sprintf("%s defeated %s", battle.WinnerUuid, battle.LoserUuid),
		})
	} else {
		battle.AppendLog(model.BattleLogEntry{
			Turn:      0,
			Timestamp: now.UTC().Format(time.RFC3339),
			Event:     "battle_tied",
			Result:    "the cabal war ended in a tie",
		})
	}

	err = b.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Battle.Create(&battle); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		schedule.Completed = true
		schedule.Result = result
		schedule.BattleUuid = battle.Uuid
		if err := txRepos.CabalBattle.Update(schedule); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if battle.WinnerUuid != "" {
			if err := txRepos.Cabal.AddBattleResult(battle.WinnerUuid, 1, 0); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			if err := txRepos.Cabal.AddBattleResult(battle.LoserUuid, 0, 1); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			// 胜方金库奖励
			winner, err := txRepos.Cabal.FindByUuid(battle.WinnerUuid)
			if err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			winner.CoinBalance += battle.RewardCoins
			if err := txRepos.Cabal.Update(winner); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 结算后发放经验与流水，失败入补发队列
	if battle.WinnerUuid != "" {
		if err := b.ledgerSvc.Credit(battle.WinnerUuid, battle.RewardCoins,
			model.TxBattleReward, "公会大战胜利奖励: "+battle.Uuid); err != nil {
			zap.L().Error("cabal war reward record failed", zap.Error(err))
			b.enqueuePayout(battle.Uuid, battle.WinnerUuid, battle.RewardCoins, 0, "公会大战胜利奖励")
		}
		if err := b.progression.AddXp(battle.WinnerUuid, constants.WINNER_XP_REWARD); err != nil {
			zap.L().Error("winner cabal xp failed", zap.Error(err))
		}
		if err := b.progression.AddXp(battle.LoserUuid, constants.LOSER_XP_REWARD); err != nil {
			zap.L().Error("loser cabal xp failed", zap.Error(err))
		}
	}

	b.publisher.Publish(context.Background(), mq.NewEvent(mq.EventBattleCompleted, battle.Uuid,
		map[string]interface{}{"type": model.BattleTypeCabalWar, "winner": battle.WinnerUuid,
			"home_score": homeScore, "away_score": awayScore}))

	return battleToRespond(&battle), nil
}

// cabalSideScore 计算公会大战一方的总得分
// 报名成员四维属性总和 + 公会聚合战力
func (b *battleService) cabalSideScore(scheduleUuid, cabalUuid string) (int, error) {
	members, err := b.repos.Member.FindActiveByCabal(cabalUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return 0, errorx.ErrServerBusy
	}

	score := 0
	for _, member := range members {
		if _, err := b.repos.Participant.FindByBattleAndChad(scheduleUuid, member.ChadUuid); err != nil {
			if errorx.IsNotFound(err) {
				continue // 未报名不计分
			}
			zap.L().Error(err.Error())
			return 0, errorx.ErrServerBusy
		}
		sheet, err := b.statsSvc.GetStats(member.ChadUuid)
		if err != nil {
			if errorx.IsNotFound(err) {
				continue
			}
			return 0, errorx.Wrap(err, errorx.CodeDependency, "属性服务不可用")
		}
		score += sheet.Total()
	}

	power, err := b.progression.RecomputeTotalPower(cabalUuid)
	if err != nil {
		return 0, err
	}
	return score + power, nil
}

// RetryPendingPayouts 补发失败的奖励
func (b *battleService) RetryPendingPayouts() (int, error) {
	pending, err := b.repos.RewardPayout.FindPending(payoutBatchSize)
	if err != nil {
		zap.L().Error(err.Error())
		return 0, errorx.ErrServerBusy
	}

	succeeded := 0
	for i := range pending {
		payout := &pending[i]
		payout.Attempts++

		var perr error
		if payout.Amount > 0 {
			perr = b.ledgerSvc.Credit(payout.AccountUuid, payout.Amount,
				model.TxBattleReward, payout.Reason+": "+payout.BattleUuid)
		}
		if perr == nil && payout.Xp > 0 {
			perr = b.ledgerSvc.AwardExperience(payout.AccountUuid, payout.Xp,
				payout.Reason+": "+payout.BattleUuid)
		}

		if perr == nil {
			payout.Done = true
			succeeded++
		} else {
			zap.L().Warn("reward payout retry failed",
				zap.String("battle", payout.BattleUuid), zap.Int("attempts", payout.Attempts), zap.Error(perr))
		}
		if err := b.repos.RewardPayout.Update(payout); err != nil {
			zap.L().Error(err.Error())
		}
	}
	return succeeded, nil
}

// StartPayoutWorker 启动奖励补发后台任务
func (b *battleService) StartPayoutWorker(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(payoutRetryInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := b.RetryPendingPayouts(); err != nil {
					zap.L().Error("payout retry sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// findBattle 查找对战实例
func (b *battleService) findBattle(battleUuid string) (*model.Battle, error) {
	battle, err := b.repos.Battle.FindByUuid(battleUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "对战不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return battle, nil
}

// battleToRespond 构建对战详情响应
func battleToRespond(battle *model.Battle) *respond.BattleRespond {
	rsp := &respond.BattleRespond{
		Uuid:          battle.Uuid,
		Type:          battle.Type,
		Status:        battle.Status,
		InitiatorUuid: battle.InitiatorUuid,
		DefenderUuid:  battle.DefenderUuid,
		WagerAmount:   battle.WagerAmount,
		CurrentTurn:   battle.CurrentTurn,
		TurnCount:     battle.TurnCount,
		WinnerUuid:    battle.WinnerUuid,
		RewardCoins:   battle.RewardCoins,
		BattleLog:     battle.LogEntries(),
	}
	if battle.StartedAt != nil {
		rsp.StartedAt = battle.StartedAt.Format(time.RFC3339)
	}
	if battle.CompletedAt != nil {
		rsp.CompletedAt = battle.CompletedAt.Format(time.RFC3339)
	}
	return rsp
}
