package battle

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"cabal_battles_server/internal/dao/mysql/repository"
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/infrastructure/mq"
	"cabal_battles_server/internal/model"
	"cabal_battles_server/internal/service/ledger"
	"cabal_battles_server/internal/service/servicetest"
	"cabal_battles_server/internal/service/stats"
	"cabal_battles_server/pkg/constants"
	"cabal_battles_server/pkg/errorx"
	"cabal_battles_server/pkg/util/keylock"
)

// stubProgression 记录公会成长回调的桩实现
type stubProgression struct {
	power   map[string]int
	xpGiven map[string]int
}

func newStubProgression() *stubProgression {
	return &stubProgression{
		power:   make(map[string]int),
		xpGiven: make(map[string]int),
	}
}

func (s *stubProgression) AddXp(cabalUuid string, xp int) error {
	s.xpGiven[cabalUuid] += xp
	return nil
}

func (s *stubProgression) RecomputeTotalPower(cabalUuid string) (int, error) {
	return s.power[cabalUuid], nil
}

// flakyLedger 可开关故障的记账服务，用于验证补发队列
type flakyLedger struct {
	inner ledger.Service
	fail  bool
}

func (f *flakyLedger) Credit(accountUuid string, amount int, txType, reason string) error {
	if f.fail {
		return errorx.New(errorx.CodeDependency, "账本服务不可用")
	}
	return f.inner.Credit(accountUuid, amount, txType, reason)
}

func (f *flakyLedger) Debit(accountUuid string, amount int, txType, reason string) error {
	if f.fail {
		return errorx.New(errorx.CodeDependency, "账本服务不可用")
	}
	return f.inner.Debit(accountUuid, amount, txType, reason)
}

func (f *flakyLedger) AwardExperience(accountUuid string, xp int, reason string) error {
	if f.fail {
		return errorx.New(errorx.CodeDependency, "账本服务不可用")
	}
	return f.inner.AwardExperience(accountUuid, xp, reason)
}

func newTestService(t *testing.T) (*battleService, *repository.Repositories, *servicetest.StubPublisher, *stubProgression) {
	t.Helper()
	repos := servicetest.NewRepos(t)
	pub := servicetest.NewStubPublisher()
	prog := newStubProgression()
	svc := NewBattleService(repos, ledger.NewService(repos.Ledger),
		stats.NewProvider(repos.Stats), pub, keylock.New(), prog)
	return svc, repos, pub, prog
}

// mustChallenge 双方各给一份属性并创建挑战
func mustChallenge(t *testing.T, svc *battleService, repos *repository.Repositories,
	initiator, defender string, wager int) string {
	t.Helper()
	servicetest.SeedStats(t, repos, initiator, 10, 30, 10, 10)
	servicetest.SeedStats(t, repos, defender, 12, 20, 10, 8)
	resp, err := svc.CreateChallenge(request.CreateChallengeRequest{
		InitiatorUuid: initiator, OpponentUuid: defender, WagerAmount: wager,
	})
	if err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	return resp.Uuid
}

// playOut 双方交替防御直到动作上限触发自动结算
func playOut(t *testing.T, svc *battleService, battleUuid, initiator, defender string) {
	t.Helper()
	for i := 0; i < constants.BATTLE_ACTION_CAP; i++ {
		actor := defender
		if i%2 == 0 {
			actor = initiator
		}
		if _, err := svc.PerformAction(request.BattleActionRequest{
			ChadUuid: actor, BattleUuid: battleUuid, Action: model.ActionDefend,
		}); err != nil {
			t.Fatalf("action %d by %s: %v", i+1, actor, err)
		}
	}
}

func TestCreateChallenge(t *testing.T) {
	svc, repos, _, _ := newTestService(t)
	servicetest.SeedStats(t, repos, "chad-a", 10, 10, 10, 10)
	servicetest.SeedStats(t, repos, "chad-b", 10, 10, 10, 10)

	resp, err := svc.CreateChallenge(request.CreateChallengeRequest{
		InitiatorUuid: "chad-a", OpponentUuid: "chad-b", WagerAmount: 50,
	})
	if err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	if !strings.HasPrefix(resp.Uuid, "B") {
		t.Errorf("battle uuid = %q, want B prefix", resp.Uuid)
	}
	if resp.Status != model.BattleStatusPending {
		t.Errorf("status = %q, want pending", resp.Status)
	}
	if resp.WagerAmount != 50 {
		t.Errorf("wager = %d, want 50", resp.WagerAmount)
	}
	if resp.CurrentTurn != 0 {
		t.Errorf("current turn = %d, want 0 before start", resp.CurrentTurn)
	}
}

func TestCreateChallengeValidation(t *testing.T) {
	svc, repos, _, _ := newTestService(t)
	servicetest.SeedStats(t, repos, "chad-a", 10, 10, 10, 10)

	cases := []struct {
		name string
		req  request.CreateChallengeRequest
		code int
	}{
		{"挑战自己", request.CreateChallengeRequest{
			InitiatorUuid: "chad-a", OpponentUuid: "chad-a"}, errorx.CodeInvalidParam},
		{"负数押注", request.CreateChallengeRequest{
			InitiatorUuid: "chad-a", OpponentUuid: "chad-b", WagerAmount: -1}, errorx.CodeInvalidParam},
		{"对手无属性", request.CreateChallengeRequest{
			InitiatorUuid: "chad-a", OpponentUuid: "chad-ghost"}, errorx.CodeNotFound},
		{"发起方无属性", request.CreateChallengeRequest{
			InitiatorUuid: "chad-ghost", OpponentUuid: "chad-a"}, errorx.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateChallenge(tc.req); !errorx.IsCode(err, tc.code) {
				t.Errorf("err = %v, want code %d", err, tc.code)
			}
		})
	}
}

func TestStartBattle(t *testing.T) {
	svc, repos, pub, _ := newTestService(t)
	battleUuid := mustChallenge(t, svc, repos, "chad-a", "chad-b", 40)

	// 发起方不能替对方接受
	_, err := svc.Start(request.StartBattleRequest{ChadUuid: "chad-a", BattleUuid: battleUuid})
	if !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("initiator accept err = %v, want unauthorized", err)
	}

	resp, err := svc.Start(request.StartBattleRequest{ChadUuid: "chad-b", BattleUuid: battleUuid})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.Status != model.BattleStatusInProgress {
		t.Errorf("status = %q, want in_progress", resp.Status)
	}
	if resp.CurrentTurn != 1 {
		t.Errorf("current turn = %d, want 1", resp.CurrentTurn)
	}
	if resp.StartedAt == "" {
		t.Error("started_at not set")
	}

	// 押注冻结流水：发起方 -40
	flows, err := repos.Ledger.FindByAccount("chad-a")
	if err != nil {
		t.Fatalf("find flows: %v", err)
	}
	if len(flows) != 1 || flows[0].Type != model.TxWagerStake || flows[0].Amount != -40 {
		t.Errorf("unexpected wager flows: %+v", flows)
	}

	if pub.CountType(mq.EventBattleStarted) != 1 {
		t.Errorf("battle.started events = %d, want 1", pub.CountType(mq.EventBattleStarted))
	}

	// 已开始的对战不能重复接受
	_, err = svc.Start(request.StartBattleRequest{ChadUuid: "chad-b", BattleUuid: battleUuid})
	if !errorx.IsCode(err, errorx.CodeInvalidState) {
		t.Errorf("restart err = %v, want invalid state", err)
	}
}

func TestPerformActionTurnOrder(t *testing.T) {
	svc, repos, _, _ := newTestService(t)
	battleUuid := mustChallenge(t, svc, repos, "chad-a", "chad-b", 0)
	if _, err := svc.Start(request.StartBattleRequest{ChadUuid: "chad-b", BattleUuid: battleUuid}); err != nil {
		t.Fatalf("start: %v", err)
	}

	// 奇数回合归发起方，应战方抢跑被拒
	_, err := svc.PerformAction(request.BattleActionRequest{
		ChadUuid: "chad-b", BattleUuid: battleUuid, Action: model.ActionFlex,
	})
	if !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("out-of-turn err = %v, want unauthorized", err)
	}

	// 旁观者不能出手
	_, err = svc.PerformAction(request.BattleActionRequest{
		ChadUuid: "chad-x", BattleUuid: battleUuid, Action: model.ActionFlex,
	})
	if !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("outsider err = %v, want unauthorized", err)
	}

	resp, err := svc.PerformAction(request.BattleActionRequest{
		ChadUuid: "chad-a", BattleUuid: battleUuid, Action: model.ActionRoast,
	})
	if err != nil {
		t.Fatalf("roast: %v", err)
	}
	if resp.CurrentTurn != 2 || resp.TurnCount != 1 {
		t.Errorf("turn = %d/%d, want 2/1", resp.CurrentTurn, resp.TurnCount)
	}
	// 伤害 = 攻击性 30 - 抗性 10/2 = 25
	last := resp.BattleLog[len(resp.BattleLog)-1]
	if last.Actor != "chad-a" || last.Action != model.ActionRoast {
		t.Errorf("unexpected log entry: %+v", last)
	}
	if last.Result != "roasted the opponent for 25 damage" {
		t.Errorf("roast result = %q", last.Result)
	}

	// 偶数回合轮到应战方，flex 增益等于力量
	resp, err = svc.PerformAction(request.BattleActionRequest{
		ChadUuid: "chad-b", BattleUuid: battleUuid, Action: model.ActionFlex,
	})
	if err != nil {
		t.Fatalf("flex: %v", err)
	}
	stored, err := repos.Battle.FindByUuid(battleUuid)
	if err != nil {
		t.Fatalf("reload battle: %v", err)
	}
	if stored.InitiatorBonus != 25 || stored.DefenderBonus != 12 {
		t.Errorf("bonus = %d/%d, want 25/12", stored.InitiatorBonus, stored.DefenderBonus)
	}
	if resp.CurrentTurn != 3 {
		t.Errorf("current turn = %d, want 3", resp.CurrentTurn)
	}
}

func TestPerformActionMinimumDamage(t *testing.T) {
	svc, repos, _, _ := newTestService(t)
	// 攻击性 3 对抗性 20：3 - 10 < 1，伤害保底 1
	servicetest.SeedStats(t, repos, "weak-a", 5, 3, 5, 5)
	servicetest.SeedStats(t, repos, "tank-b", 5, 5, 20, 5)
	resp, err := svc.CreateChallenge(request.CreateChallengeRequest{
		InitiatorUuid: "weak-a", OpponentUuid: "tank-b",
	})
	if err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	if _, err := svc.Start(request.StartBattleRequest{ChadUuid: "tank-b", BattleUuid: resp.Uuid}); err != nil {
		t.Fatalf("start: %v", err)
	}

	acted, err := svc.PerformAction(request.BattleActionRequest{
		ChadUuid: "weak-a", BattleUuid: resp.Uuid, Action: model.ActionRoast,
	})
	if err != nil {
		t.Fatalf("roast: %v", err)
	}
	last := acted.BattleLog[len(acted.BattleLog)-1]
	if last.Result != "roasted the opponent for 1 damage" {
		t.Errorf("minimum damage result = %q", last.Result)
	}
}

func TestBattleAutoFinalize(t *testing.T) {
	svc, repos, pub, _ := newTestService(t)
	// 发起方四维总和 60，应战方 50：打满后发起方胜
	battleUuid := mustChallenge(t, svc, repos, "chad-a", "chad-b", 40)
	if _, err := svc.Start(request.StartBattleRequest{ChadUuid: "chad-b", BattleUuid: battleUuid}); err != nil {
		t.Fatalf("start: %v", err)
	}

	playOut(t, svc, battleUuid, "chad-a", "chad-b")

	stored, err := repos.Battle.FindByUuid(battleUuid)
	if err != nil {
		t.Fatalf("reload battle: %v", err)
	}
	if stored.Status != model.BattleStatusCompleted {
		t.Fatalf("status = %q, want completed", stored.Status)
	}
	if stored.WinnerUuid != "chad-a" || stored.LoserUuid != "chad-b" {
		t.Errorf("winner/loser = %s/%s", stored.WinnerUuid, stored.LoserUuid)
	}
	if stored.RewardCoins != 80 {
		t.Errorf("reward = %d, want 2x wager 80", stored.RewardCoins)
	}
	if !stored.RewardPaid {
		t.Error("reward not marked paid")
	}
	if stored.CompletedAt == nil {
		t.Error("completed_at not set")
	}

	// 已结束的对战不再接受动作
	_, err = svc.PerformAction(request.BattleActionRequest{
		ChadUuid: "chad-a", BattleUuid: battleUuid, Action: model.ActionDefend,
	})
	if !errorx.IsCode(err, errorx.CodeInvalidState) {
		t.Errorf("action after finalize err = %v, want invalid state", err)
	}

	// 胜者：押注 -40、奖励 +80、经验 +100
	winnerFlows, err := repos.Ledger.FindByAccount("chad-a")
	if err != nil {
		t.Fatalf("winner flows: %v", err)
	}
	var reward, xp int
	for _, flow := range winnerFlows {
		switch flow.Type {
		case model.TxBattleReward:
			reward += flow.Amount
		case model.TxExperience:
			xp += flow.Amount
		}
	}
	if reward != 80 {
		t.Errorf("winner reward flows = %d, want 80", reward)
	}
	if xp != constants.WINNER_XP_REWARD {
		t.Errorf("winner xp flows = %d, want %d", xp, constants.WINNER_XP_REWARD)
	}

	// 败者只有参与经验
	loserFlows, err := repos.Ledger.FindByAccount("chad-b")
	if err != nil {
		t.Fatalf("loser flows: %v", err)
	}
	if len(loserFlows) != 1 || loserFlows[0].Type != model.TxExperience ||
		loserFlows[0].Amount != constants.LOSER_XP_REWARD {
		t.Errorf("unexpected loser flows: %+v", loserFlows)
	}

	if pub.CountType(mq.EventBattleCompleted) != 1 {
		t.Errorf("battle.completed events = %d, want 1", pub.CountType(mq.EventBattleCompleted))
	}
}

func TestBattleFinalizeDefaultReward(t *testing.T) {
	svc, repos, _, _ := newTestService(t)
	battleUuid := mustChallenge(t, svc, repos, "chad-a", "chad-b", 0)
	if _, err := svc.Start(request.StartBattleRequest{ChadUuid: "chad-b", BattleUuid: battleUuid}); err != nil {
		t.Fatalf("start: %v", err)
	}

	playOut(t, svc, battleUuid, "chad-a", "chad-b")

	stored, err := repos.Battle.FindByUuid(battleUuid)
	if err != nil {
		t.Fatalf("reload battle: %v", err)
	}
	if stored.RewardCoins != constants.DEFAULT_COIN_REWARD {
		t.Errorf("reward = %d, want default %d", stored.RewardCoins, constants.DEFAULT_COIN_REWARD)
	}
}

func TestBattleTie(t *testing.T) {
	svc, repos, _, _ := newTestService(t)
	// 四维总和相同：平局，无胜者无奖励
	servicetest.SeedStats(t, repos, "even-a", 10, 10, 10, 10)
	servicetest.SeedStats(t, repos, "even-b", 15, 5, 12, 8)
	resp, err := svc.CreateChallenge(request.CreateChallengeRequest{
		InitiatorUuid: "even-a", OpponentUuid: "even-b",
	})
	if err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	if _, err := svc.Start(request.StartBattleRequest{ChadUuid: "even-b", BattleUuid: resp.Uuid}); err != nil {
		t.Fatalf("start: %v", err)
	}

	playOut(t, svc, resp.Uuid, "even-a", "even-b")

	stored, err := repos.Battle.FindByUuid(resp.Uuid)
	if err != nil {
		t.Fatalf("reload battle: %v", err)
	}
	if stored.Status != model.BattleStatusCompleted {
		t.Fatalf("status = %q, want completed", stored.Status)
	}
	if stored.WinnerUuid != "" || stored.RewardCoins != 0 {
		t.Errorf("tie produced winner %q reward %d", stored.WinnerUuid, stored.RewardCoins)
	}
	entries := stored.LogEntries()
	tied := false
	for _, entry := range entries {
		if entry.Event == "battle_tied" {
			tied = true
		}
	}
	if !tied {
		t.Error("battle_tied log entry missing")
	}

	// 平局不发任何奖励流水
	for _, chad := range []string{"even-a", "even-b"} {
		flows, _ := repos.Ledger.FindByAccount(chad)
		if len(flows) != 0 {
			t.Errorf("tie flows for %s: %+v", chad, flows)
		}
	}
}

func TestCancelBattle(t *testing.T) {
	svc, repos, pub, _ := newTestService(t)
	battleUuid := mustChallenge(t, svc, repos, "chad-a", "chad-b", 0)

	// 局外人不能取消
	err := svc.Cancel(request.CancelBattleRequest{ChadUuid: "chad-x", BattleUuid: battleUuid})
	if !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("outsider cancel err = %v, want unauthorized", err)
	}

	if err := svc.Cancel(request.CancelBattleRequest{ChadUuid: "chad-b", BattleUuid: battleUuid}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	stored, err := repos.Battle.FindByUuid(battleUuid)
	if err != nil {
		t.Fatalf("reload battle: %v", err)
	}
	if stored.Status != model.BattleStatusCancelled {
		t.Errorf("status = %q, want cancelled", stored.Status)
	}
	if pub.CountType(mq.EventBattleCancelled) != 1 {
		t.Errorf("battle.cancelled events = %d, want 1", pub.CountType(mq.EventBattleCancelled))
	}

	// 终态不可重复取消
	err = svc.Cancel(request.CancelBattleRequest{ChadUuid: "chad-b", BattleUuid: battleUuid})
	if !errorx.IsCode(err, errorx.CodeInvalidState) {
		t.Errorf("double cancel err = %v, want invalid state", err)
	}

	// 已开始的对战不能取消
	battleUuid2 := mustChallenge(t, svc, repos, "chad-c", "chad-d", 0)
	if _, err := svc.Start(request.StartBattleRequest{ChadUuid: "chad-d", BattleUuid: battleUuid2}); err != nil {
		t.Fatalf("start: %v", err)
	}
	err = svc.Cancel(request.CancelBattleRequest{ChadUuid: "chad-c", BattleUuid: battleUuid2})
	if !errorx.IsCode(err, errorx.CodeInvalidState) {
		t.Errorf("cancel in_progress err = %v, want invalid state", err)
	}
}

func TestPayoutQueueOnLedgerFailure(t *testing.T) {
	repos := servicetest.NewRepos(t)
	pub := servicetest.NewStubPublisher()
	flaky := &flakyLedger{inner: ledger.NewService(repos.Ledger)}
	svc := NewBattleService(repos, flaky, stats.NewProvider(repos.Stats), pub,
		keylock.New(), newStubProgression())

	battleUuid := mustChallenge(t, svc, repos, "chad-a", "chad-b", 0)
	if _, err := svc.Start(request.StartBattleRequest{ChadUuid: "chad-b", BattleUuid: battleUuid}); err != nil {
		t.Fatalf("start: %v", err)
	}

	// 结算时账本故障：对战照样落定，奖励进补发队列
	flaky.fail = true
	playOut(t, svc, battleUuid, "chad-a", "chad-b")

	stored, err := repos.Battle.FindByUuid(battleUuid)
	if err != nil {
		t.Fatalf("reload battle: %v", err)
	}
	if stored.Status != model.BattleStatusCompleted {
		t.Fatalf("status = %q, want completed despite ledger failure", stored.Status)
	}
	if stored.RewardPaid {
		t.Error("reward marked paid while ledger down")
	}

	pending, err := repos.RewardPayout.FindPending(payoutBatchSize)
	if err != nil {
		t.Fatalf("find pending: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("pending payouts = %d, want 3 (coin + 2 xp)", len(pending))
	}

	// 账本恢复后补发成功
	flaky.fail = false
	succeeded, err := svc.RetryPendingPayouts()
	if err != nil {
		t.Fatalf("retry payouts: %v", err)
	}
	if succeeded != 3 {
		t.Errorf("succeeded = %d, want 3", succeeded)
	}
	remaining, err := repos.RewardPayout.FindPending(payoutBatchSize)
	if err != nil {
		t.Fatalf("find pending after retry: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("payouts still pending: %+v", remaining)
	}

	flows, err := repos.Ledger.FindByAccount("chad-a")
	if err != nil {
		t.Fatalf("winner flows: %v", err)
	}
	var reward int
	for _, flow := range flows {
		if flow.Type == model.TxBattleReward {
			reward += flow.Amount
		}
	}
	if reward != constants.DEFAULT_COIN_REWARD {
		t.Errorf("retried reward = %d, want %d", reward, constants.DEFAULT_COIN_REWARD)
	}
}

// seedWarCabal 落库一个公会及其在籍成员
func seedWarCabal(t *testing.T, repos *repository.Repositories, cabalUuid string, chads ...string) {
	t.Helper()
	cabal := model.Cabal{
		Uuid:       cabalUuid,
		Name:       "测试公会" + cabalUuid,
		LeaderId:   chads[0],
		InviteCode: fmt.Sprintf("%6.6s", cabalUuid[len(cabalUuid)-6:]),
		Level:      1,
		MemberCnt:  len(chads),
		Status:     model.CabalStatusNormal,
	}
	if err := repos.Cabal.Create(&cabal); err != nil {
		t.Fatalf("seed cabal: %v", err)
	}
	for i, chad := range chads {
		role := model.MemberRoleMember
		if i == 0 {
			role = model.MemberRoleLeader
		}
		member := model.CabalMember{
			CabalUuid: cabalUuid,
			ChadUuid:  chad,
			Role:      role,
			IsActive:  true,
			JoinedAt:  time.Now().Add(-time.Hour),
		}
		if err := repos.Member.Create(&member); err != nil {
			t.Fatalf("seed member %s: %v", chad, err)
		}
	}
}

// seedWarSchedule 落库一个已到时间的公会大战排期并报名指定成员
func seedWarSchedule(t *testing.T, repos *repository.Repositories,
	scheduleUuid, home, away string, optIns map[string]string) {
	t.Helper()
	scheduledAt := time.Now().Add(-time.Minute)
	schedule := model.CabalBattle{
		Uuid:         scheduleUuid,
		CabalUuid:    home,
		OpponentUuid: away,
		ScheduledAt:  scheduledAt,
		WeekNumber:   model.WeekNumberOf(scheduledAt),
	}
	if err := repos.CabalBattle.Create(&schedule); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	for chad, cabal := range optIns {
		if err := repos.Participant.Create(&model.BattleParticipant{
			CabalBattleUuid: scheduleUuid,
			ChadUuid:        chad,
			CabalUuid:       cabal,
		}); err != nil {
			t.Fatalf("seed participant %s: %v", chad, err)
		}
	}
}

func TestResolveCabalWar(t *testing.T) {
	svc, repos, pub, prog := newTestService(t)
	seedWarCabal(t, repos, "C-war-a", "a-lead", "a-side")
	seedWarCabal(t, repos, "C-war-b", "b-lead")

	// 主队报名 a-lead（总和 40），a-side 未报名不计分；客队报名 b-lead（总和 16）
	servicetest.SeedStats(t, repos, "a-lead", 10, 10, 10, 10)
	servicetest.SeedStats(t, repos, "a-side", 50, 50, 50, 50)
	servicetest.SeedStats(t, repos, "b-lead", 4, 4, 4, 4)
	prog.power["C-war-a"] = 5
	prog.power["C-war-b"] = 9
	seedWarSchedule(t, repos, "S-war-1", "C-war-a", "C-war-b", map[string]string{
		"a-lead": "C-war-a",
		"b-lead": "C-war-b",
	})

	resp, err := svc.ResolveCabalWar("S-war-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resp.Type != model.BattleTypeCabalWar || resp.Status != model.BattleStatusCompleted {
		t.Errorf("type/status = %s/%s", resp.Type, resp.Status)
	}
	// 主队 40+5=45 对客队 16+9=25
	if resp.WinnerUuid != "C-war-a" {
		t.Errorf("winner = %q, want C-war-a", resp.WinnerUuid)
	}
	if resp.RewardCoins != constants.DEFAULT_COIN_REWARD {
		t.Errorf("reward = %d, want %d", resp.RewardCoins, constants.DEFAULT_COIN_REWARD)
	}

	schedule, err := repos.CabalBattle.FindByUuid("S-war-1")
	if err != nil {
		t.Fatalf("reload schedule: %v", err)
	}
	if !schedule.Completed || schedule.Result != "win" || schedule.BattleUuid != resp.Uuid {
		t.Errorf("schedule after resolve: %+v", schedule)
	}

	winner, err := repos.Cabal.FindByUuid("C-war-a")
	if err != nil {
		t.Fatalf("reload winner: %v", err)
	}
	if winner.CoinBalance != constants.DEFAULT_COIN_REWARD {
		t.Errorf("winner treasury = %d, want %d", winner.CoinBalance, constants.DEFAULT_COIN_REWARD)
	}
	if winner.BattlesWon != 1 {
		t.Errorf("winner battles_won = %d, want 1", winner.BattlesWon)
	}
	loser, err := repos.Cabal.FindByUuid("C-war-b")
	if err != nil {
		t.Fatalf("reload loser: %v", err)
	}
	if loser.BattlesLost != 1 {
		t.Errorf("loser battles_lost = %d, want 1", loser.BattlesLost)
	}

	// 成长回调：胜方 100 经验，败方 25
	if prog.xpGiven["C-war-a"] != constants.WINNER_XP_REWARD {
		t.Errorf("winner cabal xp = %d, want %d", prog.xpGiven["C-war-a"], constants.WINNER_XP_REWARD)
	}
	if prog.xpGiven["C-war-b"] != constants.LOSER_XP_REWARD {
		t.Errorf("loser cabal xp = %d, want %d", prog.xpGiven["C-war-b"], constants.LOSER_XP_REWARD)
	}

	if pub.CountType(mq.EventBattleCompleted) != 1 {
		t.Errorf("battle.completed events = %d, want 1", pub.CountType(mq.EventBattleCompleted))
	}

	// 已结算的排期不能重复结算
	_, err = svc.ResolveCabalWar("S-war-1")
	if !errorx.IsCode(err, errorx.CodeInvalidState) {
		t.Errorf("re-resolve err = %v, want invalid state", err)
	}
}

func TestResolveCabalWarTie(t *testing.T) {
	svc, repos, _, prog := newTestService(t)
	seedWarCabal(t, repos, "C-tie-a", "ta-lead")
	seedWarCabal(t, repos, "C-tie-b", "tb-lead")
	servicetest.SeedStats(t, repos, "ta-lead", 5, 5, 5, 5)
	servicetest.SeedStats(t, repos, "tb-lead", 5, 5, 5, 5)
	seedWarSchedule(t, repos, "S-tie-1", "C-tie-a", "C-tie-b", map[string]string{
		"ta-lead": "C-tie-a",
		"tb-lead": "C-tie-b",
	})

	resp, err := svc.ResolveCabalWar("S-tie-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resp.WinnerUuid != "" || resp.RewardCoins != 0 {
		t.Errorf("tie produced winner %q reward %d", resp.WinnerUuid, resp.RewardCoins)
	}
	schedule, err := repos.CabalBattle.FindByUuid("S-tie-1")
	if err != nil {
		t.Fatalf("reload schedule: %v", err)
	}
	if !schedule.Completed || schedule.Result != "tie" {
		t.Errorf("schedule after tie: completed=%v result=%q", schedule.Completed, schedule.Result)
	}
	if len(prog.xpGiven) != 0 {
		t.Errorf("tie granted cabal xp: %+v", prog.xpGiven)
	}
}

func TestResolveCabalWarRules(t *testing.T) {
	svc, repos, _, _ := newTestService(t)
	seedWarCabal(t, repos, "C-rule-a", "ra-lead")
	seedWarCabal(t, repos, "C-rule-b", "rb-lead")

	// 不存在的排期
	_, err := svc.ResolveCabalWar("S-ghost")
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("missing schedule err = %v, want not found", err)
	}

	// 未到约战时间
	future := model.CabalBattle{
		Uuid:         "S-rule-1",
		CabalUuid:    "C-rule-a",
		OpponentUuid: "C-rule-b",
		ScheduledAt:  time.Now().Add(time.Hour),
		WeekNumber:   model.WeekNumberOf(time.Now()),
	}
	if err := repos.CabalBattle.Create(&future); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	_, err = svc.ResolveCabalWar("S-rule-1")
	if !errorx.IsCode(err, errorx.CodeInvalidState) {
		t.Errorf("early resolve err = %v, want invalid state", err)
	}
}
