package membership

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"cabal_battles_server/internal/dao/mysql/repository"
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/infrastructure/mq"
	"cabal_battles_server/internal/model"
	"cabal_battles_server/internal/service/ledger"
	"cabal_battles_server/internal/service/servicetest"
	"cabal_battles_server/internal/service/stats"
	"cabal_battles_server/pkg/errorx"
	"cabal_battles_server/pkg/util/keylock"
)

func newTestService(t *testing.T) (*membershipService, *repository.Repositories, *servicetest.StubPublisher) {
	t.Helper()
	repos := servicetest.NewRepos(t)
	pub := servicetest.NewStubPublisher()
	svc := NewMembershipService(repos, servicetest.NewStubCache(),
		ledger.NewService(repos.Ledger), stats.NewProvider(repos.Stats), pub, keylock.New())
	return svc, repos, pub
}

func mustCreateCabal(t *testing.T, svc *membershipService, name, leaderUuid string) (cabalUuid, inviteCode string) {
	t.Helper()
	rsp, err := svc.CreateCabal(request.CreateCabalRequest{LeaderUuid: leaderUuid, Name: name})
	if err != nil {
		t.Fatalf("create cabal %s: %v", name, err)
	}
	return rsp.CabalUuid, rsp.InviteCode
}

func mustJoin(t *testing.T, svc *membershipService, chadUuid, inviteCode, referrerUuid string) {
	t.Helper()
	_, err := svc.JoinByInviteCode(request.JoinCabalRequest{
		ChadUuid: chadUuid, InviteCode: inviteCode, ReferrerUuid: referrerUuid,
	})
	if err != nil {
		t.Fatalf("join %s: %v", chadUuid, err)
	}
}

func TestCreateCabal(t *testing.T) {
	svc, repos, pub := newTestService(t)

	rsp, err := svc.CreateCabal(request.CreateCabalRequest{LeaderUuid: "chad-1", Name: "夜袭军团"})
	if err != nil {
		t.Fatalf("create cabal: %v", err)
	}
	if !strings.HasPrefix(rsp.CabalUuid, "C") {
		t.Errorf("cabal uuid %q should have prefix C", rsp.CabalUuid)
	}
	if len(rsp.InviteCode) != 6 {
		t.Errorf("invite code %q should be 6 chars", rsp.InviteCode)
	}

	cabal, err := repos.Cabal.FindByUuid(rsp.CabalUuid)
	if err != nil {
		t.Fatalf("find cabal: %v", err)
	}
	if cabal.Level != 1 || cabal.MemberCnt != 1 || cabal.Status != model.CabalStatusNormal {
		t.Errorf("unexpected cabal state: level=%d memberCnt=%d status=%d", cabal.Level, cabal.MemberCnt, cabal.Status)
	}

	member, err := repos.Member.FindActiveByChad("chad-1")
	if err != nil {
		t.Fatalf("find leader member: %v", err)
	}
	if member.Role != model.MemberRoleLeader {
		t.Errorf("creator role = %d, want leader", member.Role)
	}
	if pub.CountType(mq.EventCabalCreated) != 1 {
		t.Errorf("cabal created event count = %d, want 1", pub.CountType(mq.EventCabalCreated))
	}
}

func TestCreateCabalNameLengthInRunes(t *testing.T) {
	svc, _, _ := newTestService(t)

	// 长度按字符数而非字节数计：50 个汉字（150 字节）合法
	longName := strings.Repeat("战", 50)
	if _, err := svc.CreateCabal(request.CreateCabalRequest{LeaderUuid: "chad-1", Name: longName}); err != nil {
		t.Errorf("50-rune name rejected: %v", err)
	}

	_, err := svc.CreateCabal(request.CreateCabalRequest{
		LeaderUuid: "chad-2", Name: strings.Repeat("战", 51),
	})
	if !errorx.IsCode(err, errorx.CodeInvalidParam) {
		t.Errorf("51-rune name err = %v, want invalid param", err)
	}

	// 简介同理：500 个汉字合法，501 个超限
	if _, err := svc.CreateCabal(request.CreateCabalRequest{
		LeaderUuid: "chad-3", Name: "简介军团", Description: strings.Repeat("燃", 500),
	}); err != nil {
		t.Errorf("500-rune description rejected: %v", err)
	}
	_, err = svc.CreateCabal(request.CreateCabalRequest{
		LeaderUuid: "chad-4", Name: "简介超限军团", Description: strings.Repeat("燃", 501),
	})
	if !errorx.IsCode(err, errorx.CodeInvalidParam) {
		t.Errorf("501-rune description err = %v, want invalid param", err)
	}
}

func TestCreateCabalDuplicateName(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustCreateCabal(t, svc, "重名军团", "chad-1")

	_, err := svc.CreateCabal(request.CreateCabalRequest{LeaderUuid: "chad-2", Name: "重名军团"})
	if !errorx.IsCode(err, errorx.CodeConflict) {
		t.Errorf("duplicate name err = %v, want conflict", err)
	}
}

func TestCreateCabalWhileEnrolled(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustCreateCabal(t, svc, "第一军团", "chad-1")

	_, err := svc.CreateCabal(request.CreateCabalRequest{LeaderUuid: "chad-1", Name: "第二军团"})
	if !errorx.IsCode(err, errorx.CodeConflict) {
		t.Errorf("enrolled creator err = %v, want conflict", err)
	}
}

func TestJoinByInviteCode(t *testing.T) {
	svc, repos, pub := newTestService(t)
	cabalUuid, code := mustCreateCabal(t, svc, "测试军团", "leader-1")

	// 小写邀请码也应被接受
	rsp, err := svc.JoinByInviteCode(request.JoinCabalRequest{
		ChadUuid: "chad-2", InviteCode: strings.ToLower(code),
	})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if rsp.MemberCnt != 2 {
		t.Errorf("member cnt = %d, want 2", rsp.MemberCnt)
	}

	member, err := repos.Member.FindActiveByChad("chad-2")
	if err != nil {
		t.Fatalf("find member: %v", err)
	}
	if member.CabalUuid != cabalUuid || member.Role != model.MemberRoleMember {
		t.Errorf("unexpected member record: cabal=%s role=%d", member.CabalUuid, member.Role)
	}
	if pub.CountType(mq.EventMemberJoined) != 1 {
		t.Errorf("member joined event count = %d, want 1", pub.CountType(mq.EventMemberJoined))
	}
}

func TestJoinEnforcesSingleMembership(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, code1 := mustCreateCabal(t, svc, "甲军团", "leader-1")
	_, code2 := mustCreateCabal(t, svc, "乙军团", "leader-2")

	mustJoin(t, svc, "chad-3", code1, "")
	_, err := svc.JoinByInviteCode(request.JoinCabalRequest{ChadUuid: "chad-3", InviteCode: code2})
	if !errorx.IsCode(err, errorx.CodeConflict) {
		t.Errorf("double join err = %v, want conflict", err)
	}
}

func TestJoinConcurrentSingleMembership(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabal1, code1 := mustCreateCabal(t, svc, "并发甲军团", "leader-1")
	cabal2, code2 := mustCreateCabal(t, svc, "并发乙军团", "leader-2")

	// 同一角色同时加入两个公会，无论先后只能成功一次
	for i := 0; i < 40; i++ {
		chad := fmt.Sprintf("racer-%d", i)
		var wg sync.WaitGroup
		for _, code := range []string{code1, code2} {
			wg.Add(1)
			go func(code string) {
				defer wg.Done()
				svc.JoinByInviteCode(request.JoinCabalRequest{ChadUuid: chad, InviteCode: code})
			}(code)
		}
		wg.Wait()

		active := 0
		for _, cabalUuid := range []string{cabal1, cabal2} {
			if _, err := repos.Member.FindActiveByCabalAndChad(cabalUuid, chad); err == nil {
				active++
			} else if !errorx.IsNotFound(err) {
				t.Fatalf("find membership: %v", err)
			}
		}
		if active != 1 {
			t.Fatalf("round %d: active memberships = %d, want 1", i, active)
		}
	}
}

func TestJoinConcurrentWithCreate(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabal1, code1 := mustCreateCabal(t, svc, "既有军团", "leader-1")

	// 同一角色同时加入公会和创建新会，两者至多成功一个
	for i := 0; i < 40; i++ {
		chad := fmt.Sprintf("founder-%d", i)
		name := fmt.Sprintf("新建军团%d", i)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.JoinByInviteCode(request.JoinCabalRequest{ChadUuid: chad, InviteCode: code1})
		}()
		go func() {
			defer wg.Done()
			svc.CreateCabal(request.CreateCabalRequest{LeaderUuid: chad, Name: name})
		}()
		wg.Wait()

		active := 0
		if _, err := repos.Member.FindActiveByCabalAndChad(cabal1, chad); err == nil {
			active++
		}
		if created, err := repos.Cabal.FindByName(name); err == nil {
			if _, merr := repos.Member.FindActiveByCabalAndChad(created.Uuid, chad); merr == nil {
				active++
			}
		}
		if active != 1 {
			t.Fatalf("round %d: active memberships = %d, want 1", i, active)
		}
	}
}

func TestJoinInvalidInviteCode(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustCreateCabal(t, svc, "军团", "leader-1")

	_, err := svc.JoinByInviteCode(request.JoinCabalRequest{ChadUuid: "chad-2", InviteCode: "abc"})
	if !errorx.IsCode(err, errorx.CodeInvalidParam) {
		t.Errorf("malformed code err = %v, want invalid param", err)
	}

	_, err = svc.JoinByInviteCode(request.JoinCabalRequest{ChadUuid: "chad-2", InviteCode: "ZZZZ99"})
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("unknown code err = %v, want not found", err)
	}
}

func TestReferralReward(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabalUuid, code := mustCreateCabal(t, svc, "推荐军团", "leader-1")
	mustJoin(t, svc, "referrer-1", code, "")

	mustJoin(t, svc, "newbie-1", code, "referrer-1")

	referrer, err := repos.Member.FindActiveByChad("referrer-1")
	if err != nil {
		t.Fatalf("find referrer: %v", err)
	}
	if referrer.Contribution != 50 {
		t.Errorf("referrer contribution = %d, want 50", referrer.Contribution)
	}

	cabal, err := repos.Cabal.FindByUuid(cabalUuid)
	if err != nil {
		t.Fatalf("find cabal: %v", err)
	}
	if cabal.Xp != 100 {
		t.Errorf("cabal xp = %d, want 100", cabal.Xp)
	}

	flows, err := repos.Ledger.FindByAccount("referrer-1")
	if err != nil {
		t.Fatalf("find ledger: %v", err)
	}
	if len(flows) != 1 || flows[0].Type != model.TxReferralBonus || flows[0].Amount != 50 {
		t.Errorf("unexpected referral ledger entries: %+v", flows)
	}
}

func TestReferralRewardIdempotent(t *testing.T) {
	svc, repos, _ := newTestService(t)
	_, code := mustCreateCabal(t, svc, "幂等军团", "leader-1")
	mustJoin(t, svc, "referrer-1", code, "")
	mustJoin(t, svc, "newbie-1", code, "referrer-1")

	// 退会后用同一推荐人重新加入，推荐奖励不得重复发放
	if err := svc.Leave("newbie-1"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	mustJoin(t, svc, "newbie-1", code, "referrer-1")

	referrer, err := repos.Member.FindActiveByChad("referrer-1")
	if err != nil {
		t.Fatalf("find referrer: %v", err)
	}
	if referrer.Contribution != 50 {
		t.Errorf("referrer contribution after rejoin = %d, want 50", referrer.Contribution)
	}
	flows, err := repos.Ledger.FindByAccount("referrer-1")
	if err != nil {
		t.Fatalf("find ledger: %v", err)
	}
	if len(flows) != 1 {
		t.Errorf("referral ledger entries = %d, want 1", len(flows))
	}
}

func TestReferralOutsideCabalIgnored(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabalUuid, code := mustCreateCabal(t, svc, "忽略军团", "leader-1")

	// 推荐人不是本公会成员：加入成功但不发奖励
	mustJoin(t, svc, "newbie-1", code, "stranger-1")

	cabal, err := repos.Cabal.FindByUuid(cabalUuid)
	if err != nil {
		t.Fatalf("find cabal: %v", err)
	}
	if cabal.Xp != 0 {
		t.Errorf("cabal xp = %d, want 0", cabal.Xp)
	}
	if _, err := repos.Referral.FindByPair("stranger-1", "newbie-1"); !errorx.IsNotFound(err) {
		t.Errorf("referral record should not exist, err = %v", err)
	}
}

func TestLeaveLeaderBlocked(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustCreateCabal(t, svc, "会长军团", "leader-1")

	err := svc.Leave("leader-1")
	if !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("leader leave err = %v, want unauthorized", err)
	}
}

func TestLeaveMember(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabalUuid, code := mustCreateCabal(t, svc, "离会军团", "leader-1")
	mustJoin(t, svc, "chad-2", code, "")

	if err := svc.Leave("chad-2"); err != nil {
		t.Fatalf("leave: %v", err)
	}

	if _, err := repos.Member.FindActiveByChad("chad-2"); !errorx.IsNotFound(err) {
		t.Errorf("member should be inactive, err = %v", err)
	}
	cabal, err := repos.Cabal.FindByUuid(cabalUuid)
	if err != nil {
		t.Fatalf("find cabal: %v", err)
	}
	if cabal.MemberCnt != 1 {
		t.Errorf("member cnt = %d, want 1", cabal.MemberCnt)
	}
}

func TestRemoveMemberClearsOfficerSeat(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabalUuid, code := mustCreateCabal(t, svc, "移除军团", "leader-1")
	mustJoin(t, svc, "chad-2", code, "")

	if err := repos.Officer.Create(&model.OfficerRole{
		CabalUuid: cabalUuid, ChadUuid: "chad-2", StatType: model.StatPower,
	}); err != nil {
		t.Fatalf("seed officer: %v", err)
	}

	if err := svc.RemoveMember("leader-1", "chad-2"); err != nil {
		t.Fatalf("remove member: %v", err)
	}

	if _, err := repos.Member.FindActiveByChad("chad-2"); !errorx.IsNotFound(err) {
		t.Errorf("target should be inactive, err = %v", err)
	}
	if _, err := repos.Officer.FindByCabalAndStat(cabalUuid, model.StatPower); !errorx.IsNotFound(err) {
		t.Errorf("officer seat should be cleared, err = %v", err)
	}
}

func TestRemoveMemberRequiresLeader(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, code := mustCreateCabal(t, svc, "越权军团", "leader-1")
	mustJoin(t, svc, "chad-2", code, "")
	mustJoin(t, svc, "chad-3", code, "")

	err := svc.RemoveMember("chad-2", "chad-3")
	if !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("non-leader remove err = %v, want unauthorized", err)
	}
}

func TestChangeLeader(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabalUuid, code := mustCreateCabal(t, svc, "换届军团", "leader-1")
	mustJoin(t, svc, "chad-2", code, "")

	// 既有罢免票在换届后应被清空
	if err := repos.Vote.Create(&model.LeaderVote{
		CabalUuid: cabalUuid, VoterUuid: "chad-2", TargetUuid: "leader-1",
	}); err != nil {
		t.Fatalf("seed vote: %v", err)
	}

	if err := svc.ChangeLeader("leader-1", "chad-2"); err != nil {
		t.Fatalf("change leader: %v", err)
	}

	cabal, err := repos.Cabal.FindByUuid(cabalUuid)
	if err != nil {
		t.Fatalf("find cabal: %v", err)
	}
	if cabal.LeaderId != "chad-2" {
		t.Errorf("leader id = %s, want chad-2", cabal.LeaderId)
	}
	oldLeader, _ := repos.Member.FindActiveByChad("leader-1")
	newLeader, _ := repos.Member.FindActiveByChad("chad-2")
	if oldLeader.Role != model.MemberRoleMember || newLeader.Role != model.MemberRoleLeader {
		t.Errorf("roles after change: old=%d new=%d", oldLeader.Role, newLeader.Role)
	}
	votes, err := repos.Vote.CountValid(cabalUuid, "leader-1", cabal.CreatedAt)
	if err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if votes != 0 {
		t.Errorf("votes after change = %d, want 0", votes)
	}
}

func TestDisband(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabalUuid, code := mustCreateCabal(t, svc, "解散军团", "leader-1")
	mustJoin(t, svc, "chad-2", code, "")

	if err := svc.Disband("leader-1"); err != nil {
		t.Fatalf("disband: %v", err)
	}

	cabal, err := repos.Cabal.FindByUuid(cabalUuid)
	if err != nil {
		t.Fatalf("find cabal: %v", err)
	}
	if cabal.Status != model.CabalStatusDisbanded || cabal.MemberCnt != 0 {
		t.Errorf("cabal after disband: status=%d memberCnt=%d", cabal.Status, cabal.MemberCnt)
	}
	if _, err := repos.Member.FindActiveByChad("chad-2"); !errorx.IsNotFound(err) {
		t.Errorf("members should be inactive, err = %v", err)
	}

	// 解散是终态，邀请码不可再用
	_, err = svc.JoinByInviteCode(request.JoinCabalRequest{ChadUuid: "chad-9", InviteCode: code})
	if !errorx.IsCode(err, errorx.CodeInvalidState) {
		t.Errorf("join disbanded err = %v, want invalid state", err)
	}
}

func TestXpLevelUpCurve(t *testing.T) {
	svc, repos, pub := newTestService(t)
	cabalUuid, _ := mustCreateCabal(t, svc, "升级军团", "leader-1")

	// 1 级升 2 级需要累计 1000 经验，升级发放 新等级*100 金币
	if err := svc.AddXp(cabalUuid, 1000); err != nil {
		t.Fatalf("add xp: %v", err)
	}
	cabal, _ := repos.Cabal.FindByUuid(cabalUuid)
	if cabal.Level != 2 || cabal.CoinBalance != 200 {
		t.Errorf("after 1000 xp: level=%d coins=%d, want level 2 coins 200", cabal.Level, cabal.CoinBalance)
	}

	// 2 级升 3 级需要累计 2000+500=2500 经验
	if err := svc.AddXp(cabalUuid, 1499); err != nil {
		t.Fatalf("add xp: %v", err)
	}
	cabal, _ = repos.Cabal.FindByUuid(cabalUuid)
	if cabal.Level != 2 {
		t.Errorf("at 2499 xp: level=%d, want 2", cabal.Level)
	}

	if err := svc.AddXp(cabalUuid, 1); err != nil {
		t.Fatalf("add xp: %v", err)
	}
	cabal, _ = repos.Cabal.FindByUuid(cabalUuid)
	if cabal.Level != 3 || cabal.CoinBalance != 500 {
		t.Errorf("at 2500 xp: level=%d coins=%d, want level 3 coins 500", cabal.Level, cabal.CoinBalance)
	}

	flows, err := repos.Ledger.FindByAccount(cabalUuid)
	if err != nil {
		t.Fatalf("find ledger: %v", err)
	}
	if len(flows) != 2 {
		t.Errorf("level up ledger entries = %d, want 2", len(flows))
	}
	if pub.CountType(mq.EventCabalLevelUp) != 2 {
		t.Errorf("level up events = %d, want 2", pub.CountType(mq.EventCabalLevelUp))
	}
}

func TestSpendCoin(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabalUuid, _ := mustCreateCabal(t, svc, "金库军团", "leader-1")
	if err := svc.AddXp(cabalUuid, 1000); err != nil { // 升级入账 200 金币
		t.Fatalf("add xp: %v", err)
	}

	err := svc.SpendCoin(request.SpendCoinRequest{LeaderUuid: "leader-1", Amount: 500, Reason: "买横幅"})
	if !errorx.IsCode(err, errorx.CodeInvalidState) {
		t.Errorf("overdraw err = %v, want invalid state", err)
	}

	if err := svc.SpendCoin(request.SpendCoinRequest{LeaderUuid: "leader-1", Amount: 150, Reason: "买横幅"}); err != nil {
		t.Fatalf("spend coin: %v", err)
	}
	cabal, _ := repos.Cabal.FindByUuid(cabalUuid)
	if cabal.CoinBalance != 50 {
		t.Errorf("coin balance = %d, want 50", cabal.CoinBalance)
	}

	flows, _ := repos.Ledger.FindByAccount(cabalUuid)
	var spend *model.Transaction
	for i := range flows {
		if flows[i].Type == model.TxTreasurySpend {
			spend = &flows[i]
		}
	}
	if spend == nil || spend.Amount != -150 {
		t.Errorf("treasury spend flow = %+v, want amount -150", spend)
	}
}

func TestRecomputeTotalPower(t *testing.T) {
	svc, repos, _ := newTestService(t)
	cabalUuid, code := mustCreateCabal(t, svc, "战力军团", "leader-1")
	mustJoin(t, svc, "chad-2", code, "")
	mustJoin(t, svc, "chad-3", code, "")

	servicetest.SeedStats(t, repos, "leader-1", 10, 20, 30, 40)
	servicetest.SeedStats(t, repos, "chad-2", 5, 5, 5, 5)
	// chad-3 无属性记录，不计入

	total, err := svc.RecomputeTotalPower(cabalUuid)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if total != 120 {
		t.Errorf("total power = %d, want 120", total)
	}
	cabal, _ := repos.Cabal.FindByUuid(cabalUuid)
	if cabal.TotalPower != 120 {
		t.Errorf("persisted total power = %d, want 120", cabal.TotalPower)
	}
}
