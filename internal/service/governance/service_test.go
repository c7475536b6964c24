package governance

import (
	"fmt"
	"testing"
	"time"

	"cabal_battles_server/internal/config"
	"cabal_battles_server/internal/dao/mysql/repository"
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/model"
	"cabal_battles_server/internal/service/servicetest"
	"cabal_battles_server/pkg/errorx"
	"cabal_battles_server/pkg/util/keylock"
)

func newTestService(t *testing.T) (*governanceService, *repository.Repositories, *servicetest.StubPublisher) {
	t.Helper()
	repos := servicetest.NewRepos(t)
	pub := servicetest.NewStubPublisher()
	svc := NewGovernanceService(repos, pub, keylock.New(),
		&config.GameConfig{VoteExpiryDays: 14})
	return svc, repos, pub
}

// seedCabal 直接落库一个公会：首个角色为会长，其余按给定顺序入会
func seedCabal(t *testing.T, repos *repository.Repositories, cabalUuid string, chads ...string) {
	t.Helper()
	if len(chads) == 0 {
		t.Fatal("seedCabal needs at least a leader")
	}
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
	base := time.Now().Add(-time.Hour)
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
			JoinedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := repos.Member.Create(&member); err != nil {
			t.Fatalf("seed member %s: %v", chad, err)
		}
	}
}

func TestAppointOfficer(t *testing.T) {
	svc, repos, _ := newTestService(t)
	seedCabal(t, repos, "C-gov-1", "leader-1", "chad-2", "chad-3")

	err := svc.AppointOfficer(request.AppointOfficerRequest{
		LeaderUuid: "leader-1", TargetUuid: "chad-2", StatType: model.StatPower,
	})
	if err != nil {
		t.Fatalf("appoint: %v", err)
	}

	// 顶替现任：同一席位重新任命后只剩新官员
	err = svc.AppointOfficer(request.AppointOfficerRequest{
		LeaderUuid: "leader-1", TargetUuid: "chad-3", StatType: model.StatPower,
	})
	if err != nil {
		t.Fatalf("reappoint: %v", err)
	}

	officers, err := svc.GetOfficerList("C-gov-1")
	if err != nil {
		t.Fatalf("list officers: %v", err)
	}
	if len(officers) != 1 || officers[0].ChadUuid != "chad-3" || officers[0].StatType != model.StatPower {
		t.Errorf("unexpected officer list: %+v", officers)
	}
}

func TestAppointOfficerValidation(t *testing.T) {
	svc, repos, _ := newTestService(t)
	seedCabal(t, repos, "C-gov-2", "leader-1", "chad-2")

	err := svc.AppointOfficer(request.AppointOfficerRequest{
		LeaderUuid: "leader-1", TargetUuid: "chad-2", StatType: "charm",
	})
	if !errorx.IsCode(err, errorx.CodeInvalidParam) {
		t.Errorf("bad stat err = %v, want invalid param", err)
	}

	err = svc.AppointOfficer(request.AppointOfficerRequest{
		LeaderUuid: "leader-1", TargetUuid: "leader-1", StatType: model.StatStyle,
	})
	if !errorx.IsCode(err, errorx.CodeInvalidParam) {
		t.Errorf("self appoint err = %v, want invalid param", err)
	}

	err = svc.AppointOfficer(request.AppointOfficerRequest{
		LeaderUuid: "leader-1", TargetUuid: "stranger-1", StatType: model.StatStyle,
	})
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("stranger appoint err = %v, want not found", err)
	}

	err = svc.AppointOfficer(request.AppointOfficerRequest{
		LeaderUuid: "chad-2", TargetUuid: "leader-1", StatType: model.StatStyle,
	})
	if !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("non-leader appoint err = %v, want unauthorized", err)
	}
}

func TestRemoveOfficer(t *testing.T) {
	svc, repos, _ := newTestService(t)
	seedCabal(t, repos, "C-gov-3", "leader-1", "chad-2")

	err := svc.RemoveOfficer(request.RemoveOfficerRequest{
		LeaderUuid: "leader-1", StatType: model.StatAggression,
	})
	if !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("vacant seat err = %v, want not found", err)
	}

	if err := svc.AppointOfficer(request.AppointOfficerRequest{
		LeaderUuid: "leader-1", TargetUuid: "chad-2", StatType: model.StatAggression,
	}); err != nil {
		t.Fatalf("appoint: %v", err)
	}
	if err := svc.RemoveOfficer(request.RemoveOfficerRequest{
		LeaderUuid: "leader-1", StatType: model.StatAggression,
	}); err != nil {
		t.Fatalf("remove: %v", err)
	}

	officers, _ := svc.GetOfficerList("C-gov-3")
	if len(officers) != 0 {
		t.Errorf("officer list after remove = %+v, want empty", officers)
	}
}

func TestVoteRemoveLeaderMajority(t *testing.T) {
	svc, repos, _ := newTestService(t)
	// 5 名在籍成员，严格过半需要 3 票
	seedCabal(t, repos, "C-gov-4", "leader-1", "chad-2", "chad-3", "chad-4", "chad-5")

	// 官员优先继任
	if err := svc.AppointOfficer(request.AppointOfficerRequest{
		LeaderUuid: "leader-1", TargetUuid: "chad-2", StatType: model.StatPower,
	}); err != nil {
		t.Fatalf("appoint: %v", err)
	}

	rsp, err := svc.VoteRemoveLeader("chad-3")
	if err != nil {
		t.Fatalf("vote 1: %v", err)
	}
	if rsp.LeaderChanged || rsp.Votes != 1 || rsp.ActiveMembers != 5 {
		t.Errorf("after vote 1: %+v", rsp)
	}

	rsp, err = svc.VoteRemoveLeader("chad-4")
	if err != nil {
		t.Fatalf("vote 2: %v", err)
	}
	if rsp.LeaderChanged {
		t.Errorf("2 of 5 votes should not change leader: %+v", rsp)
	}

	rsp, err = svc.VoteRemoveLeader("chad-5")
	if err != nil {
		t.Fatalf("vote 3: %v", err)
	}
	if !rsp.LeaderChanged || rsp.NewLeaderUuid != "chad-2" {
		t.Errorf("3 of 5 votes should promote officer chad-2: %+v", rsp)
	}

	cabal, err := repos.Cabal.FindByUuid("C-gov-4")
	if err != nil {
		t.Fatalf("find cabal: %v", err)
	}
	if cabal.LeaderId != "chad-2" {
		t.Errorf("leader id = %s, want chad-2", cabal.LeaderId)
	}

	// 换届后票被清空，对新会长的计票从零开始
	rsp, err = svc.VoteRemoveLeader("chad-3")
	if err != nil {
		t.Fatalf("vote against new leader: %v", err)
	}
	if rsp.Votes != 1 || rsp.LeaderChanged {
		t.Errorf("new incumbency vote count: %+v", rsp)
	}
}

func TestVoteRemoveLeaderSeniorSuccessor(t *testing.T) {
	svc, repos, _ := newTestService(t)
	// 无官员时提拔入会最早的非会长成员
	seedCabal(t, repos, "C-gov-5", "leader-1", "elder-1", "chad-3")

	if _, err := svc.VoteRemoveLeader("elder-1"); err != nil {
		t.Fatalf("vote 1: %v", err)
	}
	rsp, err := svc.VoteRemoveLeader("chad-3")
	if err != nil {
		t.Fatalf("vote 2: %v", err)
	}
	// 3 人公会 2 票即过半
	if !rsp.LeaderChanged || rsp.NewLeaderUuid != "elder-1" {
		t.Errorf("expected elder-1 promoted: %+v", rsp)
	}
}

func TestVoteRemoveLeaderRules(t *testing.T) {
	svc, repos, _ := newTestService(t)
	seedCabal(t, repos, "C-gov-6", "leader-1", "chad-2", "chad-3", "chad-4", "chad-5")

	if _, err := svc.VoteRemoveLeader("leader-1"); !errorx.IsCode(err, errorx.CodeUnauthorized) {
		t.Errorf("leader self vote err = %v, want unauthorized", err)
	}
	if _, err := svc.VoteRemoveLeader("stranger-1"); !errorx.IsCode(err, errorx.CodeNotFound) {
		t.Errorf("stranger vote err = %v, want not found", err)
	}

	if _, err := svc.VoteRemoveLeader("chad-2"); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if _, err := svc.VoteRemoveLeader("chad-2"); !errorx.IsCode(err, errorx.CodeConflict) {
		t.Errorf("duplicate vote err = %v, want conflict", err)
	}
}

func TestExpiredVotesNotCounted(t *testing.T) {
	svc, repos, _ := newTestService(t)
	seedCabal(t, repos, "C-gov-7", "leader-1", "chad-2", "chad-3")

	// 过期票：落库时间早于有效期窗口
	stale := model.LeaderVote{
		CabalUuid: "C-gov-7", VoterUuid: "chad-2", TargetUuid: "leader-1",
	}
	stale.CreatedAt = time.Now().Add(-30 * 24 * time.Hour)
	if err := repos.Vote.Create(&stale); err != nil {
		t.Fatalf("seed stale vote: %v", err)
	}

	// 3 人公会，若过期票计入则 2 票过半换届；不计入则只有 1 有效票
	rsp, err := svc.VoteRemoveLeader("chad-3")
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if rsp.Votes != 1 || rsp.LeaderChanged {
		t.Errorf("stale vote should not count: %+v", rsp)
	}

	if err := svc.PruneExpiredVotes(); err != nil {
		t.Fatalf("prune: %v", err)
	}
	votes, err := repos.Vote.CountValid("C-gov-7", "leader-1", time.Now().Add(-365*24*time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if votes != 1 {
		t.Errorf("votes after prune = %d, want 1 (only the fresh vote)", votes)
	}
}
