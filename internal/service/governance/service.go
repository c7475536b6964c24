// Package governance 实现公会治理的核心业务逻辑
// 覆盖官员任免和罢免会长投票；票数过半时自动换届，
// 优先提拔最早任命的官员，无官员时提拔资历最深的成员
package governance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cabal_battles_server/internal/config"
	"cabal_battles_server/internal/dao/mysql/repository"
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/dto/respond"
	"cabal_battles_server/internal/infrastructure/mq"
	"cabal_battles_server/internal/model"
	"cabal_battles_server/internal/service/membership"
	"cabal_battles_server/pkg/errorx"
	"cabal_battles_server/pkg/util/keylock"
)

// votePruneInterval 过期罢免票清理任务执行间隔
const votePruneInterval = 6 * time.Hour

// governanceService 治理业务逻辑实现
type governanceService struct {
	repos     *repository.Repositories
	publisher mq.Publisher
	locks     *keylock.KeyLock
	voteTTL   time.Duration
}

// NewGovernanceService 构造函数，注入所有依赖
// 投票有效期取自 GameConfig.VoteExpiryDays
func NewGovernanceService(repos *repository.Repositories, publisher mq.Publisher,
	locks *keylock.KeyLock, gameCfg *config.GameConfig) *governanceService {
	return &governanceService{
		repos:     repos,
		publisher: publisher,
		locks:     locks,
		voteTTL:   time.Duration(gameCfg.VoteExpiryDays) * 24 * time.Hour,
	}
}

// AppointOfficer 任命官员
// 会长专属；目标必须是本公会在籍成员且不是会长本人；顶替现任席位持有者
func (g *governanceService) AppointOfficer(req request.AppointOfficerRequest) error {
	if !model.ValidStatType(req.StatType) {
		return errorx.New(errorx.CodeInvalidParam, "无效的属性类别")
	}

	leader, err := g.requireLeader(req.LeaderUuid)
	if err != nil {
		return err
	}
	if req.TargetUuid == req.LeaderUuid {
		return errorx.New(errorx.CodeInvalidParam, "会长不能兼任官员")
	}

	g.locks.Lock(leader.CabalUuid)
	defer g.locks.Unlock(leader.CabalUuid)

	if _, err := g.repos.Member.FindActiveByCabalAndChad(leader.CabalUuid, req.TargetUuid); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "该角色不是本公会成员")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		// 顶替现任：先清空席位再任命
		if err := txRepos.Officer.DeleteByCabalAndStat(leader.CabalUuid, req.StatType); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		role := model.OfficerRole{
			CabalUuid: leader.CabalUuid,
			ChadUuid:  req.TargetUuid,
			StatType:  req.StatType,
		}
		if err := txRepos.Officer.Create(&role); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return err
	}

	g.publisher.Publish(context.Background(), mq.NewEvent(mq.EventOfficerChanged, leader.CabalUuid,
		map[string]interface{}{"chad": req.TargetUuid, "stat_type": req.StatType, "appointed": true}))
	return nil
}

// RemoveOfficer 撤销官员席位，席位空缺时报错
func (g *governanceService) RemoveOfficer(req request.RemoveOfficerRequest) error {
	if !model.ValidStatType(req.StatType) {
		return errorx.New(errorx.CodeInvalidParam, "无效的属性类别")
	}

	leader, err := g.requireLeader(req.LeaderUuid)
	if err != nil {
		return err
	}

	g.locks.Lock(leader.CabalUuid)
	defer g.locks.Unlock(leader.CabalUuid)

	incumbent, err := g.repos.Officer.FindByCabalAndStat(leader.CabalUuid, req.StatType)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "该席位当前无人担任")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if err := g.repos.Officer.DeleteByCabalAndStat(leader.CabalUuid, req.StatType); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	g.publisher.Publish(context.Background(), mq.NewEvent(mq.EventOfficerChanged, leader.CabalUuid,
		map[string]interface{}{"chad": incumbent.ChadUuid, "stat_type": req.StatType, "appointed": false}))
	return nil
}

// GetOfficerList 获取现任官员列表，按任命时间升序
func (g *governanceService) GetOfficerList(cabalUuid string) ([]respond.OfficerListRespond, error) {
	roles, err := g.repos.Officer.FindByCabal(cabalUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.OfficerListRespond, 0, len(roles))
	for _, role := range roles {
		rsp = append(rsp, respond.OfficerListRespond{
			ChadUuid:    role.ChadUuid,
			StatType:    role.StatType,
			AppointedAt: role.CreatedAt.Format(time.RFC3339),
		})
	}
	return rsp, nil
}

// VoteRemoveLeader 投票罢免会长
// 投票人必须是在籍非会长成员；同一任期内每人一票；
// 有效票（在 TTL 窗口内）超过在籍成员半数时立即换届，换届清空全部票，
// 保证同一任期内换届至多触发一次
func (g *governanceService) VoteRemoveLeader(voterUuid string) (*respond.VoteRespond, error) {
	voter, err := g.repos.Member.FindActiveByChad(voterUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "未加入任何公会")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if voter.Role == model.MemberRoleLeader {
		return nil, errorx.New(errorx.CodeUnauthorized, "会长不能对自己投罢免票")
	}

	g.locks.Lock(voter.CabalUuid)
	defer g.locks.Unlock(voter.CabalUuid)

	cabal, err := g.repos.Cabal.FindByUuid(voter.CabalUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if cabal.Status != model.CabalStatusNormal {
		return nil, errorx.New(errorx.CodeInvalidState, "公会已解散")
	}

	// 同一任期内一人一票
	if _, err := g.repos.Vote.FindByVoter(cabal.Uuid, voterUuid, cabal.LeaderId); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "本任期内已投过票")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	vote := model.LeaderVote{
		CabalUuid:  cabal.Uuid,
		VoterUuid:  voterUuid,
		TargetUuid: cabal.LeaderId,
	}
	if err := g.repos.Vote.Create(&vote); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 从一致快照计票：在籍人数和有效票数都在持锁状态下读取
	since := time.Now().Add(-g.voteTTL)
	votes, err := g.repos.Vote.CountValid(cabal.Uuid, cabal.LeaderId, since)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	activeMembers, err := g.repos.Member.CountActiveByCabal(cabal.Uuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.VoteRespond{Votes: votes, ActiveMembers: activeMembers}

	// 严格过半才触发换届
	if votes*2 <= activeMembers {
		return rsp, nil
	}

	successor, err := g.pickSuccessor(cabal)
	if err != nil {
		return nil, err
	}
	if successor == nil {
		// 没有可提拔的继任者，票保留等待新成员
		return rsp, nil
	}

	oldLeader, err := g.repos.Member.FindActiveByCabalAndChad(cabal.Uuid, cabal.LeaderId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 换届事务内清空全部票，保证本任期只触发一次
	if err := membership.PromoteLeader(g.repos, oldLeader, successor); err != nil {
		return nil, err
	}

	rsp.LeaderChanged = true
	rsp.NewLeaderUuid = successor.ChadUuid

	g.publisher.Publish(context.Background(), mq.NewEvent(mq.EventLeaderChanged, cabal.Uuid,
		map[string]interface{}{"old_leader": oldLeader.ChadUuid, "new_leader": successor.ChadUuid, "by_vote": true}))
	return rsp, nil
}

// pickSuccessor 选出罢免后的继任会长
// 优先最早任命的现任官员；无官员时取入会最早的在籍成员（贡献分高者优先），
// 会长本人除外；返回 nil 表示没有可提拔的人选
func (g *governanceService) pickSuccessor(cabal *model.Cabal) (*model.CabalMember, error) {
	officers, err := g.repos.Officer.FindByCabal(cabal.Uuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	for _, officer := range officers {
		member, err := g.repos.Member.FindActiveByCabalAndChad(cabal.Uuid, officer.ChadUuid)
		if err == nil {
			return member, nil
		}
		if !errorx.IsNotFound(err) {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
	}

	members, err := g.repos.Member.FindActiveByCabal(cabal.Uuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	var best *model.CabalMember
	for i := range members {
		candidate := &members[i]
		if candidate.ChadUuid == cabal.LeaderId {
			continue
		}
		if best == nil {
			best = candidate
			continue
		}
		// FindActiveByCabal 已按入会时间升序，仅在同刻入会时比较贡献分
		if candidate.JoinedAt.Equal(best.JoinedAt) && candidate.Contribution > best.Contribution {
			best = candidate
		}
	}
	return best, nil
}

// requireLeader 校验调用者是某公会的现任会长
func (g *governanceService) requireLeader(chadUuid string) (*model.CabalMember, error) {
	member, err := g.repos.Member.FindActiveByChad(chadUuid)
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

// PruneExpiredVotes 清除全部公会的过期罢免票，由后台清理任务调用
func (g *governanceService) PruneExpiredVotes() error {
	cutoff := time.Now().Add(-g.voteTTL)
	if err := g.repos.Vote.DeleteOlderThan(cutoff); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// StartVoteJanitor 启动过期罢免票清理后台任务
func (g *governanceService) StartVoteJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(votePruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := g.PruneExpiredVotes(); err != nil {
					zap.L().Error("vote prune sweep failed", zap.Error(err))
				}
			}
		}
	}()
}
