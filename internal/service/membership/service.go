// Package membership 实现公会会籍的核心业务逻辑
// 覆盖公会创建、邀请码加入（含推荐奖励）、退出、移除、换届、解散、
// 金库与经验曲线，以及聚合战力重算
package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"cabal_battles_server/internal/dao/mysql/repository"
	myredis "cabal_battles_server/internal/dao/redis"
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
	"cabal_battles_server/pkg/util/snowflake"
)

// inviteCodePattern 邀请码格式：6 位大写字母或数字
var inviteCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// cabalInfoCacheKey 公会详情缓存键前缀
const cabalInfoCacheKey = "cabal_info_"

// cabalInfoCacheTTL 公会详情缓存有效期
const cabalInfoCacheTTL = 10 * time.Minute

// membershipService 会籍业务逻辑实现
// 通过构造函数注入 Repository、Cache、记账、属性与事件依赖
type membershipService struct {
	repos     *repository.Repositories
	cache     myredis.AsyncCacheService
	ledgerSvc ledger.Service
	statsSvc  stats.Provider
	publisher mq.Publisher
	locks     *keylock.KeyLock
}

// NewMembershipService 构造函数，注入所有依赖
func NewMembershipService(repos *repository.Repositories, cache myredis.AsyncCacheService,
	ledgerSvc ledger.Service, statsSvc stats.Provider, publisher mq.Publisher,
	locks *keylock.KeyLock) *membershipService {
	return &membershipService{
		repos:     repos,
		cache:     cache,
		ledgerSvc: ledgerSvc,
		statsSvc:  statsSvc,
		publisher: publisher,
		locks:     locks,
	}
}

// CreateCabal 创建公会
// 名称全局唯一（区分大小写），创建者自动成为会长且不得有其他在籍公会
func (m *membershipService) CreateCabal(req request.CreateCabalRequest) (*respond.CreateCabalRespond, error) {
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 1 || n > constants.CABAL_NAME_MAX_LEN {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "公会名称长度必须在 1-%d 之间", constants.CABAL_NAME_MAX_LEN)
	}
	if utf8.RuneCountInString(req.Description) > constants.CABAL_DESC_MAX_LEN {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "公会简介不能超过 %d 字符", constants.CABAL_DESC_MAX_LEN)
	}

	// 单一在籍约束是跨公会的，按角色加锁防止并发创建与加入
	m.locks.Lock(req.LeaderUuid)
	defer m.locks.Unlock(req.LeaderUuid)

	// 创建者不得有在籍公会
	if _, err := m.repos.Member.FindActiveByChad(req.LeaderUuid); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "已加入其他公会，不能重复创建")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 名称占用检查
	if _, err := m.repos.Cabal.FindByName(name); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "公会名称已被占用")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	inviteCode, err := m.generateInviteCode()
	if err != nil {
		return nil, err
	}

	cabal := model.Cabal{
		Uuid:        fmt.Sprintf("C%s", random.GetNowAndLenRandomString(11)),
		Name:        name,
		Description: req.Description,
		LeaderId:    req.LeaderUuid,
		InviteCode:  inviteCode,
		Level:       1,
		MemberCnt:   1,
		Status:      model.CabalStatusNormal,
	}

	err = m.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Cabal.Create(&cabal); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		member := model.CabalMember{
			CabalUuid: cabal.Uuid,
			ChadUuid:  req.LeaderUuid,
			Role:      model.MemberRoleLeader,
			IsActive:  true,
			JoinedAt:  time.Now(),
		}
		if err := txRepos.Member.Create(&member); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.publisher.Publish(context.Background(), mq.NewEvent(mq.EventCabalCreated, cabal.Uuid,
		map[string]interface{}{"name": cabal.Name, "leader": cabal.LeaderId}))

	return &respond.CreateCabalRespond{
		CabalUuid:  cabal.Uuid,
		Name:       cabal.Name,
		InviteCode: cabal.InviteCode,
	}, nil
}

// generateInviteCode 生成未被占用的邀请码，重试数次仍冲突则报服务繁忙
func (m *membershipService) generateInviteCode() (string, error) {
	for i := 0; i < 5; i++ {
		code := random.GetInviteCode(constants.INVITE_CODE_LENGTH)
		if _, err := m.repos.Cabal.FindByInviteCode(code); err != nil {
			if errorx.IsNotFound(err) {
				return code, nil
			}
			zap.L().Error(err.Error())
			return "", errorx.ErrServerBusy
		}
	}
	zap.L().Error("invite code generation exhausted retries")
	return "", errorx.ErrServerBusy
}

// JoinByInviteCode 凭邀请码加入公会
// 邀请码统一转大写后校验；推荐奖励对 (推荐人, 被推荐人) 幂等
func (m *membershipService) JoinByInviteCode(req request.JoinCabalRequest) (*respond.CabalInfoRespond, error) {
	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))
	if !inviteCodePattern.MatchString(code) {
		return nil, errorx.New(errorx.CodeInvalidParam, "邀请码格式错误")
	}

	// 单一在籍约束是跨公会的，先按角色加锁再按公会加锁，次序固定避免死锁
	m.locks.Lock(req.ChadUuid)
	defer m.locks.Unlock(req.ChadUuid)

	cabal, err := m.repos.Cabal.FindByInviteCode(code)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "邀请码无效")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if cabal.Status != model.CabalStatusNormal {
		return nil, errorx.New(errorx.CodeInvalidState, "该公会已解散")
	}

	m.locks.Lock(cabal.Uuid)
	defer m.locks.Unlock(cabal.Uuid)

	// 单一在籍约束
	if _, err := m.repos.Member.FindActiveByChad(req.ChadUuid); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "已加入其他公会")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	referralApplied := false
	var referrer *model.CabalMember
	err = m.repos.Transaction(func(txRepos *repository.Repositories) error {
		member := model.CabalMember{
			CabalUuid: cabal.Uuid,
			ChadUuid:  req.ChadUuid,
			Role:      model.MemberRoleMember,
			IsActive:  true,
			JoinedAt:  time.Now(),
		}
		if err := txRepos.Member.Create(&member); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.Cabal.IncrementMemberCount(cabal.Uuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}

		// 推荐奖励：推荐人必须是本公会在籍成员，且每对只发一次
		if req.ReferrerUuid != "" && req.ReferrerUuid != req.ChadUuid {
			var rerr error
			referralApplied, referrer, rerr = m.applyReferral(txRepos, cabal, req.ReferrerUuid, req.ChadUuid)
			if rerr != nil {
				return rerr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 推荐金币走记账服务，失败仅记日志（推荐记录已保证不会重复发放）
	if referralApplied && referrer != nil {
		if err := m.ledgerSvc.Credit(referrer.ChadUuid, constants.REFERRAL_COIN_REWARD,
			model.TxReferralBonus, "推荐新成员加入公会"); err != nil {
			zap.L().Error("referral coin credit failed",
				zap.String("referrer", referrer.ChadUuid), zap.Error(err))
		}
	}

	m.invalidateCabalCache(cabal.Uuid)
	m.publisher.Publish(context.Background(), mq.NewEvent(mq.EventMemberJoined, cabal.Uuid,
		map[string]interface{}{"chad": req.ChadUuid, "referrer": req.ReferrerUuid}))

	return m.GetCabalInfo(cabal.Uuid)
}

// applyReferral 在事务内落推荐奖励
// 返回值: (是否发放, 推荐人成员记录, 错误)
func (m *membershipService) applyReferral(txRepos *repository.Repositories, cabal *model.Cabal,
	referrerUuid, referredUuid string) (bool, *model.CabalMember, error) {
	referrer, err := txRepos.Member.FindActiveByCabalAndChad(cabal.Uuid, referrerUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			// 推荐人不在本公会：忽略推荐，不阻断加入
			return false, nil, nil
		}
		zap.L().Error(err.Error())
		return false, nil, errorx.ErrServerBusy
	}

	// 幂等检查
	if _, err := txRepos.Referral.FindByPair(referrerUuid, referredUuid); err == nil {
		return false, nil, nil
	} else if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return false, nil, errorx.ErrServerBusy
	}

	referral := model.Referral{
		CabalUuid:    cabal.Uuid,
		ReferrerUuid: referrerUuid,
		ReferredUuid: referredUuid,
	}
	if err := txRepos.Referral.Create(&referral); err != nil {
		zap.L().Error(err.Error())
		return false, nil, errorx.ErrServerBusy
	}

	referrer.Contribution += constants.REFERRAL_CONTRIBUTION
	if err := txRepos.Member.Update(referrer); err != nil {
		zap.L().Error(err.Error())
		return false, nil, errorx.ErrServerBusy
	}

	if err := m.applyXp(txRepos, cabal.Uuid, constants.REFERRAL_CABAL_XP); err != nil {
		return false, nil, err
	}
	return true, referrer, nil
}

// Leave 退出公会
// 会长不可退出（需先移交或解散），成员记录保留并标记离会时间
func (m *membershipService) Leave(chadUuid string) error {
	member, err := m.repos.Member.FindActiveByChad(chadUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "未加入任何公会")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if member.Role == model.MemberRoleLeader {
		return errorx.New(errorx.CodeUnauthorized, "会长不能退出公会，请先移交会长或解散公会")
	}

	m.locks.Lock(member.CabalUuid)
	defer m.locks.Unlock(member.CabalUuid)

	if err := m.deactivateMember(member); err != nil {
		return err
	}

	m.invalidateCabalCache(member.CabalUuid)
	m.publisher.Publish(context.Background(), mq.NewEvent(mq.EventMemberLeft, member.CabalUuid,
		map[string]interface{}{"chad": chadUuid, "kicked": false}))
	return nil
}

// RemoveMember 会长移除成员
func (m *membershipService) RemoveMember(leaderUuid, targetUuid string) error {
	leader, err := m.requireLeader(leaderUuid)
	if err != nil {
		return err
	}
	if targetUuid == leaderUuid {
		return errorx.New(errorx.CodeInvalidParam, "不能移除自己")
	}

	m.locks.Lock(leader.CabalUuid)
	defer m.locks.Unlock(leader.CabalUuid)

	target, err := m.repos.Member.FindActiveByCabalAndChad(leader.CabalUuid, targetUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "该角色不是本公会成员")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if err := m.deactivateMember(target); err != nil {
		return err
	}

	m.invalidateCabalCache(leader.CabalUuid)
	m.publisher.Publish(context.Background(), mq.NewEvent(mq.EventMemberLeft, leader.CabalUuid,
		map[string]interface{}{"chad": targetUuid, "kicked": true}))
	return nil
}

// deactivateMember 在事务内将成员置为离会并清理其官员席位
func (m *membershipService) deactivateMember(member *model.CabalMember) error {
	return m.repos.Transaction(func(txRepos *repository.Repositories) error {
		now := time.Now()
		member.IsActive = false
		member.LeftAt = &now
		if err := txRepos.Member.Update(member); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.Officer.DeleteByCabalAndChad(member.CabalUuid, member.ChadUuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.Cabal.DecrementMemberCountBy(member.CabalUuid, 1); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
}

// ChangeLeader 会长主动移交
// 新会长必须是在籍成员；其官员席位被清空（会长不得兼任官员）；
// 旧会长降为普通成员；会长更替后清空罢免票
func (m *membershipService) ChangeLeader(leaderUuid, newLeaderUuid string) error {
	leader, err := m.requireLeader(leaderUuid)
	if err != nil {
		return err
	}
	if newLeaderUuid == leaderUuid {
		return errorx.New(errorx.CodeInvalidParam, "新会长不能是自己")
	}

	m.locks.Lock(leader.CabalUuid)
	defer m.locks.Unlock(leader.CabalUuid)

	successor, err := m.repos.Member.FindActiveByCabalAndChad(leader.CabalUuid, newLeaderUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "新会长必须是本公会在籍成员")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if err := PromoteLeader(m.repos, leader, successor); err != nil {
		return err
	}

	m.invalidateCabalCache(leader.CabalUuid)
	m.publisher.Publish(context.Background(), mq.NewEvent(mq.EventLeaderChanged, leader.CabalUuid,
		map[string]interface{}{"old_leader": leaderUuid, "new_leader": newLeaderUuid, "by_vote": false}))
	return nil
}

// PromoteLeader 在一个事务内完成会长更替
// 主动移交与罢免投票换届共用此流程
func PromoteLeader(repos *repository.Repositories, oldLeader, newLeader *model.CabalMember) error {
	return repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Cabal.UpdateLeader(oldLeader.CabalUuid, newLeader.ChadUuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		oldLeader.Role = model.MemberRoleMember
		if err := txRepos.Member.Update(oldLeader); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		newLeader.Role = model.MemberRoleLeader
		if err := txRepos.Member.Update(newLeader); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		// 会长不得兼任官员
		if err := txRepos.Officer.DeleteByCabalAndChad(newLeader.CabalUuid, newLeader.ChadUuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		// 新任期重新计票
		if err := txRepos.Vote.DeleteByCabal(oldLeader.CabalUuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
}

// Disband 解散公会（终态）
// 全部成员离会，官员席位与罢免票清空，公会标记为已解散
func (m *membershipService) Disband(leaderUuid string) error {
	leader, err := m.requireLeader(leaderUuid)
	if err != nil {
		return err
	}

	m.locks.Lock(leader.CabalUuid)
	defer m.locks.Unlock(leader.CabalUuid)

	cabal, err := m.repos.Cabal.FindByUuid(leader.CabalUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if cabal.Status == model.CabalStatusDisbanded {
		return errorx.New(errorx.CodeInvalidState, "公会已解散")
	}

	err = m.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Member.DeactivateByCabal(cabal.Uuid, time.Now()); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.Officer.DeleteByCabal(cabal.Uuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.Vote.DeleteByCabal(cabal.Uuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		cabal.Status = model.CabalStatusDisbanded
		cabal.MemberCnt = 0
		if err := txRepos.Cabal.Update(cabal); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.invalidateCabalCache(cabal.Uuid)
	m.publisher.Publish(context.Background(), mq.NewEvent(mq.EventCabalDisbanded, cabal.Uuid,
		map[string]interface{}{"leader": leaderUuid}))
	return nil
}

// GetCabalInfo 获取公会详情（缓存旁路）
func (m *membershipService) GetCabalInfo(cabalUuid string) (*respond.CabalInfoRespond, error) {
	cacheKey := cabalInfoCacheKey + cabalUuid

	// 1. 尝试从缓存获取
	rspString, err := m.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp respond.CabalInfoRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			return &rsp, nil
		}
		zap.L().Error("unmarshal cabal info cache error", zap.Error(err))
	} else if err != nil {
		zap.L().Error("redis get error", zap.Error(err))
	}

	// 2. 缓存未命中，查询数据库
	cabal, err := m.repos.Cabal.FindByUuid(cabalUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "公会不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.CabalInfoRespond{
		Uuid:        cabal.Uuid,
		Name:        cabal.Name,
		Description: cabal.Description,
		LeaderId:    cabal.LeaderId,
		InviteCode:  cabal.InviteCode,
		Level:       cabal.Level,
		Xp:          cabal.Xp,
		NextLevelXp: cabal.XpForNextLevel(),
		CoinBalance: cabal.CoinBalance,
		BattlesWon:  cabal.BattlesWon,
		BattlesLost: cabal.BattlesLost,
		MemberCnt:   cabal.MemberCnt,
		TotalPower:  cabal.TotalPower,
		Status:      cabal.Status,
	}

	// 3. 异步回写缓存
	m.cache.SubmitTask(func() {
		data, err := json.Marshal(rsp)
		if err != nil {
			return
		}
		if err := m.cache.Set(context.Background(), cacheKey, string(data), cabalInfoCacheTTL); err != nil {
			zap.L().Error(err.Error())
		}
	})

	return rsp, nil
}

// GetMemberList 获取在籍成员列表，按入会时间升序
func (m *membershipService) GetMemberList(cabalUuid string) ([]respond.MemberListRespond, error) {
	members, err := m.repos.Member.FindActiveByCabal(cabalUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 初始化 len=0，确保序列化后是 [] 而不是 null
	rsp := make([]respond.MemberListRespond, 0, len(members))
	for _, member := range members {
		rsp = append(rsp, respond.MemberListRespond{
			ChadUuid:            member.ChadUuid,
			Role:                member.Role,
			Contribution:        member.Contribution,
			BattlesParticipated: member.BattlesParticipated,
			JoinedAt:            member.JoinedAt.Format(time.RFC3339),
		})
	}
	return rsp, nil
}

// AddXp 增加公会经验并处理升级
func (m *membershipService) AddXp(cabalUuid string, xp int) error {
	if xp <= 0 {
		return errorx.New(errorx.CodeInvalidParam, "经验值必须为正数")
	}

	m.locks.Lock(cabalUuid)
	defer m.locks.Unlock(cabalUuid)

	err := m.repos.Transaction(func(txRepos *repository.Repositories) error {
		return m.applyXp(txRepos, cabalUuid, xp)
	})
	if err != nil {
		return err
	}

	m.invalidateCabalCache(cabalUuid)
	return nil
}

// applyXp 在事务内累加经验，达到升级曲线阈值时逐级升级
// 升级曲线: 下一级所需累计经验 = 1000*level + 500*(level-1)^2
// 每升一级向金库发放 新等级*100 金币
func (m *membershipService) applyXp(txRepos *repository.Repositories, cabalUuid string, xp int) error {
	cabal, err := txRepos.Cabal.FindByUuid(cabalUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if cabal.Status != model.CabalStatusNormal {
		return errorx.New(errorx.CodeInvalidState, "公会已解散")
	}

	cabal.Xp += xp
	levelsGained := 0
	for cabal.Xp >= cabal.XpForNextLevel() {
		cabal.Level++
		levelsGained++
		bonus := cabal.Level * 100
		cabal.CoinBalance += bonus
		if err := txRepos.Ledger.Create(&model.Transaction{
			FlowId:      snowflake.GenerateID(),
			AccountUuid: cabal.Uuid,
			Amount:      bonus,
			Type:        model.TxLevelUpBonus,
			Reason:      fmt.Sprintf("公会升至 %d 级", cabal.Level),
		}); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
	}
	if err := txRepos.Cabal.Update(cabal); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if levelsGained > 0 {
		m.publisher.Publish(context.Background(), mq.NewEvent(mq.EventCabalLevelUp, cabal.Uuid,
			map[string]interface{}{"level": cabal.Level}))
	}
	return nil
}

// SpendCoin 公会金库消费（会长专属）
func (m *membershipService) SpendCoin(req request.SpendCoinRequest) error {
	leader, err := m.requireLeader(req.LeaderUuid)
	if err != nil {
		return err
	}

	m.locks.Lock(leader.CabalUuid)
	defer m.locks.Unlock(leader.CabalUuid)

	err = m.repos.Transaction(func(txRepos *repository.Repositories) error {
		cabal, err := txRepos.Cabal.FindByUuid(leader.CabalUuid)
		if err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if cabal.CoinBalance < req.Amount {
			return errorx.New(errorx.CodeInvalidState, "公会金库余额不足")
		}
		cabal.CoinBalance -= req.Amount
		if err := txRepos.Cabal.Update(cabal); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := m.ledgerSvc.Debit(leader.CabalUuid, req.Amount, model.TxTreasurySpend, req.Reason); err != nil {
		zap.L().Error("treasury spend ledger record failed", zap.Error(err))
	}

	m.invalidateCabalCache(leader.CabalUuid)
	return nil
}

// RecomputeTotalPower 重算公会聚合战力（在籍成员四维属性总和）并回写
func (m *membershipService) RecomputeTotalPower(cabalUuid string) (int, error) {
	members, err := m.repos.Member.FindActiveByCabal(cabalUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return 0, errorx.ErrServerBusy
	}

	total := 0
	for _, member := range members {
		sheet, err := m.statsSvc.GetStats(member.ChadUuid)
		if err != nil {
			if errorx.IsNotFound(err) {
				continue // 无属性记录的成员不计入
			}
			return 0, errorx.Wrap(err, errorx.CodeDependency, "属性服务不可用")
		}
		total += sheet.Total()
	}

	if err := m.repos.Cabal.UpdateTotalPower(cabalUuid, total); err != nil {
		zap.L().Error(err.Error())
		return 0, errorx.ErrServerBusy
	}

	m.invalidateCabalCache(cabalUuid)
	return total, nil
}

// requireLeader 校验调用者是某公会的现任会长，返回其成员记录
func (m *membershipService) requireLeader(chadUuid string) (*model.CabalMember, error) {
	member, err := m.repos.Member.FindActiveByChad(chadUuid)
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

// invalidateCabalCache 异步失效公会详情缓存
func (m *membershipService) invalidateCabalCache(cabalUuid string) {
	m.cache.SubmitTask(func() {
		if err := m.cache.Delete(context.Background(), cabalInfoCacheKey+cabalUuid); err != nil {
			zap.L().Error(err.Error())
		}
	})
}
