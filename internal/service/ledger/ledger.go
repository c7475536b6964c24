// Package ledger 提供账户的记账服务
// 金币与经验的发放统一走流水账，每笔带雪花流水号，供对账与幂等检查
package ledger

import (
	"cabal_battles_server/internal/dao/mysql/repository"
	"cabal_battles_server/internal/model"
	"cabal_battles_server/pkg/errorx"
	"cabal_battles_server/pkg/util/snowflake"
)

// Service 记账服务接口
// 对战结算与推荐奖励通过此接口发放奖励，测试时可注入计数实现
type Service interface {
	// Credit 入账（amount 必须为正）
	Credit(accountUuid string, amount int, txType, reason string) error
	// Debit 出账（amount 必须为正，流水记为负数）
	Debit(accountUuid string, amount int, txType, reason string) error
	// AwardExperience 发放角色经验
	AwardExperience(accountUuid string, xp int, reason string) error
}

// repoLedger 基于流水表的记账实现
type repoLedger struct {
	txRepo repository.TransactionRepository
}

// NewService 创建记账服务
func NewService(txRepo repository.TransactionRepository) Service {
	return &repoLedger{txRepo: txRepo}
}

func (l *repoLedger) Credit(accountUuid string, amount int, txType, reason string) error {
	if amount <= 0 {
		return errorx.Newf(errorx.CodeInvalidParam, "入账金额必须为正数: %d", amount)
	}
	return l.record(accountUuid, amount, txType, reason)
}

func (l *repoLedger) Debit(accountUuid string, amount int, txType, reason string) error {
	if amount <= 0 {
		return errorx.Newf(errorx.CodeInvalidParam, "出账金额必须为正数: %d", amount)
	}
	return l.record(accountUuid, -amount, txType, reason)
}

func (l *repoLedger) AwardExperience(accountUuid string, xp int, reason string) error {
	if xp <= 0 {
		return errorx.Newf(errorx.CodeInvalidParam, "经验值必须为正数: %d", xp)
	}
	return l.record(accountUuid, xp, model.TxExperience, reason)
}

func (l *repoLedger) record(accountUuid string, amount int, txType, reason string) error {
	return l.txRepo.Create(&model.Transaction{
		FlowId:      snowflake.GenerateID(),
		AccountUuid: accountUuid,
		Amount:      amount,
		Type:        txType,
		Reason:      reason,
	})
}
