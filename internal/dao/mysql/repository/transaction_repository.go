package repository

import (
	"cabal_battles_server/internal/model"

	"gorm.io/gorm"
)

// transactionRepository 账本流水数据访问实现
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建账本流水 Repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *model.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return wrapDBErrorf(err, "写入流水失败, account_uuid: %s", tx.AccountUuid)
	}
	return nil
}

func (r *transactionRepository) FindByAccount(accountUuid string) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.Where("account_uuid = ?", accountUuid).
		Order("flow_id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查找流水失败, account_uuid: %s", accountUuid)
	}
	return txs, nil
}
