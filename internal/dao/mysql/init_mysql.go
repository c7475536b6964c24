// Package mysql 负责数据库初始化和表结构迁移
package mysql

import (
	"fmt"

	"cabal_battles_server/internal/config"
	"cabal_battles_server/internal/dao/mysql/repository"
	"cabal_battles_server/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Init 初始化 MySQL 连接并完成表结构迁移
// 返回 Repository 聚合供 Service 层使用
func Init(cfg *config.MysqlConfig) (*repository.Repositories, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DatabaseName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		zap.L().Error("connect to mysql failed", zap.Error(err))
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		zap.L().Error("auto migrate failed", zap.Error(err))
		return nil, err
	}

	zap.L().Info("mysql initialized", zap.String("host", cfg.Host), zap.String("database", cfg.DatabaseName))
	return repository.NewRepositories(db), nil
}

// AutoMigrate 迁移全部表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Cabal{},
		&model.CabalMember{},
		&model.OfficerRole{},
		&model.LeaderVote{},
		&model.Referral{},
		&model.CabalBattle{},
		&model.BattleParticipant{},
		&model.Battle{},
		&model.Transaction{},
		&model.CharacterStats{},
		&model.RewardPayout{},
	)
}
