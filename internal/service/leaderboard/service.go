// Package leaderboard 实现公会排行榜查询
// 读多写少，采用缓存旁路 + 异步回写
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cabal_battles_server/internal/dao/mysql/repository"
	myredis "cabal_battles_server/internal/dao/redis"
	"cabal_battles_server/internal/dto/respond"
	"cabal_battles_server/pkg/errorx"
)

// leaderboardCacheKey 排行榜缓存键前缀（带条数后缀）
const leaderboardCacheKey = "cabal_leaderboard_"

// leaderboardCacheTTL 排行榜缓存有效期
const leaderboardCacheTTL = 5 * time.Minute

// defaultLimit 默认返回条数
const defaultLimit = 20

// maxLimit 最大返回条数
const maxLimit = 100

// leaderboardService 排行榜业务逻辑实现
type leaderboardService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewLeaderboardService 构造函数，注入所有依赖
func NewLeaderboardService(repos *repository.Repositories, cache myredis.AsyncCacheService) *leaderboardService {
	return &leaderboardService{repos: repos, cache: cache}
}

// GetLeaderboard 获取公会排行榜
// 按等级、经验、战绩降序排名
func (l *leaderboardService) GetLeaderboard(limit int) ([]respond.LeaderboardRespond, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	cacheKey := fmt.Sprintf("%s%d", leaderboardCacheKey, limit)

	// 1. 尝试从缓存获取
	rspString, err := l.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var cached []respond.LeaderboardRespond
		if err := json.Unmarshal([]byte(rspString), &cached); err == nil {
			return cached, nil
		}
		zap.L().Error("unmarshal leaderboard cache error", zap.Error(err))
	} else if err != nil {
		zap.L().Error("redis get error", zap.Error(err))
	}

	// 2. 缓存未命中，查询数据库
	cabals, err := l.repos.Cabal.GetLeaderboard(limit)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.LeaderboardRespond, 0, len(cabals))
	for i, cabal := range cabals {
		rsp = append(rsp, respond.LeaderboardRespond{
			Rank:        i + 1,
			CabalUuid:   cabal.Uuid,
			Name:        cabal.Name,
			Level:       cabal.Level,
			Xp:          cabal.Xp,
			TotalPower:  cabal.TotalPower,
			BattlesWon:  cabal.BattlesWon,
			BattlesLost: cabal.BattlesLost,
		})
	}

	// 3. 异步回写缓存
	l.cache.SubmitTask(func() {
		data, err := json.Marshal(rsp)
		if err != nil {
			return
		}
		if err := l.cache.Set(context.Background(), cacheKey, string(data), leaderboardCacheTTL); err != nil {
			zap.L().Error(err.Error())
		}
	})

	return rsp, nil
}
