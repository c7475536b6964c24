// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 通过构造函数注入 Service 依赖
package handler

import (
	"cabal_battles_server/internal/gateway/websocket"
	"cabal_battles_server/internal/service"
)

// Handlers 聚合所有 Handler 实例
// Router 层通过此结构访问各个 Handler
type Handlers struct {
	Cabal       *CabalHandler
	Governance  *GovernanceHandler
	Scheduler   *SchedulerHandler
	Battle      *BattleHandler
	Leaderboard *LeaderboardHandler
	Ws          *WsHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// svc: Service 层聚合实例
// gateway: 观战网关实例
func NewHandlers(svc *service.Services, gateway *websocket.Gateway) *Handlers {
	return &Handlers{
		Cabal:       NewCabalHandler(svc.Membership),
		Governance:  NewGovernanceHandler(svc.Governance),
		Scheduler:   NewSchedulerHandler(svc.Scheduler),
		Battle:      NewBattleHandler(svc.Battle),
		Leaderboard: NewLeaderboardHandler(svc.Leaderboard),
		Ws:          NewWsHandler(gateway),
	}
}
