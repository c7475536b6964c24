// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"cabal_battles_server/internal/handler"
	"cabal_battles_server/internal/infrastructure/middleware"
)

// Router 路由管理器，持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 业务接口统一挂 JWT 认证，排行榜和观战入口公开
func (rt *Router) RegisterRoutes(engine *gin.Engine) {
	authed := engine.Group("", middleware.JWTAuth())
	rt.RegisterCabalRoutes(authed)       // 公会路由
	rt.RegisterGovernanceRoutes(authed)  // 治理路由
	rt.RegisterScheduleRoutes(authed)    // 战争排期路由
	rt.RegisterBattleRoutes(authed)      // 对战路由
	rt.RegisterLeaderboardRoutes(engine) // 排行榜路由
	rt.RegisterWebSocketRoutes(engine)   // 观战 WebSocket 路由
}
