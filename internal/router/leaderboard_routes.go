// Package router 提供 HTTP 路由注册
// 本文件定义排行榜相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterLeaderboardRoutes 注册排行榜路由（公开接口，无需认证）
func (rt *Router) RegisterLeaderboardRoutes(r *gin.Engine) {
	leaderboardGroup := r.Group("/leaderboard")
	{
		// GET /leaderboard/getLeaderboard?limit=20 - 公会排行榜
		leaderboardGroup.GET("/getLeaderboard", rt.handlers.Leaderboard.GetLeaderboard)
	}
}
