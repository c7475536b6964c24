// Package router 提供 HTTP 路由注册
// 本文件定义对战相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterBattleRoutes 注册对战相关路由（需要认证）
// 包括单挑对战和公会战结算
func (rt *Router) RegisterBattleRoutes(rg *gin.RouterGroup) {
	battleGroup := rg.Group("/battle")
	{
		// ===== 单挑对战 =====
		battleGroup.POST("/createChallenge", rt.handlers.Battle.CreateChallenge) // 发起挑战
		battleGroup.POST("/startBattle", rt.handlers.Battle.StartBattle)         // 应战开打
		battleGroup.POST("/performAction", rt.handlers.Battle.PerformAction)     // 执行回合行动
		battleGroup.POST("/cancelBattle", rt.handlers.Battle.CancelBattle)       // 取消未开打的挑战
		battleGroup.GET("/getBattle", rt.handlers.Battle.GetBattle)              // 获取对战详情

		// ===== 公会战 =====
		battleGroup.POST("/resolveCabalWar", rt.handlers.Battle.ResolveCabalWar) // 结算公会战
	}
}
