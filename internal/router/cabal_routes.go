// Package router 提供 HTTP 路由注册
// 本文件定义公会相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterCabalRoutes 注册公会相关路由（需要认证）
// 包括公会创建、成员管理、金库等功能
func (rt *Router) RegisterCabalRoutes(rg *gin.RouterGroup) {
	cabalGroup := rg.Group("/cabal")
	{
		// ===== 公会基本操作 =====
		cabalGroup.POST("/createCabal", rt.handlers.Cabal.CreateCabal)    // 创建公会
		cabalGroup.GET("/getCabalInfo", rt.handlers.Cabal.GetCabalInfo)   // 获取公会详情
		cabalGroup.POST("/disbandCabal", rt.handlers.Cabal.DisbandCabal)  // 解散公会（会长）
		cabalGroup.POST("/changeLeader", rt.handlers.Cabal.ChangeLeader)  // 转让会长
		cabalGroup.POST("/recomputePower", rt.handlers.Cabal.RecomputePower) // 重算公会战力

		// ===== 成员管理 =====
		cabalGroup.POST("/joinCabal", rt.handlers.Cabal.JoinCabal)         // 凭邀请码入会
		cabalGroup.POST("/leaveCabal", rt.handlers.Cabal.LeaveCabal)       // 退出公会
		cabalGroup.POST("/removeMember", rt.handlers.Cabal.RemoveMember)   // 踢出成员（会长）
		cabalGroup.GET("/getMemberList", rt.handlers.Cabal.GetMemberList)  // 获取成员列表

		// ===== 金库 =====
		cabalGroup.POST("/spendCoin", rt.handlers.Cabal.SpendCoin) // 金库消费（会长）
	}
}
