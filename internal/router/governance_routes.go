// Package router 提供 HTTP 路由注册
// 本文件定义公会治理相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterGovernanceRoutes 注册治理相关路由（需要认证）
// 包括军官任免和会长罢免投票
func (rt *Router) RegisterGovernanceRoutes(rg *gin.RouterGroup) {
	governanceGroup := rg.Group("/governance")
	{
		// ===== 军官席位 =====
		governanceGroup.POST("/appointOfficer", rt.handlers.Governance.AppointOfficer) // 任命军官（会长）
		governanceGroup.POST("/removeOfficer", rt.handlers.Governance.RemoveOfficer)   // 罢免军官（会长）
		governanceGroup.GET("/getOfficerList", rt.handlers.Governance.GetOfficerList)  // 获取军官列表

		// ===== 会长罢免 =====
		governanceGroup.POST("/voteRemoveLeader", rt.handlers.Governance.VoteRemoveLeader) // 投票罢免会长
	}
}
