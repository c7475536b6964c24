// Package router 提供 HTTP 路由注册
// 本文件定义公会战排期相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes 注册公会战排期路由（需要认证）
func (rt *Router) RegisterScheduleRoutes(rg *gin.RouterGroup) {
	scheduleGroup := rg.Group("/schedule")
	{
		scheduleGroup.POST("/scheduleBattle", rt.handlers.Scheduler.ScheduleBattle) // 发起公会战排期（会长）
		scheduleGroup.POST("/cancelSchedule", rt.handlers.Scheduler.CancelSchedule) // 取消排期（会长）
		scheduleGroup.POST("/optIn", rt.handlers.Scheduler.OptIn)                   // 成员报名参战
		scheduleGroup.GET("/getUpcoming", rt.handlers.Scheduler.GetUpcoming)        // 获取未开打的排期
	}
}
