// Package handler 提供 HTTP 请求处理器
// 本文件处理公会对战排期相关的 API 请求
package handler

import (
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/service"

	"github.com/gin-gonic/gin"
)

// SchedulerHandler 对战排期请求处理器
type SchedulerHandler struct {
	schedulerSvc service.SchedulerService
}

// NewSchedulerHandler 创建排期处理器实例
func NewSchedulerHandler(schedulerSvc service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{schedulerSvc: schedulerSvc}
}

// ScheduleBattle 排期公会对战
// POST /schedule/create
// 请求体: request.ScheduleBattleRequest
// 响应: respond.ScheduleRespond
func (h *SchedulerHandler) ScheduleBattle(c *gin.Context) {
	var req request.ScheduleBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.schedulerSvc.ScheduleBattle(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CancelSchedule 取消排期
// POST /schedule/cancel
// 请求体: request.CancelScheduleRequest
// 响应: nil
func (h *SchedulerHandler) CancelSchedule(c *gin.Context) {
	var req request.CancelScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.schedulerSvc.CancelSchedule(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// OptIn 报名参战
// POST /schedule/optIn
// 请求体: request.OptInRequest
// 响应: nil
func (h *SchedulerHandler) OptIn(c *gin.Context) {
	var req request.OptInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.schedulerSvc.OptIn(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetUpcoming 获取公会未完成的排期列表
// GET /schedule/upcoming?cabalUuid=xxx
// 响应: []respond.ScheduleRespond
func (h *SchedulerHandler) GetUpcoming(c *gin.Context) {
	cabalUuid := c.Query("cabalUuid")
	if cabalUuid == "" {
		HandleParamError(c, errMissingQuery("cabalUuid"))
		return
	}
	data, err := h.schedulerSvc.GetUpcoming(cabalUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
