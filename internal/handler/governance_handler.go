// Package handler 提供 HTTP 请求处理器
// 本文件处理公会治理相关的 API 请求
package handler

import (
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/service"

	"github.com/gin-gonic/gin"
)

// GovernanceHandler 公会治理请求处理器
type GovernanceHandler struct {
	governanceSvc service.GovernanceService
}

// NewGovernanceHandler 创建治理处理器实例
func NewGovernanceHandler(governanceSvc service.GovernanceService) *GovernanceHandler {
	return &GovernanceHandler{governanceSvc: governanceSvc}
}

// AppointOfficer 任命官员
// POST /governance/appointOfficer
// 请求体: request.AppointOfficerRequest
// 响应: nil
func (h *GovernanceHandler) AppointOfficer(c *gin.Context) {
	var req request.AppointOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.governanceSvc.AppointOfficer(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveOfficer 撤销官员席位
// POST /governance/removeOfficer
// 请求体: request.RemoveOfficerRequest
// 响应: nil
func (h *GovernanceHandler) RemoveOfficer(c *gin.Context) {
	var req request.RemoveOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.governanceSvc.RemoveOfficer(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetOfficerList 获取现任官员列表
// GET /governance/officerList?cabalUuid=xxx
// 响应: []respond.OfficerListRespond
func (h *GovernanceHandler) GetOfficerList(c *gin.Context) {
	cabalUuid := c.Query("cabalUuid")
	if cabalUuid == "" {
		HandleParamError(c, errMissingQuery("cabalUuid"))
		return
	}
	data, err := h.governanceSvc.GetOfficerList(cabalUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// VoteRemoveLeader 投票罢免会长
// POST /governance/voteRemoveLeader
// 请求体: request.VoteRemoveLeaderRequest
// 响应: respond.VoteRespond
func (h *GovernanceHandler) VoteRemoveLeader(c *gin.Context) {
	var req request.VoteRemoveLeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.governanceSvc.VoteRemoveLeader(req.VoterUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
