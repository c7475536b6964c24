// Package handler 提供 HTTP 请求处理器
// 本文件处理公会会籍相关的 API 请求
package handler

import (
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/service"

	"github.com/gin-gonic/gin"
)

// CabalHandler 公会会籍请求处理器
// 通过构造函数注入 MembershipService，遵循依赖倒置原则
type CabalHandler struct {
	membershipSvc service.MembershipService
}

// NewCabalHandler 创建公会处理器实例
func NewCabalHandler(membershipSvc service.MembershipService) *CabalHandler {
	return &CabalHandler{membershipSvc: membershipSvc}
}

// CreateCabal 创建公会
// POST /cabal/create
// 请求体: request.CreateCabalRequest
// 响应: respond.CreateCabalRespond
func (h *CabalHandler) CreateCabal(c *gin.Context) {
	var req request.CreateCabalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.membershipSvc.CreateCabal(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// JoinCabal 凭邀请码加入公会
// POST /cabal/join
// 请求体: request.JoinCabalRequest
// 响应: respond.CabalInfoRespond
func (h *CabalHandler) JoinCabal(c *gin.Context) {
	var req request.JoinCabalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.membershipSvc.JoinByInviteCode(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LeaveCabal 退出公会
// POST /cabal/leave
// 请求体: request.LeaveCabalRequest
// 响应: nil
func (h *CabalHandler) LeaveCabal(c *gin.Context) {
	var req request.LeaveCabalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.membershipSvc.Leave(req.ChadUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveMember 会长移除成员
// POST /cabal/removeMember
// 请求体: request.RemoveMemberRequest
// 响应: nil
func (h *CabalHandler) RemoveMember(c *gin.Context) {
	var req request.RemoveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.membershipSvc.RemoveMember(req.LeaderUuid, req.TargetUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ChangeLeader 会长主动移交
// POST /cabal/changeLeader
// 请求体: request.ChangeLeaderRequest
// 响应: nil
func (h *CabalHandler) ChangeLeader(c *gin.Context) {
	var req request.ChangeLeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.membershipSvc.ChangeLeader(req.LeaderUuid, req.NewLeaderUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DisbandCabal 解散公会
// POST /cabal/disband
// 请求体: request.DisbandCabalRequest
// 响应: nil
func (h *CabalHandler) DisbandCabal(c *gin.Context) {
	var req request.DisbandCabalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.membershipSvc.Disband(req.LeaderUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetCabalInfo 获取公会详情
// GET /cabal/info?cabalUuid=xxx
// 响应: respond.CabalInfoRespond
func (h *CabalHandler) GetCabalInfo(c *gin.Context) {
	cabalUuid := c.Query("cabalUuid")
	if cabalUuid == "" {
		HandleParamError(c, errMissingQuery("cabalUuid"))
		return
	}
	data, err := h.membershipSvc.GetCabalInfo(cabalUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMemberList 获取在籍成员列表
// GET /cabal/memberList?cabalUuid=xxx
// 响应: []respond.MemberListRespond
func (h *CabalHandler) GetMemberList(c *gin.Context) {
	cabalUuid := c.Query("cabalUuid")
	if cabalUuid == "" {
		HandleParamError(c, errMissingQuery("cabalUuid"))
		return
	}
	data, err := h.membershipSvc.GetMemberList(cabalUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SpendCoin 公会金库消费
// POST /cabal/spendCoin
// 请求体: request.SpendCoinRequest
// 响应: nil
func (h *CabalHandler) SpendCoin(c *gin.Context) {
	var req request.SpendCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.membershipSvc.SpendCoin(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RecomputePower 重算公会聚合战力
// POST /cabal/recomputePower?cabalUuid=xxx
// 响应: int 最新聚合战力
func (h *CabalHandler) RecomputePower(c *gin.Context) {
	cabalUuid := c.Query("cabalUuid")
	if cabalUuid == "" {
		HandleParamError(c, errMissingQuery("cabalUuid"))
		return
	}
	power, err := h.membershipSvc.RecomputeTotalPower(cabalUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, power)
}
