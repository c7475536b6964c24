// Package handler 提供 HTTP 请求处理器
// 本文件处理对战引擎相关的 API 请求
package handler

import (
	"cabal_battles_server/internal/dto/request"
	"cabal_battles_server/internal/service"

	"github.com/gin-gonic/gin"
)

// BattleHandler 对战请求处理器
type BattleHandler struct {
	battleSvc service.BattleService
}

// NewBattleHandler 创建对战处理器实例
func NewBattleHandler(battleSvc service.BattleService) *BattleHandler {
	return &BattleHandler{battleSvc: battleSvc}
}

// CreateChallenge 发起 1v1 挑战
// POST /battle/challenge
// 请求体: request.CreateChallengeRequest
// 响应: respond.BattleRespond
func (h *BattleHandler) CreateChallenge(c *gin.Context) {
	var req request.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.battleSvc.CreateChallenge(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// StartBattle 接受挑战并开战
// POST /battle/start
// 请求体: request.StartBattleRequest
// 响应: respond.BattleRespond
func (h *BattleHandler) StartBattle(c *gin.Context) {
	var req request.StartBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.battleSvc.Start(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// PerformAction 执行回合动作
// POST /battle/action
// 请求体: request.BattleActionRequest
// 响应: respond.BattleRespond
func (h *BattleHandler) PerformAction(c *gin.Context) {
	var req request.BattleActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.battleSvc.PerformAction(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CancelBattle 拒绝挑战
// POST /battle/cancel
// 请求体: request.CancelBattleRequest
// 响应: nil
func (h *BattleHandler) CancelBattle(c *gin.Context) {
	var req request.CancelBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.battleSvc.Cancel(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetBattle 获取对战详情
// GET /battle/info?battleUuid=xxx
// 响应: respond.BattleRespond
func (h *BattleHandler) GetBattle(c *gin.Context) {
	battleUuid := c.Query("battleUuid")
	if battleUuid == "" {
		HandleParamError(c, errMissingQuery("battleUuid"))
		return
	}
	data, err := h.battleSvc.GetBattle(battleUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ResolveCabalWar 结算公会大战
// POST /battle/resolveCabalWar?scheduleUuid=xxx
// 响应: respond.BattleRespond
func (h *BattleHandler) ResolveCabalWar(c *gin.Context) {
	scheduleUuid := c.Query("scheduleUuid")
	if scheduleUuid == "" {
		HandleParamError(c, errMissingQuery("scheduleUuid"))
		return
	}
	data, err := h.battleSvc.ResolveCabalWar(scheduleUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
