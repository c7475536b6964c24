// Package handler 提供 HTTP 请求处理器
// 本文件处理排行榜相关的 API 请求
package handler

import (
	"strconv"

	"cabal_battles_server/internal/service"

	"github.com/gin-gonic/gin"
)

// LeaderboardHandler 排行榜请求处理器
type LeaderboardHandler struct {
	leaderboardSvc service.LeaderboardService
}

// NewLeaderboardHandler 创建排行榜处理器实例
func NewLeaderboardHandler(leaderboardSvc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc}
}

// GetLeaderboard 获取公会排行榜
// GET /leaderboard?limit=20
// 响应: []respond.LeaderboardRespond
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	data, err := h.leaderboardSvc.GetLeaderboard(limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
