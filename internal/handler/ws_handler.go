package handler

import (
	"github.com/gin-gonic/gin"

	"cabal_battles_server/internal/gateway/websocket"
)

// WsHandler 观战 WebSocket 处理器
type WsHandler struct {
	gateway *websocket.Gateway
}

// NewWsHandler 创建观战处理器
func NewWsHandler(gateway *websocket.Gateway) *WsHandler {
	return &WsHandler{gateway: gateway}
}

// Spectate 建立观战连接
// GET /ws/spectate?clientId=xxx
// 升级为 WebSocket 后向该客户端实时推送公会与对战事件
func (h *WsHandler) Spectate(c *gin.Context) {
	clientId := c.Query("clientId")
	if clientId == "" {
		HandleParamError(c, errMissingQuery("clientId"))
		return
	}
	h.gateway.Register(c, clientId)
}
