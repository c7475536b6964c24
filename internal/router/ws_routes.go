// Package router 提供 HTTP 路由注册
// 本文件定义观战 WebSocket 相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册观战 WebSocket 路由
// 客户端通过此路由建立 WebSocket 连接接收事件推送
// 请求示例: ws://host:port/ws/spectate?clientId=C123456789
func (rt *Router) RegisterWebSocketRoutes(r *gin.Engine) {
	r.GET("/ws/spectate", rt.handlers.Ws.Spectate)
}
