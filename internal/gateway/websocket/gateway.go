// Package websocket 提供观战事件推送网关
// 把公会与对战事件实时转发给已连接的观战客户端
package websocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cabal_battles_server/internal/infrastructure/mq"
	"cabal_battles_server/pkg/constants"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 检查连接的Origin头
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Spectator 观战客户端连接
type Spectator struct {
	Conn *websocket.Conn
	Uuid string
	Send chan []byte // 待推送事件
}

// Gateway 观战连接管理器
// 维护全部观战连接并向其广播事件
type Gateway struct {
	mu         sync.RWMutex
	spectators map[string]*Spectator
}

// NewGateway 创建观战网关
func NewGateway() *Gateway {
	return &Gateway{spectators: make(map[string]*Spectator)}
}

// gateway 全局网关实例
var gateway *Gateway

// InitGateway 初始化全局网关
func InitGateway() *Gateway {
	gateway = NewGateway()
	return gateway
}

// GetGateway 获取全局网关实例
func GetGateway() *Gateway {
	return gateway
}

// Register 升级 HTTP 连接为 WebSocket 并注册观战客户端
func (g *Gateway) Register(c *gin.Context, clientId string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	spectator := &Spectator{
		Conn: conn,
		Uuid: clientId,
		Send: make(chan []byte, constants.CHANNEL_SIZE),
	}

	g.mu.Lock()
	if old, ok := g.spectators[clientId]; ok {
		// 同一客户端重连，挤掉旧连接
		close(old.Send)
		_ = old.Conn.Close()
	}
	g.spectators[clientId] = spectator
	g.mu.Unlock()

	go spectator.writePump()
	go g.readPump(spectator)
	zap.L().Info("spectator connected", zap.String("client", clientId))
}

// Remove 注销观战客户端并关闭连接
func (g *Gateway) Remove(clientId string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if spectator, ok := g.spectators[clientId]; ok {
		close(spectator.Send)
		_ = spectator.Conn.Close()
		delete(g.spectators, clientId)
	}
}

// Broadcast 向全部观战客户端广播事件
// 推送队列满的客户端直接跳过，不阻塞广播
func (g *Gateway) Broadcast(data []byte) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for clientId, spectator := range g.spectators {
		select {
		case spectator.Send <- data:
		default:
			zap.L().Warn("spectator send buffer full, dropping event", zap.String("client", clientId))
		}
	}
}

// writePump 推送队列消费循环
func (s *Spectator) writePump() {
	for data := range s.Send {
		if err := s.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			zap.L().Error(err.Error())
			return
		}
	}
}

// readPump 读取循环，观战连接只上行心跳，读出错即清理连接
func (g *Gateway) readPump(s *Spectator) {
	for {
		if _, _, err := s.Conn.ReadMessage(); err != nil {
			g.Remove(s.Uuid)
			return
		}
	}
}

// ConsumeChannel 消费进程内事件通道并广播（eventMode = "channel"）
func (g *Gateway) ConsumeChannel(events <-chan *mq.Event) {
	go func() {
		for event := range events {
			data, err := event.Marshal()
			if err != nil {
				zap.L().Error(err.Error())
				continue
			}
			g.Broadcast(data)
		}
	}()
}

// ConsumeKafka 消费 Kafka 事件主题并广播（eventMode = "kafka"）
func (g *Gateway) ConsumeKafka(ctx context.Context, reader EventReader) {
	go func() {
		for {
			data, err := reader.ReadEvent(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				zap.L().Error("read event from kafka failed", zap.Error(err))
				continue
			}
			g.Broadcast(data)
		}
	}()
}
