// Package mq channel_publisher.go
// 进程内事件通道实现，用于单机部署（eventMode = "channel"）
// 事件直接投递给本进程内的订阅者（WebSocket 观战网关）
package mq

import (
	"context"
	"sync"

	"cabal_battles_server/pkg/constants"

	"go.uber.org/zap"
)

// ChannelPublisher 进程内事件发布实现
// 订阅者各持有一条带缓冲通道，投递满时丢弃并记录日志，不阻断业务
type ChannelPublisher struct {
	mu          sync.RWMutex
	subscribers map[string]chan *Event
	closed      bool
}

// NewChannelPublisher 创建进程内发布者
func NewChannelPublisher() *ChannelPublisher {
	return &ChannelPublisher{
		subscribers: make(map[string]chan *Event),
	}
}

// Subscribe 注册订阅者，返回事件通道
// id 需唯一，重复注册会替换旧通道（旧通道被关闭）
func (p *ChannelPublisher) Subscribe(id string) <-chan *Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if old, ok := p.subscribers[id]; ok {
		close(old)
	}
	ch := make(chan *Event, constants.CHANNEL_SIZE)
	p.subscribers[id] = ch
	return ch
}

// Unsubscribe 注销订阅者并关闭其通道
func (p *ChannelPublisher) Unsubscribe(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ch, ok := p.subscribers[id]; ok {
		close(ch)
		delete(p.subscribers, id)
	}
}

// Publish 向全部订阅者投递事件
func (p *ChannelPublisher) Publish(ctx context.Context, event *Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	for id, ch := range p.subscribers {
		select {
		case ch <- event:
		default:
			zap.L().Warn("event channel full, dropping event",
				zap.String("subscriber", id), zap.String("type", event.Type))
		}
	}
}

// Close 关闭全部订阅通道
func (p *ChannelPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for id, ch := range p.subscribers {
		close(ch)
		delete(p.subscribers, id)
	}
}

var _ Publisher = (*ChannelPublisher)(nil)
