// Package mq 提供公会与对战事件的发布基础设施
// 事件消费方包括进程内的 WebSocket 观战网关以及外部通知服务（Kafka 模式）
package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// 事件类型
const (
	EventCabalCreated    = "cabal.created"     // 公会创建
	EventCabalDisbanded  = "cabal.disbanded"   // 公会解散
	EventMemberJoined    = "cabal.member_join" // 成员加入
	EventMemberLeft      = "cabal.member_left" // 成员离开
	EventOfficerChanged  = "cabal.officer"     // 官员变更
	EventLeaderChanged   = "cabal.leader"      // 会长更替
	EventCabalLevelUp    = "cabal.level_up"    // 公会升级
	EventBattleScheduled = "battle.scheduled"  // 对战排期
	EventBattleStarted   = "battle.started"    // 对战开始
	EventBattleAction    = "battle.action"     // 对战动作
	EventBattleCompleted = "battle.completed"  // 对战结束
	EventBattleCancelled = "battle.cancelled"  // 对战取消
)

// Event 领域事件
type Event struct {
	EventId   string                 `json:"eventId"`   // 事件唯一标识，消费方据此去重
	Type      string                 `json:"type"`      // 事件类型
	Subject   string                 `json:"subject"`   // 事件主体 UUID（公会或对战）
	Timestamp time.Time              `json:"timestamp"` // 发生时间
	Payload   map[string]interface{} `json:"payload"`   // 事件数据
}

// NewEvent 创建事件
func NewEvent(eventType, subject string, payload map[string]interface{}) *Event {
	return &Event{
		EventId:   uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// Marshal 序列化为 JSON
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher 事件发布接口
// 业务层通过此接口发布事件，具体实现由配置的 eventMode 决定
type Publisher interface {
	// Publish 发布事件，失败只记录日志不阻断业务
	Publish(ctx context.Context, event *Event)
	// Close 释放底层资源
	Close()
}
