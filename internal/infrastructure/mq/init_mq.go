package mq

import (
	myconfig "cabal_battles_server/internal/config"

	"go.uber.org/zap"
)

// InitPublisher 根据配置的 eventMode 创建事件发布者
// "kafka" 模式发布到 Kafka，其余情况走进程内通道
func InitPublisher() Publisher {
	mode := myconfig.GetConfig().KafkaConfig.EventMode
	if mode == "kafka" {
		publisher := NewKafkaPublisher()
		publisher.CreateTopic()
		zap.L().Info("event publisher initialized", zap.String("mode", "kafka"))
		return publisher
	}
	zap.L().Info("event publisher initialized", zap.String("mode", "channel"))
	return NewChannelPublisher()
}
