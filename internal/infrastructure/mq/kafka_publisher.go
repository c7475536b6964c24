// Package mq kafka_publisher.go
// 核心职责：Kafka 事件发布
// 1. 封装 Kafka 底层连接 (Writer)
// 2. 实现 Publisher 接口
// 3. 纯技术组件，不包含公会业务逻辑
package mq

import (
	"context"
	"time"

	myconfig "cabal_battles_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher Kafka 事件发布实现
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher 创建并初始化 Kafka 发布者
func NewKafkaPublisher() *KafkaPublisher {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.EventTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	return &KafkaPublisher{writer: writer}
}

// CreateTopic 创建事件主题（幂等，已存在时 Kafka 返回错误仅记录日志）
func (p *KafkaPublisher) CreateTopic() {
	kafkaConfig := myconfig.GetConfig().KafkaConfig

	conn, err := kafka.Dial("tcp", kafkaConfig.HostPort)
	if err != nil {
		zap.L().Error("kafka dial failed", zap.Error(err))
		return
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             kafkaConfig.EventTopic,
			NumPartitions:     kafkaConfig.Partition,
			ReplicationFactor: 1,
		},
	}
	if err = conn.CreateTopics(topicConfigs...); err != nil {
		zap.L().Error("kafka create topic failed", zap.Error(err))
	}
}

// Publish 发布事件到 Kafka
// 以事件主体 UUID 作为分区键，保证同一公会/对战的事件有序
func (p *KafkaPublisher) Publish(ctx context.Context, event *Event) {
	value, err := event.Marshal()
	if err != nil {
		zap.L().Error("marshal event failed", zap.String("type", event.Type), zap.Error(err))
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Subject),
		Value: value,
	})
	if err != nil {
		zap.L().Error("publish event to kafka failed",
			zap.String("type", event.Type), zap.String("subject", event.Subject), zap.Error(err))
	}
}

// Close 关闭 Kafka Writer
func (p *KafkaPublisher) Close() {
	if err := p.writer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}

var _ Publisher = (*KafkaPublisher)(nil)
