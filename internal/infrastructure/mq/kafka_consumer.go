package mq

import (
	"context"

	myconfig "cabal_battles_server/internal/config"

	"github.com/segmentio/kafka-go"
)

// KafkaEventReader 事件主题消费者，供观战网关回放事件流
type KafkaEventReader struct {
	reader *kafka.Reader
}

// NewKafkaEventReader 创建事件主题消费者
// groupId 区分消费者组，观战网关使用独立消费组不影响其他订阅方
func NewKafkaEventReader(groupId string) *KafkaEventReader {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{kafkaConfig.HostPort},
		Topic:    kafkaConfig.EventTopic,
		GroupID:  groupId,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &KafkaEventReader{reader: reader}
}

// ReadEvent 按条读取事件字节
func (r *KafkaEventReader) ReadEvent(ctx context.Context) ([]byte, error) {
	msg, err := r.reader.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}
	return msg.Value, nil
}

// Close 关闭消费者
func (r *KafkaEventReader) Close() error {
	return r.reader.Close()
}
