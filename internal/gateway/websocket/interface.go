package websocket

import "context"

// EventReader 事件源读取接口
// 屏蔽底层消息中间件，网关只关心按条读出的事件字节
type EventReader interface {
	ReadEvent(ctx context.Context) ([]byte, error)
	Close() error
}
