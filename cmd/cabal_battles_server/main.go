package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cabal_battles_server/internal/config"
	dao "cabal_battles_server/internal/dao/mysql"
	myredis "cabal_battles_server/internal/dao/redis"
	"cabal_battles_server/internal/gateway/websocket"
	"cabal_battles_server/internal/handler"
	"cabal_battles_server/internal/https_server"
	"cabal_battles_server/internal/infrastructure/logger"
	"cabal_battles_server/internal/infrastructure/mq"
	"cabal_battles_server/internal/service"
	"cabal_battles_server/pkg/util/jwt"
	"cabal_battles_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化雪花算法节点
	snowflake.Init(conf.SnowflakeConfig.MachineID)
	zap.L().Info("雪花算法初始化成功")

	// 4. 初始化数据库
	repos, err := dao.Init(&conf.MysqlConfig)
	if err != nil {
		zap.L().Fatal("数据库初始化失败", zap.Error(err))
	}
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)
	zap.L().Info("JWT 初始化成功")

	// 7. 初始化事件发布者
	publisher := mq.InitPublisher()
	zap.L().Info("事件发布者初始化成功")

	// 8. 初始化 Service 层 (依赖注入)
	service.InitServices(repos, myredis.GetCacheService(), publisher, &conf.GameConfig)
	zap.L().Info("Service 层初始化成功")

	// 9. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("参数校验翻译器初始化失败", zap.Error(err))
	}
	zap.L().Info("参数校验翻译器初始化成功")

	// 10. 初始化观战网关并接入事件流
	gateway := websocket.InitGateway()
	if conf.KafkaConfig.EventMode == "kafka" {
		// kafka 模式下网关走独立消费组读事件主题
		reader := mq.NewKafkaEventReader("cabal_spectator_gateway")
		defer reader.Close()
		gateway.ConsumeKafka(context.Background(), reader)
	} else if channelPublisher, ok := publisher.(*mq.ChannelPublisher); ok {
		gateway.ConsumeChannel(channelPublisher.Subscribe("spectator_gateway"))
	}
	zap.L().Info("观战网关初始化成功")

	// 11. 启动后台任务（排期过期清理 + 奖励补发 + 过期票清理）
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	service.Svc.Scheduler.StartSweeper(workerCtx)
	service.Svc.Battle.StartPayoutWorker(workerCtx)
	service.Svc.Governance.StartVoteJanitor(workerCtx)
	zap.L().Info("后台任务启动成功")

	// 12. 初始化 HTTP 服务器
	engine := https_server.Init(handler.NewHandlers(service.Svc, gateway))
	zap.L().Info("HTTP 服务器初始化成功")

	// 13. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	zap.L().Info("关闭服务器...")
	stopWorkers()
	publisher.Close()
	zap.L().Info("服务器已关闭")
}
