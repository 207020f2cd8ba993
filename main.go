package main

import (
	"context"
	"dailyfeed/dao/activityrpc"
	"dailyfeed/dao/kafka"
	"dailyfeed/dao/mongodb"
	"dailyfeed/dao/mysql"
	"dailyfeed/dao/redis"
	"dailyfeed/internal/utils"
	"dailyfeed/logger"
	"dailyfeed/logic"
	"dailyfeed/router"
	"dailyfeed/settings"
	"dailyfeed/workers"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
)

func init() {
	path := flag.String("c", "./config/config.json", "config path(file must be named 'config.json')")
	flag.Parse()

	settings.InitSettings(*path)

	logger.InitLogger()

	utils.InitSnowflake()
	utils.InitTrans()
	utils.InitToken()

	mysql.InitMySQL()
	logger.Infof("Initializing MySQL successfully")

	if viper.GetString("storage.document_store") == "mongo" {
		mongodb.InitMongo()
		logger.Infof("Initializing MongoDB successfully")

		redis.InitRedis() // 镜像文档的分布式锁
		logger.Infof("Initializing Redis successfully")
	}

	if logic.UsesKafka() {
		kafka.InitKafka()
		logger.Infof("Initializing Kafka successfully")
	}
	if logic.UsesRPC() {
		activityrpc.InitClient()
		logger.Infof("Initializing activity RPC client successfully")
	}

	logic.InitContentService()

	router.Init()
	logger.Infof("Initializing router successfully")

	workers.InitWorkers() // 后台任务
}

func main() {
	srv := router.GetServer()

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint // 阻塞，直到收到信号

		// 等待正在处理的请求，超过指定时间后强制退出
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*time.Duration(viper.GetInt64("server.shutdown_waitting_time")))
		defer cancel()
		logger.Infof("Shutting down HTTP Server(wait for all connections to be closed)...")

		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf("dailyfeed server shutdown: %v", err)
		}
		logger.Infof("Http server closed successfully")
		close(idleConnsClosed)
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Errorf("HTTP server ListenAndServe: %v", err)
	}

	<-idleConnsClosed // 直到 close 后，主线程才会退出
	logger.Infof("Waitting for all background tasks to complete...")
	workers.Wait() // 等待所有后台任务结束才退出

	// 变更已经不会再产生，最后关闭各个连接
	for name, closeFn := range map[string]func() error{
		"kafka": kafka.Close,
		"mongo": mongodb.Close,
		"redis": redis.Close,
	} {
		if err := closeFn(); err != nil {
			logger.Errorf("close %s: %v", name, err)
		}
	}
	logger.Infof("Done.\n\ndailyfeed server closed successfully")
	logger.Sync()
}
