package settings

import "github.com/spf13/viper"

func InitSettings(confPath string) {
	SetDefaults()

	viper.SetConfigFile(confPath)

	if err := viper.ReadInConfig(); err != nil {
		panic(err.Error())
	}
}

// SetDefaults 只设置默认值，不读取配置文件（测试中直接使用）
func SetDefaults() {
	viper.SetDefault("server.ip", "")
	viper.SetDefault("server.port", 8081)
	viper.SetDefault("server.lang", "en")
	viper.SetDefault("server.start_time", "2025-01-01") // 雪花算法起始时间
	viper.SetDefault("server.machine_id", 1)
	viper.SetDefault("server.develop_mode", false)
	viper.SetDefault("server.shutdown_waitting_time", 30) // 收到 SIGINT 信号后，超过 30s，服务器将强制退出
	viper.SetDefault("server.ratelimit.rate", 0.6)
	viper.SetDefault("server.ratelimit.capacity", 5000)
	viper.SetDefault("server.jwt_key", "dailyfeed")
	viper.SetDefault("server.frontend_path", "") // 跨域，为空时不开启
	viper.SetDefault("server.metrics.enable", true)

	viper.SetDefault("mysql.host", "127.0.0.1")
	viper.SetDefault("mysql.port", 3306)
	viper.SetDefault("mysql.username", "root")
	viper.SetDefault("mysql.password", "123456")
	viper.SetDefault("mysql.database", "dailyfeed")
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("mysql.debug", false)

	viper.SetDefault("mongo.uri", "mongodb://127.0.0.1:27017")
	viper.SetDefault("mongo.database", "dailyfeed")
	viper.SetDefault("mongo.max_oper_time", 3)

	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.poolsize", 10)
	viper.SetDefault("redis.max_oper_time", 3)

	viper.SetDefault("kafka.addr", []string{"127.0.0.1:9092"})
	viper.SetDefault("kafka.partition", 3)
	viper.SetDefault("kafka.replication_factor", 1)
	viper.SetDefault("kafka.retention_ms", 604800000) // 7 天
	viper.SetDefault("kafka.retry.producer", 3)
	viper.SetDefault("kafka.topic.post_prefix", "post-activity-")
	viper.SetDefault("kafka.topic.comment_prefix", "comment-activity-")
	viper.SetDefault("kafka.topic.date_format", "20060102")
	viper.SetDefault("kafka.topic.provision_interval", 3600)
	viper.SetDefault("kafka.topic.cache_size", 64) // 已确认存在的主题

	viper.SetDefault("activity.rpc.base_url", "http://127.0.0.1:8085")
	viper.SetDefault("activity.rpc.retry", 3)
	viper.SetDefault("activity.rpc.timeout", 3)

	viper.SetDefault("logger.level", 0)
	viper.SetDefault("logger.path", "./logs/dailyfeed.log")
	viper.SetDefault("logger.max_size", 16)
	viper.SetDefault("logger.max_backups", 5)
	viper.SetDefault("logger.compress", false)
	viper.SetDefault("logger.console", true)

	viper.SetDefault("storage.document_store", "mongo") // mongo | memory

	viper.SetDefault("service.post.publish_type", "kafka")         // kafka | rpc
	viper.SetDefault("service.comment.publish_type", "kafka")      // kafka | rpc
	viper.SetDefault("service.comment.max_depth", 2)               // 评论的最大层数（根评论为第 0 层）
	viper.SetDefault("service.activity.lost_event_policy", "fail") // fail | log
	viper.SetDefault("service.activity.after_commit_timeout", 10)  // 提交后镜像与投递的超时（秒）
	viper.SetDefault("service.mirror.lock_ttl", 5)
	viper.SetDefault("service.mirror.history_timeout", 3)
}
