package workers

import (
	"dailyfeed/dao/kafka"
	"dailyfeed/logic"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	wg   sync.WaitGroup
	stop = make(chan struct{})
	once sync.Once
)

func InitWorkers() {
	if logic.UsesKafka() {
		interval := time.Second * time.Duration(viper.GetInt64("kafka.topic.provision_interval"))
		ProvisionTopics(&wg, stop, kafka.GetTopicManager(), kafka.Prefixes(), interval, time.Now)
	}
}

// Wait 通知所有后台任务退出，并等待它们结束
func Wait() {
	once.Do(func() { close(stop) })
	wg.Wait()
}
