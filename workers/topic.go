package workers

import (
	"dailyfeed/logger"
	"sync"
	"time"
)

type topicEnsurer interface {
	EnsureDaily(prefixes []string, days ...time.Time) error
}

// ProvisionTopics 定期创建今天和明天的活动主题，避免跨天后第一条消息才去建主题
func ProvisionTopics(wg *sync.WaitGroup, stop <-chan struct{}, topics topicEnsurer, prefixes []string, interval time.Duration, now func() time.Time) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			today := now()
			err := topics.EnsureDaily(prefixes, today, today.AddDate(0, 0, 1))
			if err == nil {
				logger.Debugf("workers:ProvisionTopics: topics for %s ready", today.Format("2006-01-02"))
			}
			if !sleep(stop, checkError(err, interval)) {
				return
			}
		}
	}()
}
