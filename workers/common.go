package workers

import (
	"dailyfeed/logger"
	"time"
)

// 出错后的重试间隔
const retryWaitTime = 10 * time.Second

// 检查错误，如果有错误：
//
// 1. 输出日志
// 2. 返回较小的等待时间，尽快重试
func checkError(err error, waitTime time.Duration) time.Duration {
	if err != nil {
		logger.ErrorWithStack(err)
		if waitTime > retryWaitTime {
			return retryWaitTime
		}
	}
	return waitTime
}

// sleep 在 stop 关闭时提前返回 false
func sleep(stop <-chan struct{}, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}
