package workers

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTopics struct {
	mu    sync.Mutex
	calls [][]time.Time
	err   error
	done  chan struct{}
}

func (f *fakeTopics) EnsureDaily(prefixes []string, days ...time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, days)
	if len(f.calls) == 1 {
		close(f.done)
	}
	return f.err
}

func TestProvisionTopics(t *testing.T) {
	day := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)
	topics := &fakeTopics{done: make(chan struct{})}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	ProvisionTopics(&wg, stop, topics, []string{"post-activity-"}, time.Hour, func() time.Time { return day })

	select {
	case <-topics.done:
	case <-time.After(time.Second):
		t.Fatal("topics not provisioned")
	}
	close(stop)
	wg.Wait()

	topics.mu.Lock()
	defer topics.mu.Unlock()
	require.Len(t, topics.calls, 1)
	assert.Equal(t, []time.Time{day, day.AddDate(0, 0, 1)}, topics.calls[0])
}

func TestCheckError(t *testing.T) {
	assert.Equal(t, time.Hour, checkError(nil, time.Hour))
	assert.Equal(t, retryWaitTime, checkError(errors.New("broker down"), time.Hour))
	assert.Equal(t, time.Second, checkError(errors.New("broker down"), time.Second))
}
