package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/utils/config"
	"github.com/warp-contracts/batch-registry/src/utils/monitoring"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mtx      sync.Mutex
	failures int
	messages map[string][]interface{}
	closed   bool
}

func (self *fakeClient) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if self.failures > 0 {
		self.failures--
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	if self.messages == nil {
		self.messages = make(map[string][]interface{})
	}
	self.messages[channel] = append(self.messages[channel], message)
	return redis.NewIntResult(1, nil)
}

func (self *fakeClient) Close() error {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.closed = true
	return nil
}

func (self *fakeClient) count(channel string) int {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return len(self.messages[channel])
}

func TestSinkDropsWhenFull(t *testing.T) {
	monitor := monitoring.NewMonitor()
	sink := NewEventSink(2).WithMonitor(monitor)

	for i := 0; i < 5; i++ {
		sink.OnEvent(&batch.Event{Type: batch.EventRegistered, TokenId: "1"})
	}

	require.Len(t, sink.Output(), 2)
	require.Equal(t, uint64(2), monitor.GetReport().Publisher.State.MessagesQueued.Load())
	require.Equal(t, uint64(3), monitor.GetReport().Publisher.Errors.Dropped.Load())
}

func TestPublish(t *testing.T) {
	conf := config.Default()
	conf.Redis.MaxElapsedTime = 5 * time.Second
	conf.Redis.MaxInterval = 50 * time.Millisecond

	monitor := monitoring.NewMonitor()
	sink := NewEventSink(10).WithMonitor(monitor)
	fake := &fakeClient{failures: 2}

	publisher := NewRedisPublisher[*batch.Event](conf, conf.Redis, "publisher-test").
		WithInputChannel(sink.Output()).
		WithChannelName("batches").
		WithMonitor(monitor).
		withClient(fake)
	require.Nil(t, publisher.Start())

	sink.OnEvent(&batch.Event{Type: batch.EventRegistered, TokenId: "0", Status: batch.StatusRegistered})
	sink.OnEvent(&batch.Event{Type: batch.EventVerified, TokenId: "0", Status: batch.StatusVerified})

	require.Eventually(t, func() bool {
		return fake.count("batches") == 2
	}, 5*time.Second, 10*time.Millisecond)

	publisher.StopWait()

	report := monitor.GetReport().Publisher
	require.Equal(t, uint64(2), report.State.MessagesPublished.Load())
	require.Equal(t, uint64(2), report.Errors.Publish.Load())
	require.Equal(t, uint64(0), report.Errors.PersistentFailure.Load())
	require.True(t, fake.closed)
}

func TestPublishGivesUp(t *testing.T) {
	conf := config.Default()
	conf.Redis.MaxElapsedTime = 200 * time.Millisecond
	conf.Redis.MaxInterval = 50 * time.Millisecond

	monitor := monitoring.NewMonitor()
	input := make(chan *batch.Event, 1)
	fake := &fakeClient{failures: 1000}

	publisher := NewRedisPublisher[*batch.Event](conf, conf.Redis, "publisher-test").
		WithInputChannel(input).
		WithChannelName("batches").
		WithMonitor(monitor).
		withClient(fake)
	require.Nil(t, publisher.Start())

	input <- &batch.Event{Type: batch.EventRegistered, TokenId: "3"}

	require.Eventually(t, func() bool {
		return monitor.GetReport().Publisher.Errors.PersistentFailure.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)

	publisher.StopWait()
	require.Equal(t, 0, fake.count("batches"))
}
