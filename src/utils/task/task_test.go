package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/warp-contracts/batch-registry/src/utils/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestTaskTestSuite(t *testing.T) {
	suite.Run(t, new(TaskTestSuite))
}

type TaskTestSuite struct {
	suite.Suite
	config *config.Config
}

func (s *TaskTestSuite) SetupSuite() {
	s.config = config.Default()
	s.config.StopTimeout = 5 * time.Second
}

func (s *TaskTestSuite) TestLifecycle() {
	var started, stopped atomic.Bool
	task := NewTask(s.config, "test").
		WithOnBeforeStart(func() error {
			started.Store(true)
			return nil
		}).
		WithOnStop(func() {
			stopped.Store(true)
		})
	task = task.WithSubtaskFunc(func() error {
		<-task.StopChannel
		return nil
	})

	require.Nil(s.T(), task.Start())
	require.True(s.T(), started.Load())

	task.StopWait()
	require.True(s.T(), stopped.Load())
	require.True(s.T(), task.IsStopping.Load())

	select {
	case <-task.CtxRunning.Done():
	case <-time.After(time.Second):
		s.T().Fatal("task didn't finish")
	}
}

func (s *TaskTestSuite) TestPeriodicSubtask() {
	var counter atomic.Int32
	task := NewTask(s.config, "periodic").
		WithPeriodicSubtaskFunc(10*time.Millisecond, func() error {
			counter.Add(1)
			return nil
		})

	require.Nil(s.T(), task.Start())
	require.Eventually(s.T(), func() bool { return counter.Load() >= 3 }, time.Second, 5*time.Millisecond)
	task.StopWait()
}

func (s *TaskTestSuite) TestWorkerPool() {
	var counter atomic.Int32
	task := NewTask(s.config, "workers").
		WithWorkerPool(2)
	task = task.WithSubtaskFunc(func() error {
		<-task.StopChannel
		return nil
	})

	require.Nil(s.T(), task.Start())
	for i := 0; i < 10; i++ {
		task.SubmitToWorker(func() { counter.Add(1) })
	}
	task.StopWait()
	require.Equal(s.T(), int32(10), counter.Load())
}

func (s *TaskTestSuite) TestParentWaitsForSubtasks() {
	var finished atomic.Bool
	child := NewTask(s.config, "child")
	child = child.WithSubtaskFunc(func() error {
		<-child.StopChannel
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	})

	parent := NewTask(s.config, "parent").WithSubtask(child)
	require.Nil(s.T(), parent.Start())

	parent.StopWait()
	require.True(s.T(), finished.Load())
}

func (s *TaskTestSuite) TestSubtaskStartFailure() {
	failing := NewTask(s.config, "failing").
		WithOnBeforeStart(func() error { return errors.New("no connection") })

	task := NewTask(s.config, "parent").WithSubtask(failing)
	require.NotNil(s.T(), task.Start())
}

func TestRetry(t *testing.T) {
	var attempts, notified int
	err := NewRetry().
		WithContext(context.Background()).
		WithMaxElapsedTime(time.Second).
		WithMaxInterval(10 * time.Millisecond).
		WithOnError(func(error) { notified++ }).
		Run(func() error {
			attempts++
			if attempts < 3 {
				return errors.New("not yet")
			}
			return nil
		})
	require.Nil(t, err)
	require.Equal(t, 3, attempts)
	require.Equal(t, 2, notified)
}

func TestRetryPermanent(t *testing.T) {
	var attempts int
	err := NewRetry().
		WithMaxElapsedTime(time.Second).
		Run(func() error {
			attempts++
			return backoff.Permanent(errors.New("fatal"))
		})
	require.NotNil(t, err)
	require.Equal(t, 1, attempts)
}
