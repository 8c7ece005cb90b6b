package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RegisterRejectsBadSpec(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := New(logger)

	err := s.Register("bad", "every five minutes", func(context.Context) error { return nil })
	assert.Error(t, err)

	// 缺少秒字段的 5 段表达式同样不合法
	err = s.Register("five-field", "*/5 * * * *", func(context.Context) error { return nil })
	assert.Error(t, err)

	assert.NoError(t, s.Register("ok", "0 */5 * * * *", func(context.Context) error { return nil }))
}

func TestScheduler_RunsJobOnSchedule(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	s := New(logger)

	var runs atomic.Int32
	require.NoError(t, s.Register("tick", "* * * * * *", func(context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	}))

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	var failed bool
	for _, e := range hook.AllEntries() {
		if e.Data["job"] == "tick" && e.Message == "定时任务执行失败" {
			failed = true
		}
	}
	assert.True(t, failed)
}

func TestScheduler_RunNow(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := New(logger)

	called := false
	err := s.RunNow("manual", func(ctx context.Context) error {
		called = true
		return ctx.Err()
	})
	require.NoError(t, err)
	assert.True(t, called)
}

// blockingJob 第一次执行时通知 started，然后阻塞到 release 关闭
func blockingJob(started chan<- context.Context, release <-chan struct{}) Job {
	var once atomic.Bool
	return func(ctx context.Context) error {
		if once.CompareAndSwap(false, true) {
			started <- ctx
		}
		<-release
		return nil
	}
}

func TestScheduler_StopWaitsForRunningJob(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := New(logger)

	started := make(chan context.Context, 1)
	release := make(chan struct{})
	require.NoError(t, s.Register("slow", "* * * * * *", blockingJob(started, release)))
	s.Start()

	var jobCtx context.Context
	select {
	case jobCtx = <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	stopped := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stopped <- s.Stop(ctx)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while job still running")
	case <-time.After(100 * time.Millisecond):
	}
	assert.NoError(t, jobCtx.Err())

	close(release)
	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return after job finished")
	}
}

func TestScheduler_StopDeadlineLeavesJobRunning(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := New(logger)

	started := make(chan context.Context, 1)
	release := make(chan struct{})
	defer close(release)
	require.NoError(t, s.Register("slow", "* * * * * *", blockingJob(started, release)))
	s.Start()

	var jobCtx context.Context
	select {
	case jobCtx = <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := s.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// 超时返回后任务仍在执行，其 ctx 未被取消
	assert.NoError(t, jobCtx.Err())
}
