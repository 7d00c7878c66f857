package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubmit(t *testing.T) {
	p := New(Config{MaxWorkers: 2}, nil)
	defer p.Shutdown(context.Background())

	ran := false
	err := p.Submit(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	boom := errors.New("boom")
	err = p.Submit(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestRunLimitsConcurrency(t *testing.T) {
	p := New(Config{MaxWorkers: 2, QueueSize: 16}, nil)
	defer p.Shutdown(context.Background())

	var active, peak atomic.Int64
	fns := make([]func(context.Context) error, 8)
	for i := range fns {
		fns[i] = func(context.Context) error {
			n := active.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
			return nil
		}
	}

	require.NoError(t, p.Run(context.Background(), fns...))
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestRunReturnsFirstError(t *testing.T) {
	p := New(Config{MaxWorkers: 1, QueueSize: 4}, nil)
	defer p.Shutdown(context.Background())

	boom := errors.New("boom")
	err := p.Run(context.Background(),
		func(context.Context) error { return boom },
		func(ctx context.Context) error { return ctx.Err() },
	)
	assert.ErrorIs(t, err, boom)
}

func TestSubmitAfterShutdown(t *testing.T) {
	p := New(Config{}, nil)
	require.NoError(t, p.Shutdown(context.Background()))
	assert.True(t, p.IsClosed())

	err := p.Submit(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)

	// 重复关闭无副作用
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestQueueFull(t *testing.T) {
	p := New(Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Shutdown(context.Background())

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = p.Submit(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// 占满队列
	go func() {
		_ = p.Submit(context.Background(), func(context.Context) error { return nil })
	}()
	require.Eventually(t, func() bool { return p.QueuedCount() == 1 }, time.Second, time.Millisecond)

	err := p.Submit(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolFull)
	close(release)
}
