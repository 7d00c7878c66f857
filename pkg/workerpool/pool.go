// Package workerpool 固定数量 worker 的任务池
// 用于限制后台任务（快照导出等）同时打开的数据库查询数
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrWorkerPoolFull 任务队列已满
	ErrWorkerPoolFull = errors.New("worker pool queue is full")
	// ErrWorkerPoolClosed 任务池已关闭
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
	// ErrTaskCancelled 任务在执行前被取消
	ErrTaskCancelled = errors.New("task was cancelled")
)

// Config 任务池配置
type Config struct {
	// MaxWorkers 并发 worker 数量，默认 4
	MaxWorkers int
	// QueueSize 任务队列大小，默认 64
	QueueSize int
}

type taskWrapper struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Pool 任务池
type Pool struct {
	config Config
	logger *zap.Logger

	taskCh   chan taskWrapper
	workerWg sync.WaitGroup

	activeCount atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New 创建任务池并启动 worker，logger 为 nil 时不输出日志
func New(cfg Config, logger *zap.Logger) *Pool {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		config: cfg,
		logger: logger,
		taskCh: make(chan taskWrapper, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < cfg.MaxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	p.logger.Debug("worker pool started",
		zap.Int("maxWorkers", cfg.MaxWorkers),
		zap.Int("queueSize", cfg.QueueSize))
	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskCh:
			if !ok {
				return
			}
			p.execute(task)
		}
	}
}

func (p *Pool) execute(task taskWrapper) {
	p.activeCount.Add(1)
	defer p.activeCount.Add(-1)

	var err error
	select {
	case <-task.ctx.Done():
		err = ErrTaskCancelled
	default:
		err = task.fn(task.ctx)
	}

	// done 带 1 个缓冲，调用方放弃等待时不会阻塞 worker
	task.done <- err
}

func (p *Pool) enqueue(ctx context.Context, fn func(context.Context) error) (chan error, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrWorkerPoolClosed
	}

	done := make(chan error, 1)
	select {
	case p.taskCh <- taskWrapper{ctx: ctx, fn: fn, done: done}:
		return done, nil
	default:
		return nil, ErrWorkerPoolFull
	}
}

// Submit 提交任务并等待完成
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	done, err := p.enqueue(ctx, fn)
	if err != nil {
		return err
	}
	return p.wait(ctx, done)
}

func (p *Pool) wait(ctx context.Context, done chan error) error {
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrWorkerPoolClosed
	}
}

// Run 提交一组任务并等待全部完成，返回第一个错误
// 任一任务失败后取消其余任务的 ctx，返回前所有任务都已结束
func (p *Pool) Run(ctx context.Context, fns ...func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dones := make([]chan error, 0, len(fns))
	for _, fn := range fns {
		done, err := p.enqueue(ctx, fn)
		if err != nil {
			cancel()
			for _, d := range dones {
				_ = p.wait(context.Background(), d)
			}
			return err
		}
		dones = append(dones, done)
	}

	var first error
	for _, done := range dones {
		if err := p.wait(context.Background(), done); err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

// ActiveCount 正在执行的任务数
func (p *Pool) ActiveCount() int64 {
	return p.activeCount.Load()
}

// QueuedCount 队列中等待的任务数
func (p *Pool) QueuedCount() int {
	return len(p.taskCh)
}

// IsClosed 任务池是否已关闭
func (p *Pool) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// Shutdown 不再接收新任务，等待已提交的任务完成
// ctx 超时后取消 worker，队列中剩余任务不再执行
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.taskCh)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Debug("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.cancel()
		p.logger.Warn("worker pool shutdown timeout, forcing cancellation",
			zap.Int64("activeCount", p.activeCount.Load()),
			zap.Int("queuedCount", len(p.taskCh)))
		return ctx.Err()
	}
}
