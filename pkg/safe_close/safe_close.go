// Package safe_close coordinates graceful shutdown of long-running workers.
package safe_close

import "sync"

// SafeClose 关闭协调器
// Attach 注册的每个 worker 在收到关闭信号后自行清理，并调用 done 告知完成
type SafeClose struct {
	closeSignal chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup

	mu  sync.Mutex
	err error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{closeSignal: make(chan struct{})}
}

// Attach 在新的 goroutine 中启动 worker
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	done := sync.OnceFunc(s.wg.Done)
	go fn(done, s.closeSignal)
}

// SendCloseSignal 广播关闭信号，只记录第一个非空错误；可重复调用
func (s *SafeClose) SendCloseSignal(err error) {
	if err != nil {
		s.mu.Lock()
		if s.err == nil {
			s.err = err
		}
		s.mu.Unlock()
	}
	s.closeOnce.Do(func() {
		close(s.closeSignal)
	})
}

// Closed 关闭信号是否已发出
func (s *SafeClose) Closed() bool {
	select {
	case <-s.closeSignal:
		return true
	default:
		return false
	}
}

// WaitClosed 等待所有 worker 调用 done，返回导致关闭的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
