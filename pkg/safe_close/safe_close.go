package safe_close

import (
	"sync"
)

// SafeClose 统一管理多个后台组件的优雅关闭
// 组件通过 Attach 注册, 收到关闭信号后自行清理并调用 done
type SafeClose struct {
	closeSignal chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup

	mu  sync.Mutex
	err error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 注册一个组件
// f 在新 goroutine 中执行, closeSignal 关闭时组件应退出并调用 done
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var doneOnce sync.Once
	done := func() {
		doneOnce.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal 发出关闭信号, 只有首个 err 会被记录
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeSignal)
	})
}

// ReceiveCloseSignal 返回关闭信号通道
func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.closeSignal
}

// Err 返回首个关闭原因
func (s *SafeClose) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// WaitClosed 阻塞直到所有组件完成关闭, 返回关闭原因
func (s *SafeClose) WaitClosed() error {
	<-s.closeSignal
	s.wg.Wait()
	return s.Err()
}
