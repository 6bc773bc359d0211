package punch

import "sync"

// ReminderState 记录用户当天是否点了"今天请假/已处理"，跨天自动清空。
// 定时任务和机器人回调在不同goroutine里，读写都要加锁。
type ReminderState struct {
	mu                 sync.Mutex
	date               string
	clockInSuppressed  bool
	clockOutSuppressed bool
}

func NewReminderState() *ReminderState {
	return &ReminderState{}
}

// RolloverIfNeeded 日期变了就清空两个标记
func (s *ReminderState) RolloverIfNeeded(today string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollover(today)
}

func (s *ReminderState) rollover(today string) {
	if s.date == today {
		return
	}
	s.date = today
	s.clockInSuppressed = false
	s.clockOutSuppressed = false
}

func (s *ReminderState) SuppressClockIn() {
	s.mu.Lock()
	s.clockInSuppressed = true
	s.mu.Unlock()
}

func (s *ReminderState) SuppressClockOut() {
	s.mu.Lock()
	s.clockOutSuppressed = true
	s.mu.Unlock()
}

func (s *ReminderState) IsClockInSuppressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clockInSuppressed
}

func (s *ReminderState) IsClockOutSuppressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clockOutSuppressed
}

// Date 当前标记所属的日期，进程刚启动时为空
func (s *ReminderState) Date() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.date
}

// Suppressed 先跨天再读取，整个过程在同一把锁里
func (s *ReminderState) Suppressed(kind Kind, today string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollover(today)
	if kind == ClockOut {
		return s.clockOutSuppressed
	}
	return s.clockInSuppressed
}

// Suppress 先跨天再设置标记
func (s *ReminderState) Suppress(kind Kind, today string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollover(today)
	if kind == ClockOut {
		s.clockOutSuppressed = true
		return
	}
	s.clockInSuppressed = true
}
