package resolution

import (
	"sort"
	"time"
)

// Clock 由宿主提供的单调时钟
type Clock interface {
	SinceStart() time.Duration      // 进程启动以来
	SinceSceneStart() time.Duration // 当前场景加载以来
}

// Task 一个已排程的延迟回调
type Task interface {
	Cancel()
}

// Scheduler 延迟回调机制，决策循环用它重新排程自己
type Scheduler interface {
	After(delay time.Duration, fn func()) Task
}

// FrameScheduler 在帧循环里推进的协作式调度器。
// 回调在 Advance 的调用方线程上执行，不需要加锁。
type FrameScheduler struct {
	now   time.Duration
	seq   int
	tasks []*frameTask
}

type frameTask struct {
	due      time.Duration
	seq      int
	fn       func()
	canceled bool
}

func (t *frameTask) Cancel() { t.canceled = true }

// NewFrameScheduler 以 now 为起点
func NewFrameScheduler(now time.Duration) *FrameScheduler {
	return &FrameScheduler{now: now}
}

// After 安排 fn 在 delay 之后执行
func (s *FrameScheduler) After(delay time.Duration, fn func()) Task {
	s.seq++
	t := &frameTask{due: s.now + delay, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance 推进到 now，执行所有到期的任务（按到期时间、排程顺序）。
// 回调里新排的任务若也已到期，会在同一次 Advance 里执行。
func (s *FrameScheduler) Advance(now time.Duration) int {
	if now > s.now {
		s.now = now
	}
	ran := 0
	for {
		due := s.popDue()
		if due == nil {
			return ran
		}
		due.fn()
		ran++
	}
}

// Pending 尚未执行且未取消的任务数
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

func (s *FrameScheduler) popDue() *frameTask {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.canceled {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if s.tasks[0].due > s.now {
		return nil
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	return t
}
