// Implements the per-level ready queues of the feedback hierarchy.
// Processes are enqueued at level 0 on admission and move down on quantum exhaustion.

package sim

import (
	"fmt"
	"strings"
)

// LevelQueue represents a bounded FIFO queue of processes at one priority level.
type LevelQueue struct {
	queue    []*Process // FIFO queue of processes
	capacity int
}

// NewLevelQueue creates an empty queue holding at most capacity processes.
func NewLevelQueue(capacity int) *LevelQueue {
	return &LevelQueue{queue: make([]*Process, 0, capacity), capacity: capacity}
}

// Enqueue adds a process to the back of the queue.
// Returns ErrQueueOverflow when the queue is already at capacity.
func (lq *LevelQueue) Enqueue(p *Process) error {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	if len(lq.queue) >= lq.capacity {
		return fmt.Errorf("%w: cannot add %s, capacity %d reached", ErrQueueOverflow, p.Name, lq.capacity)
	}
	lq.queue = append(lq.queue, p)
	return nil
}

// Dequeue removes the process at the front of the queue.
// Returns nil if the queue is empty.
func (lq *LevelQueue) Dequeue() *Process {
	if len(lq.queue) == 0 {
		return nil
	}
	p := lq.queue[0]
	lq.queue[0] = nil
	lq.queue = lq.queue[1:]
	return p
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (lq *LevelQueue) Peek() *Process {
	if len(lq.queue) == 0 {
		return nil
	}
	return lq.queue[0]
}

// Len returns the number of processes in the queue.
func (lq *LevelQueue) Len() int {
	return len(lq.queue)
}

func (lq *LevelQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range lq.queue {
		sb.WriteString(p.Name)
		if i < len(lq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// PriorityQueueSet is the ordered set of level queues. Level 0 has the highest priority.
// A process sits in at most one level at a time and in none while running or finished.
type PriorityQueueSet struct {
	levels []*LevelQueue
}

// NewPriorityQueueSet creates queueNum empty levels, each bounded by capacity.
func NewPriorityQueueSet(queueNum, capacity int) *PriorityQueueSet {
	levels := make([]*LevelQueue, queueNum)
	for i := range levels {
		levels[i] = NewLevelQueue(capacity)
	}
	return &PriorityQueueSet{levels: levels}
}

// Enqueue appends p to level and records the level on the process.
// Panics on an out-of-range level or a process that is already queued.
func (qs *PriorityQueueSet) Enqueue(level int, p *Process) error {
	qs.checkLevel(level)
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	if p.State == StateQueued {
		panic(fmt.Sprintf("Enqueue: process %s is already queued at level %d", p.Name, p.CurrentQueue))
	}
	if err := qs.levels[level].Enqueue(p); err != nil {
		return fmt.Errorf("level %d: %w", level, err)
	}
	p.CurrentQueue = level
	p.State = StateQueued
	return nil
}

// Dequeue removes the head of level. Returns nil if the level is empty.
func (qs *PriorityQueueSet) Dequeue(level int) *Process {
	qs.checkLevel(level)
	p := qs.levels[level].Dequeue()
	if p != nil {
		p.State = StateRunning
	}
	return p
}

// IsEmpty reports whether level holds no process.
func (qs *PriorityQueueSet) IsEmpty(level int) bool {
	qs.checkLevel(level)
	return qs.levels[level].Len() == 0
}

// HighestNonEmpty scans from level 0 downwards and returns the first non-empty level.
// ok is false when every level is empty. There is no aging: a non-empty higher
// level always wins.
func (qs *PriorityQueueSet) HighestNonEmpty() (level int, ok bool) {
	for i, lq := range qs.levels {
		if lq.Len() > 0 {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of queued processes across all levels.
func (qs *PriorityQueueSet) Len() int {
	n := 0
	for _, lq := range qs.levels {
		n += lq.Len()
	}
	return n
}

func (qs *PriorityQueueSet) String() string {
	var sb strings.Builder
	for i, lq := range qs.levels {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "Q%d%s", i, lq)
	}
	return sb.String()
}

func (qs *PriorityQueueSet) checkLevel(level int) {
	if level < 0 || level >= len(qs.levels) {
		panic(fmt.Sprintf("queue level %d out of range [0, %d)", level, len(qs.levels)))
	}
}
