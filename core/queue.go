package core

const (
	defaultBacklogCap   = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// Backlog is the FIFO sequence of pending tasks awaiting the drain loop.
// Insertion order is execution order; entries are never reordered or skipped.
//
// Backlog is not safe for concurrent use on its own. The Executor owns one and
// guards every access with its mutex so that the append-and-maybe-start-drain
// sequence stays atomic as a whole.
type Backlog struct {
	tasks []Task
}

func NewBacklog() *Backlog {
	return &Backlog{
		tasks: make([]Task, 0, defaultBacklogCap),
	}
}

func (b *Backlog) Push(t Task) {
	b.tasks = append(b.tasks, t)
}

func (b *Backlog) Pop() (Task, bool) {
	if len(b.tasks) == 0 {
		return nil, false
	}

	task := b.tasks[0]
	// Zero out the element in the underlying array to prevent memory leak
	b.tasks[0] = nil
	b.tasks = b.tasks[1:]
	b.maybeCompact()

	return task, true
}

// maybeCompact reallocates the backing array once the live window has shrunk
// well below capacity, so a long burst does not pin memory forever.
func (b *Backlog) maybeCompact() {
	n := len(b.tasks)
	c := cap(b.tasks)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		b.tasks = make([]Task, 0, defaultBacklogCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultBacklogCap), n)

	newSlice := make([]Task, n, newCap)
	copy(newSlice, b.tasks)
	b.tasks = newSlice
}

func (b *Backlog) Len() int {
	return len(b.tasks)
}

func (b *Backlog) IsEmpty() bool {
	return len(b.tasks) == 0
}
