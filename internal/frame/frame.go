package frame

// ID identifies a requested frame callback. Zero is never issued.
type ID uint64

// Scheduler runs a callback on the next display frame.
type Scheduler interface {
	RequestFrame(fn func()) ID
	CancelFrame(id ID)
}

type request struct {
	id ID
	fn func()
}

// Queue is a Scheduler driven by hand: the host calls Flush once per
// display refresh. Callbacks requested from inside a Flush run on the next one.
type Queue struct {
	next     ID
	pending  []*request
	inflight []*request
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) RequestFrame(fn func()) ID {
	q.next++
	q.pending = append(q.pending, &request{id: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a pending callback. Cancelling an unknown or already
// fired ID does nothing.
func (q *Queue) CancelFrame(id ID) {
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for _, r := range q.inflight {
		if r.id == id {
			r.fn = nil
			return
		}
	}
}

// queued reports how many callbacks are waiting for the next frame.
func (q *Queue) queued() int { return len(q.pending) }

// Flush runs every callback queued before the call and returns how many ran.
func (q *Queue) Flush() int {
	q.inflight = q.pending
	q.pending = nil
	defer func() { q.inflight = nil }()

	ran := 0
	for _, r := range q.inflight {
		if r.fn == nil {
			continue
		}
		fn := r.fn
		r.fn = nil
		fn()
		ran++
	}
	return ran
}
