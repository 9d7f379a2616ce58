package field

// FrameID identifies a requested frame callback.
type FrameID uint64

// FrameScheduler is the host's redraw-synchronised callback primitive.
type FrameScheduler interface {
	RequestFrame(cb func()) FrameID
	CancelFrame(id FrameID)
}

type queuedFrame struct {
	id       FrameID
	cb       func()
	canceled bool
}

// FrameQueue is a FrameScheduler pumped by the host once per redraw.
// Callbacks requested while pumping run on the next Pump.
type FrameQueue struct {
	next    FrameID
	pending []*queuedFrame
	running []*queuedFrame
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(cb func()) FrameID {
	q.next++
	q.pending = append(q.pending, &queuedFrame{id: q.next, cb: cb})
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	for _, f := range q.running {
		if f.id == id {
			f.canceled = true
		}
	}
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pump runs every callback that was pending when it was called and returns
// how many ran.
func (q *FrameQueue) Pump() int {
	q.running, q.pending = q.pending, nil
	ran := 0
	for _, f := range q.running {
		if f.canceled {
			continue
		}
		f.cb()
		ran++
	}
	q.running = nil
	return ran
}

func (q *FrameQueue) Pending() int { return len(q.pending) }
