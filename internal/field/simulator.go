package field

// Simulator drives a Field from a host's frame scheduler and draws it to a
// surface. Pointer input and frame callbacks must arrive on one goroutine.
type Simulator struct {
	field     *Field
	surface   Surface
	sched     FrameScheduler
	observers []Observer

	pending    FrameID
	hasPending bool
	alive      bool
	gen        uint64

	rendered int
	skipped  int
}

func NewSimulator(surface Surface, sched FrameScheduler, rng Random, params Params) *Simulator {
	return &Simulator{
		field:     NewField(params, rng),
		surface:   surface,
		sched:     sched,
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Field() *Field       { return s.field }
func (s *Simulator) Surface() Surface    { return s.surface }
func (s *Simulator) Running() bool       { return s.alive }
func (s *Simulator) FramesRendered() int { return s.rendered }
func (s *Simulator) FramesSkipped() int  { return s.skipped }

// Start sizes the surface, seeds the initial particles and requests the
// first frame. On a running simulator it only resizes.
func (s *Simulator) Start(width, height int) {
	if s.alive {
		s.Resize(width, height)
		return
	}
	s.alive = true
	s.gen++
	s.Resize(width, height)
	s.field.Seed()
	s.request()
}

// Resize changes the surface and field bounds without touching particles.
func (s *Simulator) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if s.surface != nil {
		s.surface.Resize(width, height)
	}
	s.field.SetBounds(float64(width), float64(height))
}

// Stop cancels the pending frame, releases the surface and drops all
// particles. Safe to call more than once.
func (s *Simulator) Stop() {
	if !s.alive {
		return
	}
	s.alive = false
	s.gen++
	if s.hasPending {
		s.sched.CancelFrame(s.pending)
		s.hasPending = false
	}
	if s.surface != nil {
		s.surface.Release()
	}
	s.field.Clear()
}

// Restart stops and starts again with a fresh seed population.
func (s *Simulator) Restart(width, height int) {
	s.Stop()
	s.Start(width, height)
}

// PointerMove is ignored unless the simulator is running.
func (s *Simulator) PointerMove(x, y float64) {
	if !s.alive {
		return
	}
	s.field.PointerMove(x, y)
}

// PointerClick is ignored unless the simulator is running.
func (s *Simulator) PointerClick(x, y float64) {
	if !s.alive {
		return
	}
	s.field.PointerClick(x, y)
}

func (s *Simulator) request() {
	gen := s.gen
	s.pending = s.sched.RequestFrame(func() { s.frame(gen) })
	s.hasPending = true
}

func (s *Simulator) frame(gen uint64) {
	if !s.alive || gen != s.gen {
		return
	}
	s.hasPending = false

	if s.surfaceReady() {
		s.field.Step()
		s.field.Render(s.surface)
		for _, o := range s.observers {
			o.OnFrame(s.field)
		}
		s.rendered++
	} else {
		s.skipped++
	}

	s.request()
}

func (s *Simulator) surfaceReady() bool {
	if s.surface == nil {
		return false
	}
	w, h := s.surface.Size()
	return w > 0 && h > 0
}
