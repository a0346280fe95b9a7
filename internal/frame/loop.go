package frame

// Loop re-arms a tick on every frame while running. It is a two state
// machine, Stopped and Running; transitions are idempotent.
type Loop struct {
	sched   Scheduler
	tick    func()
	pending ID
	running bool
	ticks   uint64
}

func NewLoop(sched Scheduler, tick func()) *Loop {
	return &Loop{sched: sched, tick: tick}
}

// Start moves to Running and schedules one tick. Starting a running loop
// does nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.pending = l.sched.RequestFrame(l.fire)
}

// Stop moves to Stopped and cancels the pending tick.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	if l.pending != 0 {
		l.sched.CancelFrame(l.pending)
		l.pending = 0
	}
}

func (l *Loop) Running() bool { return l.running }

// Ticks reports how many ticks have run.
func (l *Loop) Ticks() uint64 { return l.ticks }

// SetHidden maps page visibility onto the state machine.
func (l *Loop) SetHidden(hidden bool) {
	if hidden {
		l.Stop()
	} else {
		l.Start()
	}
}

func (l *Loop) fire() {
	l.pending = 0
	if !l.running {
		return
	}
	l.ticks++
	if l.tick != nil {
		l.tick()
	}
	// tick may have stopped or restarted the loop
	if l.running && l.pending == 0 {
		l.pending = l.sched.RequestFrame(l.fire)
	}
}
