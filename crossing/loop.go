package crossing

import "context"

// Hook runs once per loop iteration after the controller has ticked.
// Hooks must not block.
type Hook func(now uint32)

// RequestFunc is told about each press edge (either button going from
// released to pressed) and whether the controller latched it.
type RequestFunc func(now uint32, accepted bool)

// Loop is the polled control loop: clock, buttons, request, tick.
type Loop struct {
	clock Clock
	io    DigitalIO
	ctrl  *Controller

	hooks     []Hook
	onRequest RequestFunc
	pressed   bool
}

func NewLoop(clock Clock, io DigitalIO, ctrl *Controller) *Loop {
	return &Loop{clock: clock, io: io, ctrl: ctrl}
}

// AddHook appends h to the per-iteration hooks.
func (l *Loop) AddHook(h Hook) { l.hooks = append(l.hooks, h) }

// OnRequest registers fn for press edges.
func (l *Loop) OnRequest(fn RequestFunc) { l.onRequest = fn }

// Step runs one iteration and returns the clock reading it used. A button
// held during this step affects this step's transition decision.
func (l *Loop) Step() uint32 {
	now := l.clock.NowMs()

	pressed := l.io.Read(PinButton1) || l.io.Read(PinButton2)
	if pressed {
		l.ctrl.RequestCrossing()
	}
	if pressed && !l.pressed && l.onRequest != nil {
		l.onRequest(now, l.ctrl.Snapshot().Requested)
	}
	l.pressed = pressed

	l.ctrl.Tick(now)

	for _, h := range l.hooks {
		h(now)
	}
	return now
}

// Run steps until ctx is cancelled. The context is checked without blocking,
// so on firmware with a background context the loop never yields.
func (l *Loop) Run(ctx context.Context) {
	done := ctx.Done()
	for {
		select {
		case <-done:
			return
		default:
		}
		l.Step()
	}
}
