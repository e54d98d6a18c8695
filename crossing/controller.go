// Package crossing implements the pedestrian crossing controller: a timed,
// non-blocking state machine over two lamps and a latched crossing request.
//
// The controller owns its whole state record. It is driven by calling Tick
// with the current millisecond clock reading, as often as possible and well
// inside the 200 ms blink half-period. Nothing here blocks or fails; when a
// time or count condition is unmet a call simply does nothing.
package crossing

import "crossingcode-go/x/timex"

// Observer is called synchronously after every state change. It must not block.
type Observer func(from, to State, now uint32)

type Option func(*Controller)

// WithObserver registers fn to be told about state changes.
func WithObserver(fn Observer) Option {
	return func(c *Controller) { c.obs = fn }
}

// Snapshot is a copy of the controller record.
type Snapshot struct {
	State           State
	BlinkCount      uint8
	LastBlink       uint32
	LastStateChange uint32
	Requested       bool
}

type Controller struct {
	lamps Lamps
	obs   Observer

	state           State
	blinkCount      uint8
	lastBlink       uint32
	lastStateChange uint32
	requested       bool
}

// New creates a controller in VehicleGo and drives the lamps to match:
// go lamp lit, stop lamp dark.
func New(lamps Lamps, opts ...Option) *Controller {
	c := &Controller{lamps: lamps, state: VehicleGo}
	for _, o := range opts {
		o(c)
	}
	c.lamps.Write(PinGoLamp, true)
	c.lamps.Write(PinStopLamp, false)
	return c
}

// RequestCrossing latches a pedestrian request. It has an effect only in
// VehicleGo; a press seen in any other state is dropped, not queued.
func (c *Controller) RequestCrossing() {
	if c.state == VehicleGo {
		c.requested = true
	}
}

// Tick runs one step of the state machine at clock reading now.
func (c *Controller) Tick(now uint32) {
	switch c.state {
	case VehicleGo:
		if !c.requested {
			return
		}
		c.requested = false
		c.blinkCount = 0
		c.lastBlink = now
		c.enter(VehicleWarning, now)

	case VehicleWarning:
		if !c.blink(PinGoLamp, now) {
			return
		}
		c.lamps.Write(PinGoLamp, false)
		c.lamps.Write(PinStopLamp, true)
		c.lastStateChange = now
		c.enter(VehicleStop, now)

	case VehicleStop:
		if !timex.Elapsed(now, c.lastStateChange, StopDwellMs) {
			return
		}
		c.blinkCount = 0
		c.lastBlink = now
		c.enter(VehicleStopWarning, now)

	case VehicleStopWarning:
		if !c.blink(PinStopLamp, now) {
			return
		}
		c.lamps.Write(PinStopLamp, false)
		c.lamps.Write(PinGoLamp, true)
		c.enter(VehicleGo, now)
	}
}

// blink toggles lamp once per half-period and reports whether the phase has
// completed its toggles. The count is checked after the toggle.
func (c *Controller) blink(lamp PinID, now uint32) bool {
	if !timex.Elapsed(now, c.lastBlink, BlinkHalfPeriodMs) {
		return false
	}
	c.lamps.Toggle(lamp)
	c.lastBlink = now
	c.blinkCount++
	return c.blinkCount >= WarningToggles
}

func (c *Controller) enter(next State, now uint32) {
	prev := c.state
	c.state = next
	if c.obs != nil {
		c.obs(prev, next, now)
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:           c.state,
		BlinkCount:      c.blinkCount,
		LastBlink:       c.lastBlink,
		LastStateChange: c.lastStateChange,
		Requested:       c.requested,
	}
}
