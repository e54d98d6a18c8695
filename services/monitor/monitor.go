// Package monitor mirrors the crossing controller onto the bus and the log.
//
// Publishing happens inside the controller's observer callback and the loop's
// request callback, so it must stay non-blocking; the bus guarantees that.
// Logging is deferred to Poll, which drains the monitor's own subscriptions
// once per loop iteration.
package monitor

import (
	"crossingcode-go/bus"
	"crossingcode-go/crossing"
	"crossingcode-go/types"
	"crossingcode-go/x/conv"
	"crossingcode-go/x/logx"
)

var (
	TopicState      = bus.T("crossing", "state")
	TopicTransition = bus.T("crossing", "transition")
	TopicRequest    = bus.T("crossing", "request")
	TopicLamp       = bus.T("crossing", "lamp")
)

// LampReader reads back logical lamp levels.
type LampReader interface {
	Read(crossing.PinID) bool
}

// FaultSource reports a running I/O fault count.
type FaultSource interface {
	Faults() uint32
}

type Monitor struct {
	conn   *bus.Connection
	lamps  LampReader
	faults FaultSource
	ctrl   *crossing.Controller

	transSub   *bus.Subscription
	requestSub *bus.Subscription
	lastFaults uint32
}

// New returns a monitor publishing on conn. faults may be nil.
func New(conn *bus.Connection, lamps LampReader, faults FaultSource) *Monitor {
	return &Monitor{
		conn:       conn,
		lamps:      lamps,
		faults:     faults,
		transSub:   conn.Subscribe(TopicTransition),
		requestSub: conn.Subscribe(TopicRequest),
	}
}

// Attach links the controller whose record is published with each state, and
// publishes the initial state.
func (m *Monitor) Attach(c *crossing.Controller, now uint32) {
	m.ctrl = c
	m.publishState(c.State(), now)
}

// Observe is a crossing.Observer.
func (m *Monitor) Observe(from, to crossing.State, now uint32) {
	m.conn.Publish(m.conn.NewMessage(TopicTransition, types.Transition{
		From: from.String(),
		To:   to.String(),
		TSms: now,
	}, false))
	m.publishState(to, now)
}

// Request is a crossing.RequestFunc.
func (m *Monitor) Request(now uint32, accepted bool) {
	m.conn.Publish(m.conn.NewMessage(TopicRequest, types.RequestEvent{TSms: now, Accepted: accepted}, false))
}

func (m *Monitor) publishState(st crossing.State, now uint32) {
	status := types.CrossingStatus{State: st.String(), TSms: now}
	if m.ctrl != nil {
		status.BlinkCount = m.ctrl.Snapshot().BlinkCount
	}
	m.conn.Publish(m.conn.NewMessage(TopicState, status, true))

	for _, id := range [...]crossing.PinID{crossing.PinGoLamp, crossing.PinStopLamp} {
		m.conn.Publish(m.conn.NewMessage(TopicLamp.Append(id.String()),
			types.LampValue{On: m.lamps.Read(id)}, true))
	}
}

// Poll logs queued transitions and requests, and any new I/O faults.
func (m *Monitor) Poll(now uint32) {
	for {
		msg, ok := m.transSub.TryRecv()
		if !ok {
			break
		}
		if tr, ok := msg.Payload.(types.Transition); ok {
			logx.Line("crossing", tr.From, "->", tr.To, "t="+conv.U32(tr.TSms))
		}
	}
	for {
		msg, ok := m.requestSub.TryRecv()
		if !ok {
			break
		}
		if ev, ok := msg.Payload.(types.RequestEvent); ok {
			if ev.Accepted {
				logx.Line("crossing", "request accepted", "t="+conv.U32(ev.TSms))
			} else {
				logx.Line("crossing", "request ignored", "t="+conv.U32(ev.TSms))
			}
		}
	}
	if m.faults != nil {
		if n := m.faults.Faults(); n != m.lastFaults {
			logx.Line("hal", "io faults", n, "t="+conv.U32(now))
			m.lastFaults = n
		}
	}
}

// Close drops the monitor's subscriptions.
func (m *Monitor) Close() {
	m.conn.Unsubscribe(m.transSub)
	m.conn.Unsubscribe(m.requestSub)
}
