package heartbeat

import (
	"crossingcode-go/bus"
	"crossingcode-go/types"
	"crossingcode-go/x/logx"
	"crossingcode-go/x/timex"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	TopicBeat            = bus.T("heartbeat")
)

const defaultIntervalMs uint32 = 1000

// Service emits a beat every interval. It owns no goroutine: the control loop
// calls Poll once per iteration.
type Service struct {
	conn     *bus.Connection
	cfgSub   *bus.Subscription
	faults   func() uint32
	interval uint32 // ms
	last     uint32
	seq      uint32
	started  bool
}

// New subscribes to config/heartbeat. faults may be nil.
func New(conn *bus.Connection, faults func() uint32) *Service {
	return &Service{
		conn:     conn,
		cfgSub:   conn.Subscribe(topicConfigHeartbeat),
		faults:   faults,
		interval: defaultIntervalMs,
	}
}

// IntervalMs reports the current beat interval.
func (s *Service) IntervalMs() uint32 { return s.interval }

// Poll applies pending config and publishes a beat if the interval has
// elapsed since the previous one. The first Poll always beats.
func (s *Service) Poll(now uint32) {
	for {
		msg, ok := s.cfgSub.TryRecv()
		if !ok {
			break
		}
		if hb, ok := msg.Payload.(types.HeartbeatConfig); ok && hb.Interval > 0 {
			s.interval = uint32(hb.Interval) * 1000
			logx.Line("heartbeat", "interval", hb.Interval, "s")
		}
	}

	if s.started && !timex.Elapsed(now, s.last, s.interval) {
		return
	}
	s.started = true
	s.last = now
	s.seq++

	beat := types.Beat{Seq: s.seq, TSms: now}
	if s.faults != nil {
		beat.Faults = s.faults()
	}
	s.conn.Publish(s.conn.NewMessage(TopicBeat, beat, false))
	logx.Line("heartbeat", "seq", beat.Seq, "t", now, "faults", beat.Faults)
}

// Stop drops the config subscription.
func (s *Service) Stop() {
	s.conn.Unsubscribe(s.cfgSub)
}
