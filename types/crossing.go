package types

// ------------------------
// Crossing telemetry (bus payloads)
// ------------------------

// CrossingStatus is published retained on crossing/state.
type CrossingStatus struct {
	State      string `json:"state"`
	BlinkCount uint8  `json:"blink_count"`
	TSms       uint32 `json:"ts_ms"` // controller clock
}

// Transition is published on crossing/transition.
type Transition struct {
	From string `json:"from"`
	To   string `json:"to"`
	TSms uint32 `json:"ts_ms"`
}

// LampValue is published retained on crossing/lamp/<name>.
type LampValue struct {
	On bool `json:"on"`
}

// RequestEvent is published on crossing/request for each press edge.
type RequestEvent struct {
	TSms     uint32 `json:"ts_ms"`
	Accepted bool   `json:"accepted"`
}

// Beat is published on heartbeat.
type Beat struct {
	Seq    uint32 `json:"seq"`
	TSms   uint32 `json:"ts_ms"`
	Faults uint32 `json:"faults,omitempty"` // lamp/button I/O faults so far
}
