package crossing

// State is the crossing phase. The zero value is VehicleGo.
type State uint8

const (
	// VehicleGo holds the go lamp steady; requests are accepted here only.
	VehicleGo State = iota
	// VehicleWarning blinks the go lamp before stopping traffic.
	VehicleWarning
	// VehicleStop holds the stop lamp steady for the pedestrian dwell.
	VehicleStop
	// VehicleStopWarning blinks the stop lamp before traffic resumes.
	VehicleStopWarning
)

func (s State) String() string {
	switch s {
	case VehicleGo:
		return "vehicle_go"
	case VehicleWarning:
		return "vehicle_warning"
	case VehicleStop:
		return "vehicle_stop"
	case VehicleStopWarning:
		return "vehicle_stop_warning"
	default:
		return "unknown"
	}
}

// ParseState is the inverse of State.String.
func ParseState(s string) (State, bool) {
	switch s {
	case "vehicle_go":
		return VehicleGo, true
	case "vehicle_warning":
		return VehicleWarning, true
	case "vehicle_stop":
		return VehicleStop, true
	case "vehicle_stop_warning":
		return VehicleStopWarning, true
	default:
		return 0, false
	}
}

// Timing. These are fixed for the crossing cadence: 1 s warning, 3 s stop
// dwell, 1 s warning.
const (
	BlinkHalfPeriodMs uint32 = 200
	WarningToggles    uint8  = 5
	StopDwellMs       uint32 = 3000
)
