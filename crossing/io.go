package crossing

// PinID names a logical input or output of the crossing. The hardware
// boundary maps each one to a physical pin.
type PinID uint8

const (
	PinButton1 PinID = iota
	PinButton2
	PinGoLamp
	PinStopLamp
)

func (p PinID) String() string {
	switch p {
	case PinButton1:
		return "button1"
	case PinButton2:
		return "button2"
	case PinGoLamp:
		return "go"
	case PinStopLamp:
		return "stop"
	default:
		return "pin?"
	}
}

// Clock is a monotonic millisecond tick source. The counter may wrap at
// 2^32; callers only ever compare readings by unsigned subtraction.
type Clock interface {
	NowMs() uint32
}

// Lamps drives the two lamp outputs. Levels are logical: true means lit.
type Lamps interface {
	Write(pin PinID, on bool)
	Toggle(pin PinID)
}

// DigitalIO is the full pin boundary used by the loop: button reads
// (true means pressed) plus the lamp outputs.
type DigitalIO interface {
	Lamps
	Read(pin PinID) bool
}
