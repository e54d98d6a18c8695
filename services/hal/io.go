package hal

import (
	"crossingcode-go/crossing"
	"crossingcode-go/errcode"
	"crossingcode-go/services/hal/internal/halcore"
	"crossingcode-go/types"
)

// binding ties a logical crossing pin to a claimed GPIO line.
type binding struct {
	id     crossing.PinID
	num    int
	pin    GPIOPin
	invert bool // logical level is the inverse of the electrical level
}

func (b *binding) logical() bool {
	if b.pin == nil {
		return false
	}
	return b.pin.Get() != b.invert
}

func (b *binding) set(on bool) {
	if b.pin != nil {
		b.pin.Set(on != b.invert)
	}
}

// IO implements crossing.DigitalIO over claimed GPIO lines, applying each
// line's polarity so the controller only ever sees logical levels.
type IO struct {
	cl      *claims
	buttons [2]binding
	lamps   [2]binding // go, stop
}

var _ crossing.DigitalIO = (*IO)(nil)

// Open resolves the configured backend and binds the crossing pins on it.
func Open(cfg types.CrossingConfig) (*IO, error) {
	name := cfg.Backend
	if name == "" {
		name = types.BackendGPIO
	}
	b, ok := findBackend(name)
	if !ok {
		return nil, errcode.Wrap("open "+name, errcode.UnknownBackend, nil)
	}
	pins, err := b.Pins(BackendInput{Config: cfg})
	if err != nil {
		return nil, err
	}
	return OpenWith(pins, cfg)
}

// OpenWith binds the crossing pins on an explicit factory. Buttons are
// configured as inputs with their pulls; lamps as outputs, initially dark.
func OpenWith(pins PinFactory, cfg types.CrossingConfig) (*IO, error) {
	if n := len(cfg.Buttons); n == 0 || n > 2 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "open", Msg: "need one or two buttons"}
	}
	io := &IO{cl: newClaims(pins)}

	for i, bc := range cfg.Buttons {
		id := crossing.PinButton1 + crossing.PinID(i)
		pull, ok := parsePull(bc.Pull)
		if !ok {
			io.Close()
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "open " + id.String(), Msg: "pull " + bc.Pull}
		}
		p, err := io.cl.claim(id.String(), bc.Pin)
		if err != nil {
			io.Close()
			return nil, err
		}
		if err := p.ConfigureInput(pull); err != nil {
			io.cl.release(id.String(), bc.Pin)
			io.Close()
			return nil, errcode.Wrap("configure "+id.String(), errcode.Of(err), err)
		}
		io.buttons[i] = binding{id: id, num: bc.Pin, pin: p, invert: bc.Invert}
	}

	lamps := [2]types.LampConfig{cfg.Lamps.Go, cfg.Lamps.Stop}
	for i, lc := range lamps {
		id := crossing.PinGoLamp + crossing.PinID(i)
		p, err := io.cl.claim(id.String(), lc.Pin)
		if err != nil {
			io.Close()
			return nil, err
		}
		// Dark until the controller takes over: electrical high when active-low.
		if err := p.ConfigureOutput(lc.ActiveLow); err != nil {
			io.cl.release(id.String(), lc.Pin)
			io.Close()
			return nil, errcode.Wrap("configure "+id.String(), errcode.Of(err), err)
		}
		io.lamps[i] = binding{id: id, num: lc.Pin, pin: p, invert: lc.ActiveLow}
	}
	return io, nil
}

func (io *IO) lamp(pin crossing.PinID) *binding {
	switch pin {
	case crossing.PinGoLamp:
		return &io.lamps[0]
	case crossing.PinStopLamp:
		return &io.lamps[1]
	}
	return nil
}

// Read returns the logical level of pin: pressed for buttons, lit for lamps.
func (io *IO) Read(pin crossing.PinID) bool {
	switch pin {
	case crossing.PinButton1:
		return io.buttons[0].logical()
	case crossing.PinButton2:
		return io.buttons[1].logical()
	}
	if b := io.lamp(pin); b != nil {
		return b.logical()
	}
	return false
}

// Write lights (on) or darkens a lamp. Writes to inputs are ignored.
func (io *IO) Write(pin crossing.PinID, on bool) {
	if b := io.lamp(pin); b != nil {
		b.set(on)
	}
}

// Toggle inverts a lamp. Polarity does not matter for a toggle.
func (io *IO) Toggle(pin crossing.PinID) {
	if b := io.lamp(pin); b != nil && b.pin != nil {
		b.pin.Toggle()
	}
}

// Faults sums failures reported by lines that can fail out of band.
func (io *IO) Faults() uint32 {
	var n uint32
	for _, set := range [][2]binding{io.buttons, io.lamps} {
		for _, b := range set {
			if fc, ok := b.pin.(halcore.FaultCounter); ok {
				n += fc.Faults()
			}
		}
	}
	return n
}

// Pin reports the physical pin number bound to a logical pin, or -1.
func (io *IO) Pin(pin crossing.PinID) int {
	switch pin {
	case crossing.PinButton1:
		if io.buttons[0].pin != nil {
			return io.buttons[0].num
		}
	case crossing.PinButton2:
		if io.buttons[1].pin != nil {
			return io.buttons[1].num
		}
	default:
		if b := io.lamp(pin); b != nil && b.pin != nil {
			return b.num
		}
	}
	return -1
}

// Close releases every claimed line. Lamps are left as they are.
func (io *IO) Close() {
	for _, set := range [][2]binding{io.buttons, io.lamps} {
		for _, b := range set {
			if b.pin != nil {
				io.cl.release(b.id.String(), b.num)
			}
		}
	}
}
