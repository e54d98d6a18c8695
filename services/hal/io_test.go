package hal

import (
	"bytes"
	"strings"
	"testing"

	"crossingcode-go/crossing"
	"crossingcode-go/errcode"
	"crossingcode-go/services/hal/internal/platform"
	"crossingcode-go/types"
	"crossingcode-go/x/logx"
)

// stm32Wiring is the stm32_demo pin map: pull-down buttons, active-low lamps.
func stm32Wiring() types.CrossingConfig {
	return types.CrossingConfig{
		Buttons: []types.ButtonConfig{{Pin: 5, Pull: "down"}, {Pin: 6, Pull: "down"}},
		Lamps: types.LampsConfig{
			Go:   types.LampConfig{Pin: 12, ActiveLow: true},
			Stop: types.LampConfig{Pin: 13, ActiveLow: true},
		},
	}
}

func mustPin(t *testing.T, f *HostPinFactory, n int) *FakePin {
	t.Helper()
	p, ok := f.Get(n)
	if !ok {
		t.Fatalf("no fake pin %d", n)
	}
	return p
}

func TestOpenWith_ConfiguresDirectionsAndDarkLamps(t *testing.T) {
	pins := NewHostPins(28)
	io, err := OpenWith(pins, stm32Wiring())
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	defer io.Close()

	for _, n := range []int{5, 6} {
		p := mustPin(t, pins, n)
		if p.IsOutput() || p.Pull() != PullDown {
			t.Fatalf("button pin %d not a pulled-down input", n)
		}
	}
	for _, n := range []int{12, 13} {
		p := mustPin(t, pins, n)
		if !p.IsOutput() {
			t.Fatalf("lamp pin %d not an output", n)
		}
		if !p.Get() {
			t.Fatalf("active-low lamp pin %d should idle high (dark)", n)
		}
	}
	if io.Read(crossing.PinGoLamp) || io.Read(crossing.PinStopLamp) {
		t.Fatal("lamps should read dark after open")
	}
	if io.Pin(crossing.PinStopLamp) != 13 || io.Pin(crossing.PinButton2) != 6 {
		t.Fatal("Pin() mapping wrong")
	}
}

func TestIO_ActiveLowLampPolarity(t *testing.T) {
	pins := NewHostPins(28)
	io, err := OpenWith(pins, stm32Wiring())
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	goPin := mustPin(t, pins, 12)

	io.Write(crossing.PinGoLamp, true)
	if goPin.Get() {
		t.Fatal("lit active-low lamp should drive the line low")
	}
	if !io.Read(crossing.PinGoLamp) {
		t.Fatal("logical read should report lit")
	}
	io.Toggle(crossing.PinGoLamp)
	if !goPin.Get() || io.Read(crossing.PinGoLamp) {
		t.Fatal("toggle should darken the lamp")
	}

	// Writes to inputs are ignored.
	io.Write(crossing.PinButton1, true)
	if mustPin(t, pins, 5).Writes() != 0 {
		t.Fatal("write reached a button pin")
	}
}

func TestIO_ButtonPolarity(t *testing.T) {
	pins := NewHostPins(28)
	cfg := stm32Wiring()
	cfg.Buttons[1] = types.ButtonConfig{Pin: 6, Pull: "up", Invert: true}
	io, err := OpenWith(pins, cfg)
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	if io.Read(crossing.PinButton1) || io.Read(crossing.PinButton2) {
		t.Fatal("idle buttons should read released")
	}
	mustPin(t, pins, 5).Drive(true)
	if !io.Read(crossing.PinButton1) {
		t.Fatal("active-high button not pressed")
	}
	mustPin(t, pins, 6).Drive(false)
	if !io.Read(crossing.PinButton2) {
		t.Fatal("inverted button not pressed when low")
	}
}

func TestOpenWith_SingleButton(t *testing.T) {
	cfg := stm32Wiring()
	cfg.Buttons = cfg.Buttons[:1]
	io, err := OpenWith(NewHostPins(28), cfg)
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	if io.Read(crossing.PinButton2) || io.Pin(crossing.PinButton2) != -1 {
		t.Fatal("missing second button should read released and unbound")
	}
}

func TestOpenWith_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*types.CrossingConfig)
		want errcode.Code
	}{
		{"no buttons", func(c *types.CrossingConfig) { c.Buttons = nil }, errcode.InvalidParams},
		{"three buttons", func(c *types.CrossingConfig) {
			c.Buttons = append(c.Buttons, types.ButtonConfig{Pin: 7})
		}, errcode.InvalidParams},
		{"shared lamp pin", func(c *types.CrossingConfig) { c.Lamps.Stop.Pin = 12 }, errcode.PinInUse},
		{"button on lamp pin", func(c *types.CrossingConfig) { c.Buttons[0].Pin = 13 }, errcode.PinInUse},
		{"unknown pin", func(c *types.CrossingConfig) { c.Lamps.Go.Pin = 40 }, errcode.UnknownPin},
		{"bad pull", func(c *types.CrossingConfig) { c.Buttons[1].Pull = "sideways" }, errcode.InvalidParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := stm32Wiring()
			tc.mut(&cfg)
			_, err := OpenWith(NewHostPins(28), cfg)
			if errcode.Of(err) != tc.want {
				t.Fatalf("err = %v (%s), want %s", err, errcode.Of(err), tc.want)
			}
		})
	}
}

func TestOpenWith_ReleasesClaimsOnFailure(t *testing.T) {
	pins := NewHostPins(28)
	cfg := stm32Wiring()
	cfg.Lamps.Stop.Pin = 99
	if _, err := OpenWith(pins, cfg); err == nil {
		t.Fatal("expected failure")
	}
	// A fresh open on the same bank succeeds: claims are per IO, and the
	// failed one let go of its lines.
	if _, err := OpenWith(pins, stm32Wiring()); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestOpen_Backends(t *testing.T) {
	if _, err := Open(types.CrossingConfig{Backend: "can"}); errcode.Of(err) != errcode.UnknownBackend {
		t.Fatalf("unknown backend err = %v", err)
	}

	io, err := Open(stm32Wiring())
	if err != nil {
		t.Fatalf("Open gpio: %v", err)
	}
	io.Close()

	cfg := types.CrossingConfig{
		Backend: types.BackendMCP23017,
		Buttons: []types.ButtonConfig{{Pin: 8}, {Pin: 9}},
		Lamps: types.LampsConfig{
			Go:   types.LampConfig{Pin: 0},
			Stop: types.LampConfig{Pin: 1},
		},
	}
	xio, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open mcp23017: %v", err)
	}
	xio.Write(crossing.PinGoLamp, true)
	xio.Toggle(crossing.PinStopLamp)
	if xio.Faults() != 0 {
		t.Fatalf("faults on a healthy bus: %d", xio.Faults())
	}

	cfg.I2C.ID = "i2c7"
	if _, err := Open(cfg); errcode.Of(err) != errcode.UnknownBus {
		t.Fatalf("unknown bus err = %v", err)
	}
}

func TestRegisterBackend_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate backend")
		}
	}()
	RegisterBackend(types.BackendGPIO, BackendFunc(func(BackendInput) (PinFactory, error) { return nil, nil }))
}

func TestControllerCycleOnHostPins(t *testing.T) {
	pins := NewHostPins(28)
	io, err := OpenWith(pins, stm32Wiring())
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	c := crossing.New(io)
	goPin, stopPin := mustPin(t, pins, 12), mustPin(t, pins, 13)
	if goPin.Get() || !stopPin.Get() {
		t.Fatal("start-up: go lamp line low (lit), stop lamp line high (dark)")
	}

	mustPin(t, pins, 6).Drive(true)
	now := uint32(0)
	if io.Read(crossing.PinButton1) || io.Read(crossing.PinButton2) {
		c.RequestCrossing()
	}
	c.Tick(now)
	mustPin(t, pins, 6).Drive(false)
	for c.State() != crossing.VehicleStop {
		now += crossing.BlinkHalfPeriodMs
		c.Tick(now)
	}
	if !goPin.Get() || stopPin.Get() {
		t.Fatal("stop phase: go line high (dark), stop line low (lit)")
	}
}

func TestOpenWith_ExpanderButtonsPulledUp(t *testing.T) {
	i2c := platform.NewHostI2C()
	pins, err := platform.NewExpanderPinFactory(i2c, platform.DefaultExpanderAddr)
	if err != nil {
		t.Fatalf("NewExpanderPinFactory: %v", err)
	}
	cfg := types.CrossingConfig{
		Buttons: []types.ButtonConfig{
			{Pin: 8, Pull: "up", Invert: true},
			{Pin: 9, Pull: "up", Invert: true},
		},
		Lamps: types.LampsConfig{Go: types.LampConfig{Pin: 0}, Stop: types.LampConfig{Pin: 1}},
	}
	io, err := OpenWith(pins, cfg)
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	defer io.Close()

	const gppub, gpiob = 0x0D, 0x13
	if got := i2c.Reg(platform.DefaultExpanderAddr, gppub); got&0x03 != 0x03 {
		t.Fatalf("GPPUB = %#02x, want pull-ups on GPB0 and GPB1", got)
	}

	i2c.SetReg(platform.DefaultExpanderAddr, gpiob, 0x03)
	if io.Read(crossing.PinButton1) || io.Read(crossing.PinButton2) {
		t.Fatal("released buttons read pressed")
	}
	i2c.SetReg(platform.DefaultExpanderAddr, gpiob, 0x02) // GPB0 grounded
	if !io.Read(crossing.PinButton1) || io.Read(crossing.PinButton2) {
		t.Fatal("button 1 should read pressed, button 2 released")
	}

	cfg.Buttons[1].Pull = "down"
	if _, err := OpenWith(pins, cfg); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("pull-down on expander err = %v, want invalid_params", err)
	}
}

func TestOpen_ExpanderLogsAddress(t *testing.T) {
	var log bytes.Buffer
	logx.SetOutput(&log)
	defer logx.SetOutput(nil)

	cfg := types.CrossingConfig{
		Backend: types.BackendMCP23017,
		I2C:     types.I2CConfig{ID: "i2c1"},
		I2CAddr: 0x27,
		Buttons: []types.ButtonConfig{{Pin: 8, Pull: "up", Invert: true}},
		Lamps:   types.LampsConfig{Go: types.LampConfig{Pin: 0}, Stop: types.LampConfig{Pin: 1}},
	}
	io, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer io.Close()

	if want := "[hal] mcp23017 on i2c1 addr 0x27\n"; !strings.Contains(log.String(), want) {
		t.Fatalf("log = %q, want %q", log.String(), want)
	}
}
