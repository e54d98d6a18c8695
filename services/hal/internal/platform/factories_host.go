// services/hal/internal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"sync"

	"crossingcode-go/services/hal/internal/halcore"

	"tinygo.org/x/drivers"
)

// ----------------------------- I²C (host) ------------------------------------

// HostI2C implements tinygo drivers.I2C as a bank of register-file devices,
// enough to stand in for simple register-mapped parts such as GPIO expanders.
// A write's first byte selects the register; further bytes are stored at
// successive addresses. A read starts at the selected register.
type HostI2C struct {
	mu   sync.Mutex
	regs map[uint16]*[256]byte
	ptr  map[uint16]byte
	txs  int

	// Fail, when set, is returned from every Tx.
	Fail error
}

func NewHostI2C() *HostI2C {
	return &HostI2C{regs: map[uint16]*[256]byte{}, ptr: map[uint16]byte{}}
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.txs++
	if h.Fail != nil {
		return h.Fail
	}
	file, ok := h.regs[addr]
	if !ok {
		file = &[256]byte{}
		h.regs[addr] = file
	}
	if len(w) > 0 {
		p := w[0]
		for _, b := range w[1:] {
			file[p] = b
			p++
		}
		h.ptr[addr] = w[0]
	}
	p := h.ptr[addr]
	for i := range r {
		r[i] = file[p]
		p++
	}
	return nil
}

// Reg returns the stored value of register reg on device addr.
func (h *HostI2C) Reg(addr uint16, reg byte) byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	if file, ok := h.regs[addr]; ok {
		return file[reg]
	}
	return 0
}

// SetReg stores v into register reg on device addr, as the device itself would.
func (h *HostI2C) SetReg(addr uint16, reg, v byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	file, ok := h.regs[addr]
	if !ok {
		file = &[256]byte{}
		h.regs[addr] = file
	}
	file[reg] = v
}

// Txs counts transactions so far.
func (h *HostI2C) Txs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.txs
}

type hostI2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *hostI2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// DefaultI2CFactory creates inert host I²C buses "i2c0" and "i2c1".
func DefaultI2CFactory(halcore.I2CBusSetup) halcore.I2CBusFactory {
	return &hostI2CFactory{
		buses: map[string]drivers.I2C{
			"i2c0": NewHostI2C(),
			"i2c1": NewHostI2C(),
		},
	}
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin for host-side tests and the simulator.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
	writes  int
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	// Pulls set the idle level of an undriven input.
	p.level = pull == halcore.PullUp
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.writes++
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.writes++
	p.mu.Unlock()
}

func (p *FakePin) Number() int { return p.number }

// Drive sets the electrical level seen on an input, as external wiring would.
func (p *FakePin) Drive(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

// IsOutput reports whether the pin was last configured as an output.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Pull reports the pull last configured for an input.
func (p *FakePin) Pull() halcore.Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

// Writes counts Set and Toggle calls.
func (p *FakePin) Writes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.writes
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
	max  int
}

// NewHostPinFactory serves pins 0..max.
func NewHostPinFactory(max int) *HostPinFactory {
	return &HostPinFactory{pins: make(map[int]*FakePin), max: max}
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	p, ok := f.Get(n)
	if !ok {
		return nil, false
	}
	return p, true
}

// Get exposes the underlying *FakePin for tests and the simulator.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	if n < 0 || n > f.max {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

var (
	hostPinsOnce sync.Once
	hostPins     *HostPinFactory
)

// DefaultPinFactory provides the process-wide host GPIO factory (GP0..GP28,
// matching the Pico numbering).
func DefaultPinFactory() halcore.PinFactory { return HostPins() }

// HostPins returns the same factory as DefaultPinFactory, concretely typed.
func HostPins() *HostPinFactory {
	hostPinsOnce.Do(func() { hostPins = NewHostPinFactory(28) })
	return hostPins
}
