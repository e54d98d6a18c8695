// services/hal/registry.go
package hal

import (
	"sync"

	"crossingcode-go/errcode"
	"crossingcode-go/types"
)

// BackendInput is handed to a backend when the crossing pins are opened.
type BackendInput struct {
	Config types.CrossingConfig
}

// Backend turns a crossing configuration into a pin factory. Backends are
// selected by CrossingConfig.Backend.
type Backend interface {
	Pins(in BackendInput) (PinFactory, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(in BackendInput) (PinFactory, error)

func (f BackendFunc) Pins(in BackendInput) (PinFactory, error) { return f(in) }

var (
	muBackends sync.RWMutex
	backends   = map[string]Backend{}
)

// RegisterBackend installs a backend under name.
// It panics on duplicate registration to catch mistakes at start-up.
func RegisterBackend(name string, b Backend) {
	muBackends.Lock()
	defer muBackends.Unlock()
	if name == "" {
		panic("hal: empty backend name")
	}
	if _, exists := backends[name]; exists {
		panic("hal: backend already registered: " + name)
	}
	backends[name] = b
}

func findBackend(name string) (Backend, bool) {
	muBackends.RLock()
	defer muBackends.RUnlock()
	b, ok := backends[name]
	return b, ok
}

// ---- pin claims ----

// claims records which logical owner holds each pin number so that two
// bindings can never drive the same line.
type claims struct {
	mu    sync.Mutex
	pins  PinFactory
	owner map[int]string
}

func newClaims(pins PinFactory) *claims {
	return &claims{pins: pins, owner: map[int]string{}}
}

func (c *claims) claim(owner string, n int) (GPIOPin, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, taken := c.owner[n]; taken {
		return nil, &errcode.E{C: errcode.PinInUse, Op: "claim " + owner, Msg: "held by " + cur}
	}
	p, ok := c.pins.ByNumber(n)
	if !ok {
		return nil, errcode.Wrap("claim "+owner, errcode.UnknownPin, nil)
	}
	c.owner[n] = owner
	return p, nil
}

func (c *claims) release(owner string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner[n] == owner {
		delete(c.owner, n)
	}
}
