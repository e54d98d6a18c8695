package config

import (
	"bytes"
	"encoding/json"

	"crossingcode-go/bus"
	"crossingcode-go/errcode"
	"crossingcode-go/types"
	"crossingcode-go/x/mathx"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"

	defaultHeartbeat = 2
	maxHeartbeat     = 3600
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

// Load decodes and validates the embedded configuration for board.
func Load(board string) (types.BoardConfig, error) {
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return types.BoardConfig{}, &errcode.E{C: errcode.NoConfig, Op: "load", Msg: board}
	}
	return Parse(raw)
}

// Parse decodes a board configuration. Unknown keys are rejected so that a
// misspelt pin setting cannot silently fall back to a default.
func Parse(raw []byte) (types.BoardConfig, error) {
	var cfg types.BoardConfig
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errcode.Wrap("parse", errcode.BadConfig, err)
	}
	normalise(&cfg)
	return cfg, nil
}

func normalise(cfg *types.BoardConfig) {
	if cfg.Crossing.Backend == "" {
		cfg.Crossing.Backend = types.BackendGPIO
	}
	if cfg.Heartbeat.Interval == 0 {
		cfg.Heartbeat.Interval = defaultHeartbeat
	}
	cfg.Heartbeat.Interval = mathx.Clamp(cfg.Heartbeat.Interval, 1, maxHeartbeat)
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// Publish loads the board configuration and publishes each section as a
// retained message on config/<section>. It runs synchronously: the firmware
// has no scheduler to hand it to before the control loop starts.
func (s *ConfigService) Publish(conn *bus.Connection, board string) (types.BoardConfig, error) {
	cfg, err := Load(board)
	if err != nil {
		return cfg, err
	}
	sections := []struct {
		key string
		val any
	}{
		{"crossing", cfg.Crossing},
		{"heartbeat", cfg.Heartbeat},
		{"console", cfg.Console},
	}
	for _, sec := range sections {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, sec.key), sec.val, true))
	}
	return cfg, nil
}
