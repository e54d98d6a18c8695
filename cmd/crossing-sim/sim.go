package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"crossingcode-go/bus"
	"crossingcode-go/crossing"
	"crossingcode-go/services/hal"
	"crossingcode-go/services/heartbeat"
	"crossingcode-go/services/monitor"
	"crossingcode-go/types"
	"crossingcode-go/x/logx"
	"crossingcode-go/x/timex"

	"github.com/google/shlex"
	"github.com/rs/xid"
)

type Options struct {
	StepMs    uint32
	StartMs   uint32
	Heartbeat bool
}

// Sim wires a controller to private fake pins and a manual clock.
type Sim struct {
	id    string
	out   io.Writer
	step  uint32
	clock *timex.ManualClock
	pins  *hal.HostPinFactory
	io    *hal.IO
	ctrl  *crossing.Controller
	loop  *crossing.Loop
	mon   *monitor.Monitor
	hb    *heartbeat.Service

	buttons []types.ButtonConfig
}

// NewSim binds cfg's pins on a fresh fake bank. Log lines from the monitor
// (and heartbeat, if enabled) go to out.
func NewSim(cfg types.BoardConfig, out io.Writer, opts Options) (*Sim, error) {
	if opts.StepMs == 0 {
		opts.StepMs = defaultStepMs
	}
	logx.SetOutput(out)

	pins := hal.NewHostPins(28)
	dio, err := hal.OpenWith(pins, cfg.Crossing)
	if err != nil {
		return nil, err
	}

	b := bus.NewBus(32)
	conn := b.NewConnection("sim")
	conn.Publish(conn.NewMessage(bus.T("config", "heartbeat"), cfg.Heartbeat, true))

	s := &Sim{
		id:      xid.New().String(),
		out:     out,
		step:    opts.StepMs,
		clock:   timex.NewManualClock(opts.StartMs),
		pins:    pins,
		io:      dio,
		buttons: cfg.Crossing.Buttons,
	}
	s.mon = monitor.New(conn, dio, dio)
	s.ctrl = crossing.New(dio, crossing.WithObserver(s.mon.Observe))
	s.mon.Attach(s.ctrl, s.clock.NowMs())

	s.loop = crossing.NewLoop(s.clock, dio, s.ctrl)
	s.loop.OnRequest(s.mon.Request)
	s.loop.AddHook(s.mon.Poll)
	if opts.Heartbeat {
		s.hb = heartbeat.New(conn, dio.Faults)
		s.loop.AddHook(s.hb.Poll)
	}
	return s, nil
}

func (s *Sim) Close() {
	s.mon.Close()
	if s.hb != nil {
		s.hb.Stop()
	}
	s.io.Close()
}

// ID tags this run in captured logs.
func (s *Sim) ID() string { return s.id }

// Controller exposes the simulated controller.
func (s *Sim) Controller() *crossing.Controller { return s.ctrl }

// NowMs reports the virtual clock.
func (s *Sim) NowMs() uint32 { return s.clock.NowMs() }

// Run executes script lines until EOF or the first failing line.
func (s *Sim) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := s.Exec(sc.Text()); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

// Exec runs one script command. Blank and comment-only lines do nothing.
func (s *Sim) Exec(text string) error {
	args, err := shlex.Split(text)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "press", "release":
		if len(rest) != 1 {
			return fmt.Errorf("%s: want a button number", cmd)
		}
		return s.setButton(rest[0], cmd == "press")

	case "advance":
		if len(rest) < 1 || len(rest) > 2 {
			return fmt.Errorf("advance: want <ms> [step]")
		}
		ms, err := parseMs(rest[0])
		if err != nil {
			return err
		}
		step := s.step
		if len(rest) == 2 {
			if step, err = parseMs(rest[1]); err != nil {
				return err
			}
			if step == 0 {
				return fmt.Errorf("advance: step must be positive")
			}
		}
		s.Advance(ms, step)
		return nil

	case "tick":
		s.loop.Step()
		return nil

	case "status":
		s.printStatus()
		return nil

	case "expect":
		if len(rest) != 1 {
			return fmt.Errorf("expect: want a state name")
		}
		want, ok := crossing.ParseState(rest[0])
		if !ok {
			return fmt.Errorf("expect: unknown state %q", rest[0])
		}
		if got := s.ctrl.State(); got != want {
			return fmt.Errorf("expected %s, controller is in %s at t=%d", want, got, s.clock.NowMs())
		}
		return nil
	}
	return fmt.Errorf("unknown command %q", args[0])
}

// Advance moves the clock forward by ms, running the loop after every step
// and once more at the end if ms is not a multiple of step.
func (s *Sim) Advance(ms, step uint32) {
	for ms > 0 {
		d := min(step, ms)
		s.clock.Advance(d)
		ms -= d
		s.loop.Step()
	}
}

func (s *Sim) setButton(arg string, pressed bool) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.buttons) {
		return fmt.Errorf("no button %q (board has %d)", arg, len(s.buttons))
	}
	bc := s.buttons[n-1]
	p, ok := s.pins.Get(bc.Pin)
	if !ok {
		return fmt.Errorf("button %d: pin %d not on the fake bank", n, bc.Pin)
	}
	// Electrical level: pressed is high unless the button is inverted.
	p.Drive(pressed != bc.Invert)
	return nil
}

func (s *Sim) printStatus() {
	snap := s.ctrl.Snapshot()
	fmt.Fprintf(s.out, "t=%d state=%s blink=%d requested=%t go=%s stop=%s\n",
		s.clock.NowMs(), snap.State, snap.BlinkCount, snap.Requested,
		onOff(s.io.Read(crossing.PinGoLamp)), onOff(s.io.Read(crossing.PinStopLamp)))
}

func parseMs(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad duration %q", s)
	}
	return uint32(v), nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
