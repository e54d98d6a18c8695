// cmd/boardtest/main.go
//
// Wiring check for a fresh board: steps each lamp on and off in turn and
// reports button edges, without running the crossing controller.
package main

import (
	"time"

	"crossingcode-go/crossing"
	"crossingcode-go/services/config"
	"crossingcode-go/services/hal"
	"crossingcode-go/x/logx"
)

// ---------- Configuration ----------

const (
	stepDelay = 300 * time.Millisecond
	dwell     = 2 * time.Second
	pollEvery = 10 * time.Millisecond

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

var lampSeq = []crossing.PinID{crossing.PinGoLamp, crossing.PinStopLamp}

var buttons = []crossing.PinID{crossing.PinButton1, crossing.PinButton2}

func main() {
	time.Sleep(2 * time.Second)

	cfg, err := config.Load(config.DefaultBoard)
	if err != nil {
		logx.Line("boardtest", "config:", err)
		return
	}
	if cfg.Console.UART != "" {
		if w, err := hal.OpenConsole(cfg.Console); err == nil {
			logx.SetOutput(w)
		}
	}
	io, err := hal.Open(cfg.Crossing)
	if err != nil {
		logx.Line("boardtest", "hal:", err)
		return
	}
	defer io.Close()
	logx.Line("boardtest", "board", config.DefaultBoard, "backend", cfg.Crossing.Backend)

	var last [2]bool
	// wait polls the buttons for d, logging every change.
	wait := func(d time.Duration) {
		for end := time.Now().Add(d); time.Now().Before(end); {
			for i, b := range buttons {
				if v := io.Read(b); v != last[i] {
					last[i] = v
					logx.Line("boardtest", b, "pin", io.Pin(b), "pressed", v)
				}
			}
			time.Sleep(pollEvery)
		}
	}

	for cycle := 1; cyclesToRun == 0 || cycle <= cyclesToRun; cycle++ {
		logx.Line("boardtest", "cycle", cycle)
		for _, lamp := range lampSeq {
			io.Write(lamp, true)
			logx.Line("boardtest", lamp, "pin", io.Pin(lamp), "on")
			wait(dwell)
			io.Write(lamp, false)
			wait(stepDelay)
		}
		// Blink both at the warning half-period to check toggling.
		for i := 0; i < int(crossing.WarningToggles)*2; i++ {
			for _, lamp := range lampSeq {
				io.Toggle(lamp)
			}
			wait(time.Duration(crossing.BlinkHalfPeriodMs) * time.Millisecond)
		}
		for _, lamp := range lampSeq {
			io.Write(lamp, false)
		}
		if n := io.Faults(); n > 0 {
			logx.Line("boardtest", "io faults", n)
		}
		wait(dwell)
	}
}
