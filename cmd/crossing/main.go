package main

import (
	"context"
	"runtime"
	"time"

	"crossingcode-go/bus"
	"crossingcode-go/crossing"
	"crossingcode-go/services/config"
	"crossingcode-go/services/hal"
	"crossingcode-go/services/heartbeat"
	"crossingcode-go/services/monitor"
	"crossingcode-go/x/logx"
	"crossingcode-go/x/timex"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	ctx := context.Background()

	logx.Line("main", "bootstrapping bus, board", config.DefaultBoard)
	b := bus.NewBus(8)
	cfgConn := b.NewConnection("config")
	diagConn := b.NewConnection("diag")

	cfg, err := config.NewConfigService().Publish(cfgConn, config.DefaultBoard)
	if err != nil {
		halt("config", err)
	}

	if cfg.Console.UART != "" {
		w, err := hal.OpenConsole(cfg.Console)
		if err != nil {
			halt("console", err)
		}
		logx.SetOutput(w)
	}

	io, err := hal.Open(cfg.Crossing)
	if err != nil {
		halt("hal", err)
	}
	logx.Line("hal", "backend", cfg.Crossing.Backend,
		"go", io.Pin(crossing.PinGoLamp), "stop", io.Pin(crossing.PinStopLamp),
		"buttons", io.Pin(crossing.PinButton1), io.Pin(crossing.PinButton2))

	clock := timex.NewMonoClock()
	mon := monitor.New(diagConn, io, io)
	ctrl := crossing.New(io, crossing.WithObserver(mon.Observe))
	mon.Attach(ctrl, clock.NowMs())

	hb := heartbeat.New(diagConn, io.Faults)

	loop := crossing.NewLoop(clock, io, ctrl)
	loop.OnRequest(mon.Request)
	loop.AddHook(mon.Poll)
	loop.AddHook(hb.Poll)

	logMem()
	logx.Line("main", "control loop running")
	loop.Run(ctx)
}

// halt logs a bring-up failure and parks. There is nothing to fall back to
// without lamps.
func halt(op string, err error) {
	logx.Line("main", op, "failed:", err)
	for {
		time.Sleep(time.Second)
	}
}

// logMem logs a compact snapshot of TinyGo runtime memory stats.
func logMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	logx.Line("mem",
		"alloc:", ms.Alloc,
		"heapInuse:", ms.HeapInuse,
		"heapSys:", ms.HeapSys,
		"mallocs:", ms.Mallocs,
		"frees:", ms.Frees,
	)
}
