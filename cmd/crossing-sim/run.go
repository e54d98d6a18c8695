package main

import (
	"io"
	"os"

	"crossingcode-go/services/config"
	"crossingcode-go/x/logx"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a simulation script (stdin when no file is given).",
	Long: "Commands, one per line:\n" +
		"  press <1|2>          hold a button\n" +
		"  release <1|2>        let go of a button\n" +
		"  advance <ms> [step]  move the clock, stepping the loop every step ms\n" +
		"  tick                 run one loop iteration at the current time\n" +
		"  status               print the controller record and lamps\n" +
		"  expect <state>       fail unless the controller is in state\n" +
		"Text after # is a comment.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		cfg, err := config.Load(flagBoard)
		if err != nil {
			return err
		}
		sim, err := NewSim(cfg, cmd.OutOrStdout(), Options{
			StepMs:    flagStepMs,
			Heartbeat: flagHeartbeat,
		})
		if err != nil {
			return err
		}
		defer sim.Close()
		logx.Line("sim", "run", sim.ID(), "board", flagBoard, "step", flagStepMs)
		return sim.Run(in)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
