package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"crossingcode-go/services/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envStepMs     = "CROSSING_SIM_STEP_MS"
	defaultStepMs = 10
)

var (
	flagEnvFile   string
	flagBoard     string
	flagStepMs    uint32
	flagHeartbeat bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crossing-sim",
	Short: "Simulate the pedestrian crossing controller on the host.",
	Long: `crossing-sim runs the crossing controller against fake pins and a ` +
		`virtual millisecond clock, driven by a script of press, release, ` +
		`advance and expect commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if !cmd.Flags().Changed("step") {
			flagStepMs = stepFromEnv()
		}
		return nil
	},
}

// stepFromEnv reads the default advance step, falling back when unset or
// not a positive integer.
func stepFromEnv() uint32 {
	v, err := strconv.ParseUint(os.Getenv(envStepMs), 10, 32)
	if err != nil || v == 0 {
		return defaultStepMs
	}
	return uint32(v)
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagEnvFile, "env-file", ".env", "dotenv file with simulator defaults")
	pf.StringVar(&flagBoard, "board", config.DefaultBoard, "embedded board configuration to wire")
	pf.Uint32Var(&flagStepMs, "step", defaultStepMs, "default advance step in ms (env "+envStepMs+")")
	pf.BoolVar(&flagHeartbeat, "heartbeat", false, "emit heartbeat lines on the virtual clock")
}
