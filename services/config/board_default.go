//go:build !stm32_demo && !pico_expander

package config

// DefaultBoard is the embedded configuration the firmware boots with.
const DefaultBoard = "pico"
