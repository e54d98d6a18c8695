//go:build pico_expander && !stm32_demo

package config

const DefaultBoard = "pico_expander"
