//go:build stm32_demo

package config

const DefaultBoard = "stm32_demo"
