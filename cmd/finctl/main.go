package main

import (
	"finpulse/internal/adapters/cli"
	"finpulse/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	_ = logger.Setup(logger.DefaultConfig())
	cli.Execute()
}
