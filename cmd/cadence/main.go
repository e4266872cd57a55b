package main

import (
	"cadence/cmd/handlers"
	"cadence/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}
