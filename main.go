package main

import (
	"os"

	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
		os.Exit(1)
	}
}
