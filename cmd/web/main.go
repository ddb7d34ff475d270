package main

import (
	"gathero_backend/internal/app"
	"gathero_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err.Error())
	}
}
