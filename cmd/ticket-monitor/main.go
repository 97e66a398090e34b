package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"ticket-monitor-go/internal/app"
)

func main() {
	_ = godotenv.Load()

	if err := app.Run(); err != nil {
		logrus.Fatalf("Application failed: %v", err)
	}
}
