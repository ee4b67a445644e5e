package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lcamargo/catalog-backend/internal/app"
)

func main() {
	// Missing .env is fine in containerized deploys; env comes from the
	// runtime there.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		a.Log.Error("HTTP server exited", "error", err)
		os.Exit(1)
	}
}
