package main

import (
	"log"

	"quay/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ quay failed to start: %v", err)
	}
}
