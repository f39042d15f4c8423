package main

import (
	"context"
	"log"

	"appraisal/internal/app/server"
	"appraisal/internal/platform/config"
)

func main() {
	app, err := server.New(context.Background(), config.Load())
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
