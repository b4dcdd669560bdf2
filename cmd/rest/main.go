package main

import (
	"context"
	"log"

	"robotics-tutor-be/internal/bootstrap"
	"robotics-tutor-be/internal/config"
	"robotics-tutor-be/internal/server"
	"robotics-tutor-be/internal/tracer"
	"robotics-tutor-be/pkg/database"
)

func main() {
	// Tracing is a no-op unless OTEL_ENABLED=true.
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// The usage consumer drains the in-process event topic for the
	// lifetime of the server.
	go func() {
		log.Println("Background: Starting Usage Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
