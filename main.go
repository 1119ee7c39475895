package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"productsapi/internal/config"
)

func main() {
	// --- Configuration ---
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Wire repositories, services and handlers ---
	srv, err := newServer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer func() {
		if err := srv.close(); err != nil {
			log.Printf("Error releasing resources: %v", err)
		}
	}()

	// Only the page size cap is hot-reloadable; everything else needs a restart.
	if loader.Watch(func(next config.Config) {
		srv.productHandler.SetMaxPageSize(next.Pagination.MaxSize)
		log.Printf("Applied pagination.max_size=%d", next.Pagination.MaxSize)
	}) {
		log.Println("Watching config file for changes")
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s (database: %s, events: %s)", cfg.App.Port, cfg.Database.Driver, cfg.Events.Driver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.app.Listen(cfg.App.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := srv.app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
