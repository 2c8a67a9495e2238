package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"soldown/config"
	"soldown/handlers"
	"soldown/services"
	"soldown/utils"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Create scratch directory for yt-dlp work dirs
	if err := os.MkdirAll(config.ScratchDir, 0755); err != nil {
		log.Fatalf("Failed to create scratch directory: %v", err)
	}

	// Start scratch sweep scheduler
	cleanupCron := utils.StartCleanupScheduler()
	defer cleanupCron.Stop()

	// Pick the extraction backend once for the process lifetime
	backend := services.SelectBackend()
	h := handlers.New(backend)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:       "SOLDOWN",
		ServerHeader:  "soldown",
		CaseSensitive: true,
		StrictRouting: false,
		// Disable body limit for file streaming
		BodyLimit: 0,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Accept",
	}))

	// API routes
	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Post("/analyze", h.Analyze)
	api.Post("/download", h.Download)

	// Static client + catch-all to the entry document
	app.Static("/", "./public")
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile("./public/index.html")
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down: %v\n", err)
		}
	}()

	// Start server, moving to the next port when the configured one is taken
	port := config.Port()
	for attempt := 0; ; attempt++ {
		addr := fmt.Sprintf(":%d", port)
		log.Printf("Starting server on http://localhost%s (backend: %s)\n", addr, backend.Name())

		err := app.Listen(addr)
		if err == nil {
			return
		}
		if attempt < config.PortRetries && errors.Is(err, syscall.EADDRINUSE) {
			log.Printf("Port %d in use, trying %d...\n", port, port+1)
			port++
			continue
		}
		log.Fatalf("Failed to start server: %v", err)
	}
}
