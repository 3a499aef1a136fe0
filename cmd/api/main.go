package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logger.Init(os.Getenv("ENVIRONMENT"))
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer application.Close()

	fiberApp := fiber.New(fiber.Config{
		AppName:      "legal-intake-api",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins:     application.Config.CORSOrigins,
		AllowCredentials: true,
	}))

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		addr := fmt.Sprintf(":%d", application.Config.Port)
		log.Info("starting server", "addr", addr)
		if err := fiberApp.Listen(addr); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := fiberApp.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Er("failed to shut down cleanly", err)
	}
}
