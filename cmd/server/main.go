package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close application cleanly", err)
		}
	}()

	server := fiber.New(fiber.Config{
		AppName: "uzazisafe",
	})

	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins: application.Config.CorsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		address := fmt.Sprintf(":%d", application.Config.ServerPort)
		if err := server.Listen(address); err != nil {
			log.Er("server stopped", err)
			os.Exit(1)
		}
	}()

	log.Info("Server started", "port", application.Config.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := server.Shutdown(); err != nil {
		log.Er("failed to shut down server cleanly", err)
	}
}
