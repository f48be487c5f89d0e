package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MoodDetector/internal/config"
	"MoodDetector/pkg/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// the logger reads APP_ENV, so .env goes first
	envErr := config.LoadDotEnv()
	logger := log.NewLogger()
	if envErr != nil {
		log.Warn(log.Fields{"error": envErr.Error()}, "No .env file loaded, using process environment")
	}

	app, err := config.LoadApp()
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "Invalid configuration")
	}

	fiberApp := config.NewFiber(logger, app)
	validator := config.NewValidator()

	server, err := config.NewServer(
		config.WithApp(app),
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(),
		config.WithS3Client(),
		config.WithFaceDetector(context.Background()),
		config.WithMiddleware(),
		config.WithUtils(),
	)
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "Failed to build server")
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	log.Info(log.Fields{"port": app.Port, "detector": app.FaceDetector}, "Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctx); err != nil {
		log.Error(log.Fields{"error": err.Error()}, "Error during shutdown")
	}
	logger.Info("Server stopped")
}
