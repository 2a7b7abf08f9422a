package main

import (
	"file-aggregator/config"
	"file-aggregator/handlers"
	"file-aggregator/logging"
	"file-aggregator/server"

	"github.com/apex/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

const (
	ServiceName = "fs-service"

	EndPointListDirectory = "/list-directory"
	EndPointReadFile      = "/read-file"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	log.Info("Starting the filesystem service...")

	router, err := setupRouter(cfg)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	if err := server.Run(cfg.Addr(), router, cfg.ShutdownTimeout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func setupRouter(cfg *config.Config) (*gin.Engine, error) {
	router, err := server.NewEngine(ServiceName, cfg)
	if err != nil {
		return nil, err
	}

	fileHandler := handlers.NewFileHandler()

	// File bodies can be large; metrics stay uncompressed for scrapers.
	fs := router.Group("/")
	fs.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		fs.POST(EndPointListDirectory, fileHandler.ListDirectory)
		fs.POST(EndPointReadFile, fileHandler.ReadFile)
	}

	return router, nil
}
