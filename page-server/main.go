package main

import (
	"embed"
	"html/template"
	"os"

	"file-aggregator/config"
	"file-aggregator/handlers"
	"file-aggregator/logging"
	"file-aggregator/server"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const (
	ServiceName = "page-server"

	EndPointIndex  = "/"
	EndPointStatic = "/static"
)

//go:embed templates/index.html
var templatesFS embed.FS

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	log.Info("Starting the page server...")

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

	tmpl, err := template.ParseFS(templatesFS, "templates/"+handlers.IndexTemplate)
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET(EndPointIndex, handlers.Index)

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		router.Static(EndPointStatic, cfg.StaticDir)
	} else {
		log.WithField("dir", cfg.StaticDir).Warn("Static directory not found, /static is disabled")
	}

	return router, nil
}
