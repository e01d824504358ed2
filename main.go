package main

import (
	"embed"
	"log"
	"time"

	"edadash/app"
	"edadash/internal/config"
	"edadash/internal/logging"
	"edadash/internal/uploads"
	"edadash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

//go:embed ui/templates/* ui/static/* ui/content/*
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logging.ParseLevel(appConfig.Server.LogLevel); err == nil {
		logging.SetDefaultLevel(level)
	}
	gin.SetMode(appConfig.Server.GinMode)

	schema := app.SchemaFromConfig(appConfig.Columns)
	log.Printf("[Main] Columns: date=%q count=%q session=%q label=%q",
		schema.Date, schema.Count, schema.Session, schema.Label)
	if appConfig.Data.Root != "" {
		log.Printf("[Main] Path input restricted to %s", appConfig.Data.Root)
	}

	store := uploads.NewStore(appConfig.Data.UploadTTL)
	done := make(chan struct{})
	defer close(done)
	go store.Run(done, time.Minute)

	server, err := ui.NewServer(appConfig, app.NewDashboard(schema).RestrictPaths(appConfig.Data.Root), store, embeddedFiles)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting dashboard server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
