package main

import (
	"log"

	"sheetlens/internal/config"
	"sheetlens/internal/container"
	"sheetlens/ui"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	app, err := ui.NewApp(appContainer.Workspace, appContainer.UIOptions())
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting sheetlens UI on http://localhost:%s", appConfig.Server.Port)
	log.Fatal(app.Start(":" + appConfig.Server.Port))
}
