package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"gorosi/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	app := ui.NewApp()
	if err := app.Start(ui.Config{Port: os.Getenv("PORT")}); err != nil {
		log.Fatal("Server failed:", err)
	}
}
