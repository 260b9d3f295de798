package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/deva-prakash-j/lurniq-api/internal/app"
	"github.com/deva-prakash-j/lurniq-api/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}
