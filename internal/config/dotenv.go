package config

import (
	"os"

	"github.com/joho/godotenv"
)

func loadDotenv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	_ = godotenv.Load()
}
