package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file read from the working directory
const DefaultEnvFile = ".env"

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, ".env" in the current directory is used.
// A missing file is not an error. Variables already set in the
// environment are left untouched.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return godotenv.Load(path)
}
