package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/postpress/internal/logfields"
)

// LoadEnvFiles loads .env and .env.local from dir, in that order, when present.
// Existing process environment variables are never overwritten.
func LoadEnvFiles(dir string) error {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
		slog.Debug("Loaded environment file", logfields.Path(path))
	}
	return nil
}
