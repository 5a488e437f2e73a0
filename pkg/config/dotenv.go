package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads BOUNCE_* variables from a .env file into the process
// environment. Variables already set in the environment win. A missing file
// is not an error; loaded reports whether the file was read.
func LoadDotEnv(path string) (loaded bool, err error) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}
