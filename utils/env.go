package utils

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when LoadEnv gets no files.
const DefaultEnvFile = ".env"

// LoadEnv copies variables from dotenv files into the process environment.
// Variables that are already set win. Missing files are skipped; a file that
// cannot be parsed is an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}
