package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvHome overrides the home directory.
const EnvHome = "ORGANO_HOME"

const homeDirName = ".organo"

// DefaultHome returns $ORGANO_HOME, or ~/.organo.
func DefaultHome() (string, error) {
	if h := os.Getenv(EnvHome); h != "" {
		return h, nil
	}
	user, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(user, homeDirName), nil
}
