package configs

import (
	"flag"
	"os"

	"github.com/driftroom/driftroom/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file location from the
// --config flag, the DRIFTROOM_CONFIG env var, or well-known
// candidates. An empty result means defaults-only.
func DetermineConfigPath() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("DRIFTROOM_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/driftroom/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
