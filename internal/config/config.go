// Package config provides application configuration and the board/conflict
// rule documents.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration, resolved from viper (config file,
// environment, flags).
type Config struct {
	SourceURL       string
	DatabasePath    string
	ListenAddr      string
	RulesFile       string
	CacheTTL        time.Duration
	RefreshInterval time.Duration
	SnapshotKeep    int
}

// Load resolves the configuration from viper with defaults applied.
func Load() Config {
	viper.SetDefault("source.ttl", 5*time.Minute)
	viper.SetDefault("source.refresh_interval", 5*time.Minute)
	viper.SetDefault("server.listen", ":8050")
	viper.SetDefault("storage.path", "~/.local/share/clashwatch/clashwatch.db")
	viper.SetDefault("storage.keep_snapshots", 30)

	return Config{
		SourceURL:       viper.GetString("source.url"),
		CacheTTL:        viper.GetDuration("source.ttl"),
		RefreshInterval: viper.GetDuration("source.refresh_interval"),
		DatabasePath:    ExpandPath(viper.GetString("storage.path")),
		ListenAddr:      viper.GetString("server.listen"),
		RulesFile:       ExpandPath(viper.GetString("rules.file")),
		SnapshotKeep:    viper.GetInt("storage.keep_snapshots"),
	}
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
