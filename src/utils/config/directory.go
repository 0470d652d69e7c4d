package config

import (
	"time"

	"github.com/spf13/viper"
)

type Directory struct {
	// YAML file with farmer profiles. Empty uses the built-in profiles.
	Path string

	// How long a resolved profile is kept in memory, 0 disables caching
	CacheTTL time.Duration

	// How often expired profiles are evicted
	CacheCleanupInterval time.Duration
}

func setDirectoryDefaults() {
	viper.SetDefault("Directory.Path", "")
	viper.SetDefault("Directory.CacheTTL", "10m")
	viper.SetDefault("Directory.CacheCleanupInterval", "30m")
}
