package config

import (
	"github.com/spf13/viper"
)

type Backlog struct {
	// Is the periodic census of pending batches running
	Enabled bool

	// Cron spec of the census
	Schedule string
}

func setBacklogDefaults() {
	viper.SetDefault("Backlog.Enabled", "true")
	viper.SetDefault("Backlog.Schedule", "@every 1m")
}
