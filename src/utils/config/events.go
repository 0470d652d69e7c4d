package config

import (
	"github.com/spf13/viper"
)

type Events struct {
	// Are batch lifecycle events published to Redis
	Enabled bool

	// Redis channel events are published to
	ChannelName string

	// Events waiting for publishing, new events are dropped when the queue is full
	QueueSize int
}

func setEventsDefaults() {
	viper.SetDefault("Events.Enabled", "false")
	viper.SetDefault("Events.ChannelName", "batches")
	viper.SetDefault("Events.QueueSize", "1000")
}
