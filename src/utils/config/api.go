package config

import (
	"time"

	"github.com/spf13/viper"
)

type Api struct {
	// REST API address
	ListenAddress string

	// Maximum time a single request may take, including calls to the registry
	RequestTimeout time.Duration

	// Origins allowed to call the API from a browser. "*" allows any origin.
	AllowedOrigins []string

	// Requests per second accepted by the API, 0 disables limiting
	LimiterRate float64

	// Max num of requests accepted in a burst
	LimiterBurstSize int
}

func setApiDefaults() {
	viper.SetDefault("Api.ListenAddress", "0.0.0.0:3001")
	viper.SetDefault("Api.RequestTimeout", "60s")
	viper.SetDefault("Api.AllowedOrigins", []string{"*"})
	viper.SetDefault("Api.LimiterRate", "50")
	viper.SetDefault("Api.LimiterBurstSize", "100")
}
