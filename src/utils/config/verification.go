package config

import (
	"github.com/spf13/viper"
)

type Verification struct {
	// Allows scoring an already verified batch again
	AllowRescoring bool
}

func setVerificationDefaults() {
	viper.SetDefault("Verification.AllowRescoring", "false")
}
