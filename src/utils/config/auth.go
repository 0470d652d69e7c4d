package config

import (
	"github.com/spf13/viper"
)

const (
	AuthModeNone     = "none"
	AuthModePassword = "password"
	AuthModeJWT      = "jwt"
)

type Auth struct {
	// How role credentials are checked: none, password or jwt
	Mode string

	// Shared passwords, used in the password mode
	FarmerPassword    string
	CollectorPassword string
	OwnerPassword     string

	// HMAC key used to verify tokens in the jwt mode
	JWTSecret string

	// Expected token issuer, empty skips the check
	JWTIssuer string
}

func setAuthDefaults() {
	viper.SetDefault("Auth.Mode", AuthModeNone)
	viper.SetDefault("Auth.FarmerPassword", "")
	viper.SetDefault("Auth.CollectorPassword", "")
	viper.SetDefault("Auth.OwnerPassword", "")
	viper.SetDefault("Auth.JWTSecret", "")
	viper.SetDefault("Auth.JWTIssuer", "")
}
