package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/warp-contracts/batch-registry/src/utils/config"
	"github.com/warp-contracts/batch-registry/src/utils/logger"
)

type Role string

const (
	RoleFarmer    Role = "farmer"
	RoleCollector Role = "collector"
	RoleOwner     Role = "owner"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnknownMode  = errors.New("unknown auth mode")
)

// Checks whether a credential grants the role
type Verifier interface {
	Verify(ctx context.Context, role Role, credential string) error
}

// Sets up the verifier selected in the configuration
func New(config *config.Auth) (out Verifier, err error) {
	log := logger.NewSublogger("auth")
	log.WithField("mode", config.Mode).Info("Setting up role verification")

	switch config.Mode {
	case "", "none":
		return None{}, nil
	case "password":
		return NewPassword(map[Role]string{
			RoleFarmer:    config.FarmerPassword,
			RoleCollector: config.CollectorPassword,
			RoleOwner:     config.OwnerPassword,
		}), nil
	case "jwt":
		if config.JWTSecret == "" {
			return nil, fmt.Errorf("%w: jwt mode needs a secret", ErrUnknownMode)
		}
		return NewJWT([]byte(config.JWTSecret)).WithIssuer(config.JWTIssuer), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMode, config.Mode)
}

// Accepts everything
type None struct{}

func (None) Verify(ctx context.Context, role Role, credential string) error {
	return nil
}
