package ledger

import (
	"context"
	"fmt"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/utils/config"
	"github.com/warp-contracts/batch-registry/src/utils/logger"
	"github.com/warp-contracts/batch-registry/src/utils/model"
)

// Creates the registry selected in the configuration.
// Called once upon startup, the registry is shared by all requests.
func New(ctx context.Context, config *config.Config) (out batch.Registry, err error) {
	log := logger.NewSublogger("ledger")
	log.WithField("backend", config.Registry.Backend).Info("Setting up registry")

	switch config.Registry.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "postgres":
		db, err := model.NewConnection(ctx, config, "registry")
		if err != nil {
			return nil, err
		}
		return NewPostgres(db), nil
	case "remote":
		return NewRemote(&config.Registry), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, config.Registry.Backend)
}
