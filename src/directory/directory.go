package directory

import (
	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/utils/config"
	"github.com/warp-contracts/batch-registry/src/utils/logger"
)

// Sets up the farmer directory described in the configuration
func New(config *config.Config) (out batch.Directory, err error) {
	log := logger.NewSublogger("directory")

	var static *Static
	if config.Directory.Path == "" {
		static = NewDefault()
	} else {
		static, err = Load(config.Directory.Path)
		if err != nil {
			log.WithError(err).WithField("path", config.Directory.Path).Error("Failed to load directory")
			return
		}
	}
	log.WithField("farmers", len(static.profiles)).Info("Farmer directory loaded")

	if config.Directory.CacheTTL <= 0 {
		return static, nil
	}
	return NewCached(static, config.Directory.CacheTTL, config.Directory.CacheCleanupInterval), nil
}
