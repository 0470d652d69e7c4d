package directory

import (
	"context"
	"time"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/utils/logger"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Keeps resolved profiles in memory. Misses and failures aren't cached,
// a farmer added to the underlying directory is visible on the next lookup.
type Cached struct {
	log       *logrus.Entry
	directory batch.Directory
	cache     *cache.Cache
}

func NewCached(directory batch.Directory, ttl, cleanupInterval time.Duration) (self *Cached) {
	self = new(Cached)
	self.log = logger.NewSublogger("directory-cache")
	self.directory = directory
	self.cache = cache.New(ttl, cleanupInterval)
	return
}

func (self *Cached) Resolve(ctx context.Context, identity string) (out *batch.Profile, err error) {
	if x, found := self.cache.Get(identity); found {
		profile := x.(batch.Profile)
		return &profile, nil
	}

	out, err = self.directory.Resolve(ctx, identity)
	if err != nil {
		return
	}

	self.log.WithField("identity", identity).WithField("id", out.Id).Debug("Caching profile")
	self.cache.Set(identity, *out, cache.DefaultExpiration)
	return
}
