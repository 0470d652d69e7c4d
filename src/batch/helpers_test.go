package batch_test

import (
	"context"
	"errors"
	"time"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/ledger"
)

var fixedTime = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func clock() time.Time {
	return fixedTime
}

// Registry counting calls and failing on demand
type spyRegistry struct {
	*ledger.Memory
	creates, gets, updates, lists int
	createErr, getErr, updateErr  error
}

func newSpyRegistry() *spyRegistry {
	return &spyRegistry{Memory: ledger.NewMemory()}
}

func (self *spyRegistry) Create(ctx context.Context, record *batch.Record) (*batch.Receipt, error) {
	self.creates++
	if self.createErr != nil {
		return nil, self.createErr
	}
	return self.Memory.Create(ctx, record)
}

func (self *spyRegistry) Get(ctx context.Context, tokenId string) (*batch.Record, error) {
	self.gets++
	if self.getErr != nil {
		return nil, self.getErr
	}
	return self.Memory.Get(ctx, tokenId)
}

func (self *spyRegistry) Update(ctx context.Context, record *batch.Record) (*batch.Receipt, error) {
	self.updates++
	if self.updateErr != nil {
		return nil, self.updateErr
	}
	return self.Memory.Update(ctx, record)
}

func (self *spyRegistry) List(ctx context.Context) ([]*batch.Record, error) {
	self.lists++
	return self.Memory.List(ctx)
}

// Directory that is always down
type brokenDirectory struct{}

func (brokenDirectory) Resolve(ctx context.Context, identity string) (*batch.Profile, error) {
	return nil, errors.New("connection reset")
}

type recordingObserver struct {
	events []*batch.Event
}

func (self *recordingObserver) OnEvent(event *batch.Event) {
	self.events = append(self.events, event)
}
