package ledger

import (
	"context"
	"strconv"
	"sync"

	"github.com/warp-contracts/batch-registry/src/batch"

	"github.com/rs/xid"
)

// In-process registry. Token ids are sequential, like ERC-721 token ids.
// Contents are lost upon restart.
type Memory struct {
	mtx     sync.RWMutex
	nextId  uint64
	order   []string
	records map[string]*batch.Record
}

func NewMemory() (self *Memory) {
	self = new(Memory)
	self.records = make(map[string]*batch.Record)
	return
}

func (self *Memory) Create(ctx context.Context, record *batch.Record) (out *batch.Receipt, err error) {
	err = ctx.Err()
	if err != nil {
		return
	}

	self.mtx.Lock()
	defer self.mtx.Unlock()

	stored := record.Clone()
	stored.TokenId = strconv.FormatUint(self.nextId, 10)
	stored.Version = 1
	self.nextId++

	self.records[stored.TokenId] = stored
	self.order = append(self.order, stored.TokenId)

	return &batch.Receipt{
		TokenId:   stored.TokenId,
		Reference: xid.New().String(),
		Version:   stored.Version,
	}, nil
}

func (self *Memory) Get(ctx context.Context, tokenId string) (out *batch.Record, err error) {
	err = ctx.Err()
	if err != nil {
		return
	}

	self.mtx.RLock()
	defer self.mtx.RUnlock()

	stored, ok := self.records[tokenId]
	if !ok {
		return nil, batch.ErrRecordNotFound
	}
	return stored.Clone(), nil
}

func (self *Memory) Update(ctx context.Context, record *batch.Record) (out *batch.Receipt, err error) {
	err = ctx.Err()
	if err != nil {
		return
	}

	self.mtx.Lock()
	defer self.mtx.Unlock()

	stored, ok := self.records[record.TokenId]
	if !ok {
		return nil, batch.ErrRecordNotFound
	}
	if stored.Version != record.Version {
		return nil, batch.ErrVersionConflict
	}

	updated := record.Clone()
	updated.Version = stored.Version + 1
	self.records[updated.TokenId] = updated

	return &batch.Receipt{
		TokenId:   updated.TokenId,
		Reference: xid.New().String(),
		Version:   updated.Version,
	}, nil
}

func (self *Memory) List(ctx context.Context) (out []*batch.Record, err error) {
	err = ctx.Err()
	if err != nil {
		return
	}

	self.mtx.RLock()
	defer self.mtx.RUnlock()

	out = make([]*batch.Record, 0, len(self.order))
	for _, id := range self.order {
		out = append(out, self.records[id].Clone())
	}
	return
}
