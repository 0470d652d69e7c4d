package batch

import (
	"context"
	"fmt"
)

// Read-only access to registered batches
type Query struct {
	registry Registry
}

func NewQuery(registry Registry) *Query {
	return &Query{registry: registry}
}

// Every batch in the registry. Empty registry gives an empty slice.
func (self *Query) ListAll(ctx context.Context) (out []*Record, err error) {
	out, err = self.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryRead, err)
	}
	if out == nil {
		out = []*Record{}
	}
	return
}

// Batches waiting for verification
func (self *Query) ListPending(ctx context.Context) (out []*Record, err error) {
	return self.ListByStatus(ctx, StatusRegistered)
}

func (self *Query) ListByStatus(ctx context.Context, status Status) (out []*Record, err error) {
	lister, ok := self.registry.(StatusLister)
	if ok {
		out, err = lister.ListByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegistryRead, err)
		}
		if out == nil {
			out = []*Record{}
		}
		return
	}

	all, err := self.ListAll(ctx)
	if err != nil {
		return
	}
	return FilterByStatus(all, status), nil
}

func FilterByStatus(records []*Record, status Status) []*Record {
	out := make([]*Record, 0, len(records))
	for _, record := range records {
		if record.Status() == status {
			out = append(out, record)
		}
	}
	return out
}

type Census struct {
	Total    int
	ByStatus map[Status]int
}

// Counts batches per status
func (self *Query) Census(ctx context.Context) (out *Census, err error) {
	all, err := self.ListAll(ctx)
	if err != nil {
		return
	}

	out = &Census{
		Total:    len(all),
		ByStatus: make(map[Status]int),
	}
	for _, record := range all {
		out.ByStatus[record.Status()]++
	}
	return
}
