package batch

import (
	"context"
	"fmt"
	"strings"
)

// Proof of a write accepted by the registry
type Receipt struct {
	TokenId string

	// Registry specific reference of the write, e.g. transaction hash
	Reference string

	// Version of the record after the write
	Version uint64
}

// External ledger holding batch records
type Registry interface {
	// Stores a new record, the registry assigns the token id
	Create(ctx context.Context, record *Record) (*Receipt, error)

	// Fails with ErrRecordNotFound if there's no such token
	Get(ctx context.Context, tokenId string) (*Record, error)

	// Replaces properties of an existing record. Fails with ErrVersionConflict
	// if the record changed since record.Version was read.
	Update(ctx context.Context, record *Record) (*Receipt, error)

	// All records, in creation order
	List(ctx context.Context) ([]*Record, error)
}

// Implemented by registries able to filter by status on their side
type StatusLister interface {
	ListByStatus(ctx context.Context, statuses ...Status) ([]*Record, error)
}

// Builds publicly resolvable confirmation urls out of receipt references
type Explorer struct {
	template string
}

func NewExplorer(template string) Explorer {
	return Explorer{template: template}
}

func (self Explorer) Url(reference string) string {
	switch {
	case self.template == "":
		return reference
	case strings.Contains(self.template, "%s"):
		return fmt.Sprintf(self.template, reference)
	default:
		return strings.TrimRight(self.template, "/") + "/" + reference
	}
}
