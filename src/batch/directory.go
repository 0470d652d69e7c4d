package batch

import "context"

type Profile struct {
	Id      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Village string `json:"village" yaml:"village"`
}

// Source of known farmers
type Directory interface {
	// Finds the farmer by id or name. Fails with ErrUnknownFarmer if there's no match.
	Resolve(ctx context.Context, identity string) (*Profile, error)
}
