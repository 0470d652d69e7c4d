package report

import (
	"go.uber.org/atomic"
)

type RegistryErrors struct {
	Read            atomic.Uint64 `json:"read"`
	Write           atomic.Uint64 `json:"write"`
	VersionConflict atomic.Uint64 `json:"version_conflict"`
	Directory       atomic.Uint64 `json:"directory"`
}

type RegistryReport struct {
	Errors RegistryErrors `json:"errors"`
}
