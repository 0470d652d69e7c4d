package report

import (
	"go.uber.org/atomic"
)

type GatewayErrors struct {
	InvalidInput atomic.Uint64 `json:"invalid_input"`
	Unauthorized atomic.Uint64 `json:"unauthorized"`
	NotFound     atomic.Uint64 `json:"not_found"`
	Conflict     atomic.Uint64 `json:"conflict"`
	Upstream     atomic.Uint64 `json:"upstream"`
}

type GatewayState struct {
	RequestsServed           atomic.Uint64  `json:"requests_served"`
	BatchesRegistered        atomic.Uint64  `json:"batches_registered"`
	BatchesVerified          atomic.Uint64  `json:"batches_verified"`
	AverageRequestsPerMinute atomic.Float64 `json:"average_requests_per_minute"`
}

type GatewayReport struct {
	State  GatewayState  `json:"state"`
	Errors GatewayErrors `json:"errors"`
}
