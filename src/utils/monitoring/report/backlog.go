package report

import (
	"go.uber.org/atomic"
)

type BacklogErrors struct {
	Census              atomic.Uint64 `json:"census"`
	ConsecutiveFailures atomic.Uint64 `json:"consecutive_failures"`
}

type BacklogState struct {
	Total               atomic.Int64 `json:"total"`
	Pending             atomic.Int64 `json:"pending"`
	Verified            atomic.Int64 `json:"verified"`
	LastCensusTimestamp atomic.Int64 `json:"last_census_timestamp"`
}

type BacklogReport struct {
	State  BacklogState  `json:"state"`
	Errors BacklogErrors `json:"errors"`
}
