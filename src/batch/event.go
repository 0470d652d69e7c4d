package batch

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventRegistered EventType = "registered"
	EventVerified   EventType = "verified"
)

// Emitted after a successful write to the registry
type Event struct {
	Type          EventType `json:"type"`
	TokenId       string    `json:"tokenId"`
	Status        Status    `json:"status"`
	FarmerId      string    `json:"farmerId,omitempty"`
	QualityScore  *float64  `json:"qualityScore,omitempty"`
	CollectorName string    `json:"collectorName,omitempty"`
	Url           string    `json:"url"`
	Timestamp     time.Time `json:"timestamp"`
}

func (self *Event) MarshalBinary() ([]byte, error) {
	return json.Marshal(self)
}

// Receives events, must not block
type Observer interface {
	OnEvent(event *Event)
}

type noopObserver struct{}

func (noopObserver) OnEvent(*Event) {}
