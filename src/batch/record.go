package batch

import "strconv"

type Status string

const (
	StatusRegistered Status = "Registered"
	StatusVerified   Status = "Verified"
)

// One registered batch, as kept by the registry
type Record struct {
	// Assigned by the registry upon creation, never changes
	TokenId string `json:"id"`

	Name        string     `json:"name"`
	Description string     `json:"description"`
	Properties  Properties `json:"properties"`

	// Incremented by the registry upon every update
	Version uint64 `json:"version"`
}

func (self *Record) Status() Status {
	v, _ := self.Properties.Get(TraitStatus)
	return Status(v)
}

func (self *Record) IsPending() bool {
	return self.Status() == StatusRegistered
}

func (self *Record) Weight() (float64, bool) {
	return self.Properties.Float(TraitWeight)
}

func (self *Record) QualityScore() (QualityScore, bool) {
	v, ok := self.Properties.Get(TraitQualityScore)
	if !ok {
		return InvalidScore, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return InvalidScore, false
	}
	return ScoreFromValue(f), true
}

func (self *Record) Clone() *Record {
	out := *self
	out.Properties = self.Properties.Clone()
	return &out
}
