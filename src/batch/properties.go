package batch

import (
	"encoding/json"
	"strconv"
	"time"
)

// Single attribute of a batch
type Property struct {
	Key TraitKey

	// Label of an extra property, unused for known keys
	Name string

	Value string
}

func (self Property) Label() string {
	if self.Key == TraitExtra {
		return self.Name
	}
	return self.Key.Label()
}

func (self Property) matches(key TraitKey, name string) bool {
	if self.Key != key {
		return false
	}
	return key != TraitExtra || self.Name == name
}

// Wire representation of a property
type Trait struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Ordered properties of a batch. Every key (and every extra label) appears at most once,
// setting an existing key replaces its value in place.
type Properties []Property

func (self Properties) index(key TraitKey, name string) int {
	for i, p := range self {
		if p.matches(key, name) {
			return i
		}
	}
	return -1
}

func (self Properties) Get(key TraitKey) (string, bool) {
	idx := self.index(key, "")
	if idx < 0 {
		return "", false
	}
	return self[idx].Value, true
}

func (self Properties) GetExtra(name string) (string, bool) {
	idx := self.index(TraitExtra, name)
	if idx < 0 {
		return "", false
	}
	return self[idx].Value, true
}

func (self *Properties) set(key TraitKey, name, value string) {
	idx := self.index(key, name)
	if idx >= 0 {
		(*self)[idx].Value = value
		return
	}
	*self = append(*self, Property{Key: key, Name: name, Value: value})
}

// Replaces the value in place or appends the property
func (self *Properties) Set(key TraitKey, value string) {
	if key == TraitExtra {
		panic("batch: extra properties need a label, use SetExtra")
	}
	self.set(key, "", value)
}

func (self *Properties) SetExtra(name, value string) {
	key := TraitKeyFromLabel(name)
	if key != TraitExtra {
		self.set(key, "", value)
		return
	}
	self.set(TraitExtra, name, value)
}

func (self *Properties) Remove(key TraitKey) {
	idx := self.index(key, "")
	if idx < 0 {
		return
	}
	*self = append((*self)[:idx], (*self)[idx+1:]...)
}

func (self Properties) Count(key TraitKey) (n int) {
	for _, p := range self {
		if p.Key == key {
			n++
		}
	}
	return
}

func (self *Properties) SetFloat(key TraitKey, v float64) {
	self.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
}

func (self Properties) Float(key TraitKey) (float64, bool) {
	v, ok := self.Get(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (self *Properties) SetTime(key TraitKey, t time.Time) {
	self.Set(key, t.UTC().Format(time.RFC3339))
}

func (self Properties) Time(key TraitKey) (time.Time, bool) {
	v, ok := self.Get(key)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (self Properties) Clone() Properties {
	if self == nil {
		return nil
	}
	out := make(Properties, len(self))
	copy(out, self)
	return out
}

func (self Properties) Traits() []Trait {
	out := make([]Trait, len(self))
	for i, p := range self {
		out[i] = Trait{TraitType: p.Label(), Value: p.Value}
	}
	return out
}

// Builds properties out of ledger traits. Repeated labels collapse into one property,
// keeping the position of the first and the value of the last.
func PropertiesFromTraits(traits []Trait) (out Properties) {
	out = make(Properties, 0, len(traits))
	for _, t := range traits {
		out.SetExtra(t.TraitType, t.Value)
	}
	return
}

func (self Properties) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.Traits())
}

func (self *Properties) UnmarshalJSON(data []byte) (err error) {
	var traits []Trait
	err = json.Unmarshal(data, &traits)
	if err != nil {
		return
	}
	*self = PropertiesFromTraits(traits)
	return
}
