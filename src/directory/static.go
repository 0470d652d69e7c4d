package directory

import (
	"context"
	"strings"

	"github.com/warp-contracts/batch-registry/src/batch"
)

// Profiles available when no directory file is configured
var DefaultProfiles = []batch.Profile{
	{Id: "FARMER_001", Name: "Sarath", Village: "Tindivanam"},
	{Id: "FARMER_002", Name: "Priya", Village: "Chembarambakkam"},
}

// Fixed set of profiles kept in memory
type Static struct {
	profiles []batch.Profile
}

func NewStatic(profiles []batch.Profile) (self *Static) {
	self = new(Static)
	self.profiles = make([]batch.Profile, len(profiles))
	copy(self.profiles, profiles)
	return
}

func NewDefault() *Static {
	return NewStatic(DefaultProfiles)
}

// Exact id match wins over a case insensitive name match
func (self *Static) Resolve(ctx context.Context, identity string) (out *batch.Profile, err error) {
	err = ctx.Err()
	if err != nil {
		return
	}

	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, batch.ErrUnknownFarmer
	}

	for i := range self.profiles {
		if self.profiles[i].Id == identity {
			profile := self.profiles[i]
			return &profile, nil
		}
	}

	for i := range self.profiles {
		if strings.EqualFold(self.profiles[i].Name, identity) {
			profile := self.profiles[i]
			return &profile, nil
		}
	}

	return nil, batch.ErrUnknownFarmer
}

func (self *Static) Profiles() []batch.Profile {
	out := make([]batch.Profile, len(self.profiles))
	copy(out, self.profiles)
	return out
}
