package directory

import (
	"fmt"
	"os"
	"strings"

	"github.com/warp-contracts/batch-registry/src/batch"

	"gopkg.in/yaml.v3"
)

// Root of the directory file:
//
//	farmers:
//	  - id: FARMER_001
//	    name: Sarath
//	    village: Tindivanam
type file struct {
	Farmers []batch.Profile `yaml:"farmers"`
}

func parse(data []byte) (out []batch.Profile, err error) {
	var f file
	err = yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	seen := make(map[string]struct{}, len(f.Farmers))
	for i, profile := range f.Farmers {
		profile.Id = strings.TrimSpace(profile.Id)
		profile.Name = strings.TrimSpace(profile.Name)
		profile.Village = strings.TrimSpace(profile.Village)
		if profile.Id == "" || profile.Name == "" {
			return nil, fmt.Errorf("%w: farmer #%d needs an id and a name", ErrInvalidFile, i)
		}
		if _, ok := seen[profile.Id]; ok {
			return nil, fmt.Errorf("%w: duplicate farmer id %s", ErrInvalidFile, profile.Id)
		}
		seen[profile.Id] = struct{}{}
		out = append(out, profile)
	}
	return
}

// Reads profiles from a YAML file
func Load(path string) (self *Static, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	profiles, err := parse(data)
	if err != nil {
		return
	}

	return NewStatic(profiles), nil
}
