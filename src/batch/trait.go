package batch

import "strings"

// Closed set of properties a batch record knows about.
// Anything else read from the ledger is kept as TraitExtra with its original label.
type TraitKey int

const (
	TraitExtra TraitKey = iota
	TraitStatus
	TraitFarmerId
	TraitFarmerName
	TraitVillage
	TraitWeight
	TraitCowBreed
	TraitFeedType
	TraitOrigin
	TraitRegistrationTime
	TraitLatitude
	TraitLongitude
	TraitMoisture
	TraitPurity
	TraitQualityScore
	TraitCollectorName
	TraitVerificationTime
)

// Labels stored in the ledger, shared with the dashboard
var traitLabels = map[TraitKey]string{
	TraitStatus:           "Status",
	TraitFarmerId:         "Farmer Id",
	TraitFarmerName:       "Farmer Name",
	TraitVillage:          "Village",
	TraitWeight:           "Weight (KG)",
	TraitCowBreed:         "Cow Breed",
	TraitFeedType:         "Feed Type",
	TraitOrigin:           "Origin",
	TraitRegistrationTime: "Registration Time",
	TraitLatitude:         "Latitude",
	TraitLongitude:        "Longitude",
	TraitMoisture:         "Moisture (%)",
	TraitPurity:           "Purity (1-10)",
	TraitQualityScore:     "Quality Score",
	TraitCollectorName:    "Collector",
	TraitVerificationTime: "Verification Time",
}

var traitsByLabel = func() map[string]TraitKey {
	out := make(map[string]TraitKey, len(traitLabels))
	for key, label := range traitLabels {
		out[strings.ToLower(label)] = key
	}
	return out
}()

func (self TraitKey) Label() string {
	return traitLabels[self]
}

func (self TraitKey) IsKnown() bool {
	_, ok := traitLabels[self]
	return ok
}

// Maps a ledger label to a known key, TraitExtra if there's no such key
func TraitKeyFromLabel(label string) TraitKey {
	key, ok := traitsByLabel[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return TraitExtra
	}
	return key
}
