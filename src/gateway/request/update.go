package request

type Update struct {
	TokenId       Numeric `json:"tokenId"`
	CollectorName string  `json:"collectorName"`

	// Assessment scored by the service
	Moisture Numeric `json:"moisture"`
	Purity   Numeric `json:"purity"`

	// Score assessed by the collector, used when there's no assessment
	QualityScore Numeric `json:"qualityScore"`
}
