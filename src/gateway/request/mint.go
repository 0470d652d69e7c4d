package request

type Mint struct {
	FarmerId   string  `json:"farmerId"`
	FarmerName string  `json:"farmerName"`
	Weight     Numeric `json:"weight"`
	CowBreed   string  `json:"cowBreed"`
	FeedType   string  `json:"feedType"`

	// Optional, both or none
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
