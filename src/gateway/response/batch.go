package response

import (
	"github.com/warp-contracts/batch-registry/src/batch"
)

type Batch struct {
	Id          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Properties  []batch.Trait `json:"properties"`
}

func BatchesToResponse(records []*batch.Record) []Batch {
	out := make([]Batch, len(records))
	for i, record := range records {
		out[i] = Batch{
			Id:          record.TokenId,
			Name:        record.Name,
			Description: record.Description,
			Properties:  record.Properties.Traits(),
		}
	}
	return out
}
