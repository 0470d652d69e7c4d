package ledger

import "github.com/warp-contracts/batch-registry/src/batch"

type createBatchRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Properties  batch.Properties `json:"properties"`
}

type receiptResponse struct {
	TokenId   string `json:"tokenId"`
	Reference string `json:"reference"`
	Version   uint64 `json:"version"`
}

func (self *receiptResponse) toReceipt() *batch.Receipt {
	return &batch.Receipt{
		TokenId:   self.TokenId,
		Reference: self.Reference,
		Version:   self.Version,
	}
}
