package response

import (
	"github.com/warp-contracts/batch-registry/src/batch"
)

type Mint struct {
	Url     string `json:"url"`
	TokenId string `json:"tokenId"`
}

func MintToResponse(confirmation *batch.Confirmation) *Mint {
	return &Mint{
		Url:     confirmation.Url,
		TokenId: confirmation.TokenId,
	}
}

type Update struct {
	Url          string  `json:"url"`
	QualityScore float64 `json:"qualityScore"`
}

func UpdateToResponse(confirmation *batch.Confirmation) *Update {
	return &Update{
		Url:          confirmation.Url,
		QualityScore: confirmation.QualityScore.Value(),
	}
}

type Score struct {
	Valid        bool    `json:"valid"`
	QualityScore float64 `json:"qualityScore"`
	Text         string  `json:"text"`
}

func ScoreToResponse(score batch.QualityScore) *Score {
	return &Score{
		Valid:        score.Valid(),
		QualityScore: score.Value(),
		Text:         score.String(),
	}
}
