package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/warp-contracts/batch-registry/src/utils/logger"

	"github.com/sirupsen/logrus"
)

type VerificationRequest struct {
	TokenId       string
	CollectorName string

	// Assessment as entered by the collector
	Moisture string
	Purity   string

	// Score assessed directly, used only when moisture and purity are absent
	QualityScore string
}

func (self *VerificationRequest) isAssessed() bool {
	return strings.TrimSpace(self.Moisture) != "" || strings.TrimSpace(self.Purity) != ""
}

// Scores registered batches and marks them as verified
type Verifier struct {
	log            *logrus.Entry
	registry       Registry
	explorer       Explorer
	observer       Observer
	allowRescoring bool
	now            func() time.Time
}

func NewVerifier(registry Registry) (self *Verifier) {
	self = new(Verifier)
	self.log = logger.NewSublogger("verifier")
	self.registry = registry
	self.observer = noopObserver{}
	self.now = time.Now
	return
}

func (self *Verifier) WithExplorer(v Explorer) *Verifier {
	self.explorer = v
	return self
}

func (self *Verifier) WithObserver(v Observer) *Verifier {
	self.observer = v
	return self
}

// Permits scoring batches that are already verified
func (self *Verifier) WithAllowRescoring(v bool) *Verifier {
	self.allowRescoring = v
	return self
}

func (self *Verifier) WithClock(v func() time.Time) *Verifier {
	self.now = v
	return self
}

func (self *Verifier) score(req *VerificationRequest) (QualityScore, error) {
	if req.isAssessed() {
		score := ParseScore(req.Moisture, req.Purity)
		if !score.Valid() {
			return InvalidScore, fmt.Errorf("%w: moisture must lie in [0, 100] and purity in [1, 10]", ErrInvalidScoreInput)
		}
		return score, nil
	}

	if strings.TrimSpace(req.QualityScore) == "" {
		return InvalidScore, fmt.Errorf("%w: moisture and purity or a quality score are required", ErrInvalidInput)
	}

	score := ParseScoreValue(req.QualityScore)
	if !score.Valid() {
		return InvalidScore, fmt.Errorf("%w: quality score must lie in [0, 10]", ErrInvalidScoreInput)
	}
	return score, nil
}

// Scores the batch and writes it back with status Verified in a single update.
// All validation happens before the registry is contacted.
func (self *Verifier) Verify(ctx context.Context, req *VerificationRequest) (out *Confirmation, err error) {
	tokenId := strings.TrimSpace(req.TokenId)
	if tokenId == "" {
		return nil, fmt.Errorf("%w: token id is required", ErrInvalidInput)
	}

	collector := strings.TrimSpace(req.CollectorName)
	if collector == "" {
		return nil, fmt.Errorf("%w: collector name is required", ErrInvalidInput)
	}

	score, err := self.score(req)
	if err != nil {
		return
	}

	record, err := self.registry.Get(ctx, tokenId)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, tokenId)
		}
		return nil, fmt.Errorf("%w: %w", ErrRegistryRead, err)
	}

	if record.Status() == StatusVerified && !self.allowRescoring {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyVerified, tokenId)
	}

	updated := record.Clone()
	props := &updated.Properties
	props.Set(TraitStatus, string(StatusVerified))
	if req.isAssessed() {
		m, _ := parseNumber(req.Moisture)
		p, _ := parseNumber(req.Purity)
		props.SetFloat(TraitMoisture, m)
		props.SetFloat(TraitPurity, p)
	} else {
		// Previous assessment doesn't explain the new score
		props.Remove(TraitMoisture)
		props.Remove(TraitPurity)
	}
	props.Set(TraitQualityScore, score.String())
	props.Set(TraitCollectorName, collector)
	props.SetTime(TraitVerificationTime, self.now())

	receipt, err := self.registry.Update(ctx, updated)
	if err != nil {
		self.log.WithError(err).WithField("token_id", tokenId).Error("Failed to update batch")
		return nil, fmt.Errorf("%w: %w", ErrRegistryWrite, err)
	}
	updated.Version = receipt.Version

	out = &Confirmation{
		TokenId:      tokenId,
		Url:          self.explorer.Url(receipt.Reference),
		QualityScore: score,
		Record:       updated,
	}

	self.log.WithField("token_id", tokenId).
		WithField("score", score.String()).
		WithField("collector", collector).
		Info("Batch verified")

	value := score.Value()
	self.observer.OnEvent(&Event{
		Type:          EventVerified,
		TokenId:       tokenId,
		Status:        StatusVerified,
		QualityScore:  &value,
		CollectorName: collector,
		Url:           out.Url,
		Timestamp:     self.now().UTC(),
	})

	return
}
