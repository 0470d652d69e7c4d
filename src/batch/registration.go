package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/warp-contracts/batch-registry/src/utils/logger"

	"github.com/sirupsen/logrus"
)

const (
	DefaultCowBreed = "Gir"
	DefaultFeedType = "Grass-Fed"

	batchDescription = "A high-quality batch of organic cow dung."
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type RegistrationRequest struct {
	// Farmer id, or the farmer's name if the id is unknown to the caller
	FarmerId   string
	FarmerName string

	// Weight in kilograms, as entered
	Weight string

	CowBreed string
	FeedType string

	// Optional place of collection
	Coordinates *Coordinates
}

type Confirmation struct {
	TokenId string
	Url     string

	// Set only by verification
	QualityScore QualityScore

	Record *Record
}

// Registers new batches in the registry
type Registrar struct {
	log       *logrus.Entry
	registry  Registry
	directory Directory
	explorer  Explorer
	observer  Observer
	now       func() time.Time
}

func NewRegistrar(registry Registry, directory Directory) (self *Registrar) {
	self = new(Registrar)
	self.log = logger.NewSublogger("registrar")
	self.registry = registry
	self.directory = directory
	self.observer = noopObserver{}
	self.now = time.Now
	return
}

func (self *Registrar) WithExplorer(v Explorer) *Registrar {
	self.explorer = v
	return self
}

func (self *Registrar) WithObserver(v Observer) *Registrar {
	self.observer = v
	return self
}

func (self *Registrar) WithClock(v func() time.Time) *Registrar {
	self.now = v
	return self
}

func parseWeight(text string) (float64, error) {
	weight, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, fmt.Errorf("%w: weight must be a number, got %q", ErrInvalidInput, text)
	}
	if weight <= 0 {
		return 0, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	return weight, nil
}

func validateCoordinates(c *Coordinates) error {
	if c == nil {
		return nil
	}
	if !inRange(c.Latitude, -90, 90) {
		return fmt.Errorf("%w: latitude must lie in [-90, 90]", ErrInvalidInput)
	}
	if !inRange(c.Longitude, -180, 180) {
		return fmt.Errorf("%w: longitude must lie in [-180, 180]", ErrInvalidInput)
	}
	return nil
}

func (self *Registrar) resolve(ctx context.Context, req *RegistrationRequest) (*Profile, error) {
	identity := strings.TrimSpace(req.FarmerId)
	if identity == "" {
		identity = strings.TrimSpace(req.FarmerName)
	}
	if identity == "" {
		return nil, fmt.Errorf("%w: farmer id or name is required", ErrInvalidInput)
	}

	profile, err := self.directory.Resolve(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrUnknownFarmer) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFarmer, identity)
		}
		return nil, fmt.Errorf("%w: %w", ErrDirectory, err)
	}
	return profile, nil
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// Validates the request and creates exactly one record with status Registered.
// Registry failures are returned as ErrRegistryWrite and never retried.
func (self *Registrar) Register(ctx context.Context, req *RegistrationRequest) (out *Confirmation, err error) {
	weight, err := parseWeight(req.Weight)
	if err != nil {
		return
	}

	err = validateCoordinates(req.Coordinates)
	if err != nil {
		return
	}

	profile, err := self.resolve(ctx, req)
	if err != nil {
		return
	}

	record := &Record{
		Name:        "Batch from " + profile.Name,
		Description: batchDescription,
	}
	props := &record.Properties
	props.Set(TraitStatus, string(StatusRegistered))
	props.Set(TraitFarmerId, profile.Id)
	props.Set(TraitFarmerName, profile.Name)
	props.Set(TraitVillage, profile.Village)
	props.SetFloat(TraitWeight, weight)
	props.Set(TraitCowBreed, orDefault(req.CowBreed, DefaultCowBreed))
	props.Set(TraitFeedType, orDefault(req.FeedType, DefaultFeedType))
	props.Set(TraitOrigin, profile.Village)
	props.SetTime(TraitRegistrationTime, self.now())
	if req.Coordinates != nil {
		props.SetFloat(TraitLatitude, req.Coordinates.Latitude)
		props.SetFloat(TraitLongitude, req.Coordinates.Longitude)
	}

	receipt, err := self.registry.Create(ctx, record)
	if err != nil {
		self.log.WithError(err).WithField("farmer", profile.Id).Error("Failed to create batch")
		return nil, fmt.Errorf("%w: %w", ErrRegistryWrite, err)
	}

	record.TokenId = receipt.TokenId
	record.Version = receipt.Version

	out = &Confirmation{
		TokenId: receipt.TokenId,
		Url:     self.explorer.Url(receipt.Reference),
		Record:  record,
	}

	self.log.WithField("token_id", out.TokenId).
		WithField("farmer", profile.Id).
		WithField("weight", weight).
		Info("Batch registered")

	self.observer.OnEvent(&Event{
		Type:      EventRegistered,
		TokenId:   out.TokenId,
		Status:    StatusRegistered,
		FarmerId:  profile.Id,
		Url:       out.Url,
		Timestamp: self.now().UTC(),
	})

	return
}
