package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/directory"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestVerificationTestSuite(t *testing.T) {
	suite.Run(t, new(VerificationTestSuite))
}

type VerificationTestSuite struct {
	suite.Suite
	ctx      context.Context
	registry *spyRegistry
	observer *recordingObserver
	verifier *batch.Verifier
	tokenId  string
}

func (s *VerificationTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.registry = newSpyRegistry()
	s.observer = &recordingObserver{}

	out, err := batch.NewRegistrar(s.registry, directory.NewDefault()).
		WithClock(clock).
		Register(s.ctx, &batch.RegistrationRequest{FarmerId: "FARMER_001", Weight: "12"})
	require.Nil(s.T(), err)
	s.tokenId = out.TokenId

	s.verifier = batch.NewVerifier(s.registry).
		WithExplorer(batch.NewExplorer("https://explorer.example/tx")).
		WithObserver(s.observer).
		WithClock(clock)
}

func (s *VerificationTestSuite) stored() *batch.Record {
	record, err := s.registry.Memory.Get(s.ctx, s.tokenId)
	require.Nil(s.T(), err)
	return record
}

func (s *VerificationTestSuite) TestVerify() {
	out, err := s.verifier.Verify(s.ctx, &batch.VerificationRequest{
		TokenId:       s.tokenId,
		CollectorName: "Ravi",
		Moisture:      "40",
		Purity:        "8",
	})
	require.Nil(s.T(), err)
	require.Equal(s.T(), "7.4", out.QualityScore.String())
	require.Contains(s.T(), out.Url, "https://explorer.example/tx/")

	record := s.stored()
	require.Equal(s.T(), batch.StatusVerified, record.Status())
	require.Equal(s.T(), 1, record.Properties.Count(batch.TraitStatus))
	require.Equal(s.T(), batch.TraitStatus, record.Properties[0].Key)

	traits := record.Properties.Traits()
	require.Equal(s.T(), []batch.Trait{
		{TraitType: "Moisture (%)", Value: "40"},
		{TraitType: "Purity (1-10)", Value: "8"},
		{TraitType: "Quality Score", Value: "7.4"},
		{TraitType: "Collector", Value: "Ravi"},
		{TraitType: "Verification Time", Value: "2024-05-01T08:00:00Z"},
	}, traits[len(traits)-5:])

	// Registration properties untouched
	name, _ := record.Properties.Get(batch.TraitFarmerName)
	require.Equal(s.T(), "Sarath", name)

	require.Equal(s.T(), 1, s.registry.updates)
	require.Len(s.T(), s.observer.events, 1)
	require.Equal(s.T(), batch.EventVerified, s.observer.events[0].Type)
	require.Equal(s.T(), 7.4, *s.observer.events[0].QualityScore)
	require.Equal(s.T(), "Ravi", s.observer.events[0].CollectorName)
}

func (s *VerificationTestSuite) TestVerifyDirectScore() {
	out, err := s.verifier.Verify(s.ctx, &batch.VerificationRequest{
		TokenId:       s.tokenId,
		CollectorName: "Ravi",
		QualityScore:  "8",
	})
	require.Nil(s.T(), err)
	require.Equal(s.T(), "8.0", out.QualityScore.String())

	record := s.stored()
	score, ok := record.QualityScore()
	require.True(s.T(), ok)
	require.Equal(s.T(), 8.0, score.Value())
	_, ok = record.Properties.Get(batch.TraitMoisture)
	require.False(s.T(), ok)
}

func (s *VerificationTestSuite) TestInvalidRequestsDontTouchRegistry() {
	for _, tc := range []struct {
		req *batch.VerificationRequest
		err error
	}{
		{&batch.VerificationRequest{CollectorName: "Ravi", QualityScore: "8"}, batch.ErrInvalidInput},
		{&batch.VerificationRequest{TokenId: s.tokenId, QualityScore: "8"}, batch.ErrInvalidInput},
		{&batch.VerificationRequest{TokenId: s.tokenId, CollectorName: "Ravi"}, batch.ErrInvalidInput},
		{&batch.VerificationRequest{TokenId: s.tokenId, CollectorName: "Ravi", Moisture: "150", Purity: "8"}, batch.ErrInvalidScoreInput},
		{&batch.VerificationRequest{TokenId: s.tokenId, CollectorName: "Ravi", Moisture: "40", Purity: "0.5"}, batch.ErrInvalidScoreInput},
		{&batch.VerificationRequest{TokenId: s.tokenId, CollectorName: "Ravi", Moisture: "40"}, batch.ErrInvalidScoreInput},
		{&batch.VerificationRequest{TokenId: s.tokenId, CollectorName: "Ravi", Moisture: "dry", Purity: "8"}, batch.ErrInvalidScoreInput},
		{&batch.VerificationRequest{TokenId: s.tokenId, CollectorName: "Ravi", QualityScore: "11"}, batch.ErrInvalidScoreInput},
	} {
		_, err := s.verifier.Verify(s.ctx, tc.req)
		require.ErrorIs(s.T(), err, tc.err, "%+v", tc.req)
	}

	require.Equal(s.T(), 0, s.registry.gets)
	require.Equal(s.T(), 0, s.registry.updates)
	require.Equal(s.T(), batch.StatusRegistered, s.stored().Status())
}

func (s *VerificationTestSuite) TestUnknownToken() {
	_, err := s.verifier.Verify(s.ctx, &batch.VerificationRequest{
		TokenId:       "99",
		CollectorName: "Ravi",
		QualityScore:  "8",
	})
	require.ErrorIs(s.T(), err, batch.ErrRecordNotFound)
	require.Equal(s.T(), 0, s.registry.updates)
}

func (s *VerificationTestSuite) TestReadFailure() {
	s.registry.getErr = errors.New("timeout")
	_, err := s.verifier.Verify(s.ctx, &batch.VerificationRequest{
		TokenId:       s.tokenId,
		CollectorName: "Ravi",
		QualityScore:  "8",
	})
	require.ErrorIs(s.T(), err, batch.ErrRegistryRead)
	require.Equal(s.T(), 0, s.registry.updates)
}

func (s *VerificationTestSuite) TestWriteFailure() {
	s.registry.updateErr = errors.New("out of gas")
	_, err := s.verifier.Verify(s.ctx, &batch.VerificationRequest{
		TokenId:       s.tokenId,
		CollectorName: "Ravi",
		QualityScore:  "8",
	})
	require.ErrorIs(s.T(), err, batch.ErrRegistryWrite)
	require.Equal(s.T(), 1, s.registry.updates)
	require.Empty(s.T(), s.observer.events)
	require.Equal(s.T(), batch.StatusRegistered, s.stored().Status())
}

func (s *VerificationTestSuite) TestAlreadyVerified() {
	req := &batch.VerificationRequest{
		TokenId:       s.tokenId,
		CollectorName: "Ravi",
		Moisture:      "40",
		Purity:        "8",
	}
	_, err := s.verifier.Verify(s.ctx, req)
	require.Nil(s.T(), err)

	_, err = s.verifier.Verify(s.ctx, req)
	require.ErrorIs(s.T(), err, batch.ErrAlreadyVerified)
	require.Equal(s.T(), 1, s.registry.updates)
}

func (s *VerificationTestSuite) TestRescoring() {
	s.verifier.WithAllowRescoring(true)

	_, err := s.verifier.Verify(s.ctx, &batch.VerificationRequest{
		TokenId:       s.tokenId,
		CollectorName: "Ravi",
		Moisture:      "40",
		Purity:        "8",
	})
	require.Nil(s.T(), err)

	out, err := s.verifier.Verify(s.ctx, &batch.VerificationRequest{
		TokenId:       s.tokenId,
		CollectorName: "Anu",
		Moisture:      "20",
		Purity:        "9",
	})
	require.Nil(s.T(), err)
	require.Equal(s.T(), "8.7", out.QualityScore.String())

	record := s.stored()
	for _, key := range []batch.TraitKey{
		batch.TraitStatus,
		batch.TraitMoisture,
		batch.TraitPurity,
		batch.TraitQualityScore,
		batch.TraitCollectorName,
		batch.TraitVerificationTime,
	} {
		require.Equal(s.T(), 1, record.Properties.Count(key), key.Label())
	}
	collector, _ := record.Properties.Get(batch.TraitCollectorName)
	require.Equal(s.T(), "Anu", collector)
}

func (s *VerificationTestSuite) TestConcurrentVerificationConflicts() {
	s.verifier.WithAllowRescoring(true)

	// Someone else updates the record between our read and write
	stale, err := s.registry.Memory.Get(s.ctx, s.tokenId)
	require.Nil(s.T(), err)
	_, err = s.verifier.Verify(s.ctx, &batch.VerificationRequest{
		TokenId:       s.tokenId,
		CollectorName: "Ravi",
		QualityScore:  "5",
	})
	require.Nil(s.T(), err)

	stale.Properties.Set(batch.TraitStatus, string(batch.StatusVerified))
	_, err = s.registry.Update(s.ctx, stale)
	require.ErrorIs(s.T(), err, batch.ErrVersionConflict)
}
