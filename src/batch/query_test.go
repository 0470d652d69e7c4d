package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/warp-contracts/batch-registry/src/batch"
	"github.com/warp-contracts/batch-registry/src/directory"

	"github.com/stretchr/testify/require"
)

// Registry filtering on its side
type listingRegistry struct {
	*spyRegistry
	filtered int
}

func (self *listingRegistry) ListByStatus(ctx context.Context, statuses ...batch.Status) ([]*batch.Record, error) {
	self.filtered++
	all, err := self.Memory.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*batch.Record
	for _, status := range statuses {
		out = append(out, batch.FilterByStatus(all, status)...)
	}
	return out, nil
}

func populate(t *testing.T, registry batch.Registry, registered, verified int) {
	ctx := context.Background()
	registrar := batch.NewRegistrar(registry, directory.NewDefault()).WithClock(clock)
	verifier := batch.NewVerifier(registry).WithClock(clock)

	for i := 0; i < registered+verified; i++ {
		out, err := registrar.Register(ctx, &batch.RegistrationRequest{FarmerId: "FARMER_001", Weight: "5"})
		require.Nil(t, err)
		if i < verified {
			_, err = verifier.Verify(ctx, &batch.VerificationRequest{
				TokenId:       out.TokenId,
				CollectorName: "Ravi",
				Moisture:      "10",
				Purity:        "9",
			})
			require.Nil(t, err)
		}
	}
}

func TestQueryEmpty(t *testing.T) {
	query := batch.NewQuery(newSpyRegistry())

	all, err := query.ListAll(context.Background())
	require.Nil(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)

	pending, err := query.ListPending(context.Background())
	require.Nil(t, err)
	require.NotNil(t, pending)
	require.Empty(t, pending)

	census, err := query.Census(context.Background())
	require.Nil(t, err)
	require.Equal(t, 0, census.Total)
}

func TestQueryPending(t *testing.T) {
	registry := newSpyRegistry()
	populate(t, registry, 3, 2)
	query := batch.NewQuery(registry)

	all, err := query.ListAll(context.Background())
	require.Nil(t, err)
	require.Len(t, all, 5)

	pending, err := query.ListPending(context.Background())
	require.Nil(t, err)
	require.Len(t, pending, 3)
	for _, record := range pending {
		require.True(t, record.IsPending())
	}
	require.Equal(t, []string{"2", "3", "4"}, []string{pending[0].TokenId, pending[1].TokenId, pending[2].TokenId})

	verified, err := query.ListByStatus(context.Background(), batch.StatusVerified)
	require.Nil(t, err)
	require.Len(t, verified, 2)
}

func TestQueryCensus(t *testing.T) {
	registry := newSpyRegistry()
	populate(t, registry, 4, 1)

	census, err := batch.NewQuery(registry).Census(context.Background())
	require.Nil(t, err)
	require.Equal(t, 5, census.Total)
	require.Equal(t, 4, census.ByStatus[batch.StatusRegistered])
	require.Equal(t, 1, census.ByStatus[batch.StatusVerified])
}

func TestQueryUsesStatusLister(t *testing.T) {
	registry := &listingRegistry{spyRegistry: newSpyRegistry()}
	populate(t, registry, 2, 1)
	registry.lists = 0

	pending, err := batch.NewQuery(registry).ListPending(context.Background())
	require.Nil(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, 1, registry.filtered)
	require.Equal(t, 0, registry.lists)
}

func TestQueryReadFailure(t *testing.T) {
	_, err := batch.NewQuery(failingLister{}).ListAll(context.Background())
	require.ErrorIs(t, err, batch.ErrRegistryRead)

	_, err = batch.NewQuery(failingLister{}).Census(context.Background())
	require.ErrorIs(t, err, batch.ErrRegistryRead)
}

func TestFilterByStatus(t *testing.T) {
	registered := &batch.Record{TokenId: "0"}
	registered.Properties.Set(batch.TraitStatus, string(batch.StatusRegistered))
	unknown := &batch.Record{TokenId: "1"}

	out := batch.FilterByStatus([]*batch.Record{registered, unknown}, batch.StatusRegistered)
	require.Equal(t, []*batch.Record{registered}, out)
	require.NotNil(t, batch.FilterByStatus(nil, batch.StatusVerified))
}

type failingLister struct {
	batch.Registry
}

func (failingLister) List(ctx context.Context) ([]*batch.Record, error) {
	return nil, errors.New("rpc unavailable")
}
