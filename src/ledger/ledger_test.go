package ledger

import (
	"context"
	"testing"

	"github.com/warp-contracts/batch-registry/src/utils/config"

	"github.com/stretchr/testify/require"
)

func TestNewBackend(t *testing.T) {
	conf := config.Default()

	out, err := New(context.Background(), conf)
	require.Nil(t, err)
	require.IsType(t, &Memory{}, out)

	conf.Registry.Backend = config.RegistryBackendRemote
	conf.Registry.Url = "http://localhost:1"
	out, err = New(context.Background(), conf)
	require.Nil(t, err)
	require.IsType(t, &Remote{}, out)

	conf.Registry.Backend = "blockchain"
	_, err = New(context.Background(), conf)
	require.ErrorIs(t, err, ErrUnknownBackend)
}
