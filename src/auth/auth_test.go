package auth

import (
	"context"
	"testing"
	"time"

	"github.com/warp-contracts/batch-registry/src/utils/config"

	"github.com/stretchr/testify/require"
)

func TestNone(t *testing.T) {
	require.Nil(t, None{}.Verify(context.Background(), RoleOwner, ""))
}

func TestPassword(t *testing.T) {
	ctx := context.Background()
	verifier := NewPassword(map[Role]string{
		RoleFarmer:    "farm",
		RoleCollector: "collect",
	})

	require.Nil(t, verifier.Verify(ctx, RoleFarmer, "farm"))
	require.Nil(t, verifier.Verify(ctx, RoleCollector, "collect"))
	require.ErrorIs(t, verifier.Verify(ctx, RoleFarmer, "collect"), ErrUnauthorized)
	require.ErrorIs(t, verifier.Verify(ctx, RoleFarmer, ""), ErrUnauthorized)

	// No password configured
	require.ErrorIs(t, verifier.Verify(ctx, RoleOwner, ""), ErrUnauthorized)
	require.ErrorIs(t, verifier.Verify(ctx, RoleOwner, "anything"), ErrUnauthorized)
}

func TestJWT(t *testing.T) {
	ctx := context.Background()
	verifier := NewJWT([]byte("secret")).WithIssuer("registry")

	token, err := verifier.Sign(RoleCollector, time.Hour)
	require.Nil(t, err)

	require.Nil(t, verifier.Verify(ctx, RoleCollector, token))
	require.ErrorIs(t, verifier.Verify(ctx, RoleOwner, token), ErrUnauthorized)
	require.ErrorIs(t, verifier.Verify(ctx, RoleCollector, "not-a-token"), ErrUnauthorized)
	require.ErrorIs(t, verifier.Verify(ctx, RoleCollector, ""), ErrUnauthorized)
}

func TestJWTWrongKey(t *testing.T) {
	token, err := NewJWT([]byte("other")).WithIssuer("registry").Sign(RoleFarmer, time.Hour)
	require.Nil(t, err)

	err = NewJWT([]byte("secret")).WithIssuer("registry").Verify(context.Background(), RoleFarmer, token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestJWTWrongIssuer(t *testing.T) {
	token, err := NewJWT([]byte("secret")).WithIssuer("someone").Sign(RoleFarmer, time.Hour)
	require.Nil(t, err)

	err = NewJWT([]byte("secret")).WithIssuer("registry").Verify(context.Background(), RoleFarmer, token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestJWTExpired(t *testing.T) {
	verifier := NewJWT([]byte("secret"))
	token, err := verifier.Sign(RoleFarmer, -time.Hour)
	require.Nil(t, err)

	require.ErrorIs(t, verifier.Verify(context.Background(), RoleFarmer, token), ErrUnauthorized)
}

func TestNewFromConfig(t *testing.T) {
	conf := config.Default().Auth

	out, err := New(&conf)
	require.Nil(t, err)
	require.IsType(t, None{}, out)

	conf.Mode = config.AuthModePassword
	conf.OwnerPassword = "owner"
	out, err = New(&conf)
	require.Nil(t, err)
	require.Nil(t, out.Verify(context.Background(), RoleOwner, "owner"))

	conf.Mode = config.AuthModeJWT
	_, err = New(&conf)
	require.ErrorIs(t, err, ErrUnknownMode)

	conf.JWTSecret = "secret"
	out, err = New(&conf)
	require.Nil(t, err)
	require.IsType(t, &JWT{}, out)

	conf.Mode = "ldap"
	_, err = New(&conf)
	require.ErrorIs(t, err, ErrUnknownMode)
}
