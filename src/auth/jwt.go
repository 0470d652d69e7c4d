package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"
)

const RoleClaim = "role"

// HS256 tokens carrying the role in a private claim
type JWT struct {
	key    []byte
	issuer string
	skew   time.Duration
}

func NewJWT(key []byte) (self *JWT) {
	self = new(JWT)
	self.key = key
	self.skew = 30 * time.Second
	return
}

func (self *JWT) WithIssuer(v string) *JWT {
	self.issuer = v
	return self
}

func (self *JWT) Verify(ctx context.Context, role Role, credential string) (err error) {
	if credential == "" {
		return ErrUnauthorized
	}

	token, err := jwt.Parse([]byte(credential), jwt.WithVerify(jwa.HS256, self.key))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	options := []jwt.ValidateOption{jwt.WithAcceptableSkew(self.skew)}
	if self.issuer != "" {
		options = append(options, jwt.WithIssuer(self.issuer))
	}
	err = jwt.Validate(token, options...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	claim, ok := token.Get(RoleClaim)
	if !ok {
		return fmt.Errorf("%w: missing role claim", ErrUnauthorized)
	}
	if value, ok := claim.(string); !ok || Role(value) != role {
		return fmt.Errorf("%w: role %v can't act as %s", ErrUnauthorized, claim, role)
	}
	return nil
}

// Issues a token for the role, used by tooling and tests
func (self *JWT) Sign(role Role, ttl time.Duration) (out string, err error) {
	token := jwt.New()
	now := time.Now()
	err = token.Set(RoleClaim, string(role))
	if err != nil {
		return
	}
	err = token.Set(jwt.IssuedAtKey, now)
	if err != nil {
		return
	}
	err = token.Set(jwt.ExpirationKey, now.Add(ttl))
	if err != nil {
		return
	}
	if self.issuer != "" {
		err = token.Set(jwt.IssuerKey, self.issuer)
		if err != nil {
			return
		}
	}

	signed, err := jwt.Sign(token, jwa.HS256, self.key)
	if err != nil {
		return
	}
	return string(signed), nil
}
