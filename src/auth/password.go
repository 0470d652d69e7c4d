package auth

import (
	"context"
	"crypto/subtle"
)

// Shared secret per role. A role without a password can't be assumed.
type Password struct {
	passwords map[Role][]byte
}

func NewPassword(passwords map[Role]string) (self *Password) {
	self = new(Password)
	self.passwords = make(map[Role][]byte, len(passwords))
	for role, password := range passwords {
		if password == "" {
			continue
		}
		self.passwords[role] = []byte(password)
	}
	return
}

func (self *Password) Verify(ctx context.Context, role Role, credential string) error {
	expected, ok := self.passwords[role]
	if !ok || credential == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare(expected, []byte(credential)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
