package transport

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const tokenSalt = "actionwire-transport|"

// DeriveToken stretches secret into the auth block both peers send.
// An empty secret disables auth.
func DeriveToken(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, nil
	}
	const (
		keyLength = 32
		n         = 1 << 14
		r         = 8
		p         = 1
	)
	key, err := scrypt.Key([]byte(secret), []byte(tokenSalt), n, r, p, keyLength)
	if err != nil {
		return nil, fmt.Errorf("derive token: %w", err)
	}
	return key, nil
}

func tokenMatches(want, got []byte) bool {
	if len(want) == 0 {
		return true
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}
