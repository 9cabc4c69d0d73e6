package model

import "time"

// TokenManager issues and verifies stateless bearer tokens.
type TokenManager interface {
	// Issue signs a token for subject that expires after ttl.
	Issue(subject string, ttl time.Duration) (string, error)
	// Verify returns the subject of a valid token.
	Verify(token string) (string, error)
}
