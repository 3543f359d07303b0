package domain

import "time"

// Credential is the stored bearer token for one backend.
type Credential struct {
	Server      string
	AccessToken string
	LoginID     string
	SavedAt     time.Time
	ExpiresAt   *time.Time // from the token's exp claim, when it has one
}

// Expired reports whether the token's expiry has passed at now.
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}
