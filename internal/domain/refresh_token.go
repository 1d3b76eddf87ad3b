package domain

import "time"

// RefreshTokenDescriptor is the server-side record of a user's refresh token.
//
// Security notes:
// - We never store the raw secret, only its SHA-256 digest (TokenHash).
// - On refresh we rotate: the old digest moves to PreviousTokenHash for one
//   generation so a replay of the rotated-out token can be detected.
// - The descriptor is a value: every change builds a new descriptor and the
//   stored slot is replaced wholesale, never mutated field by field.
type RefreshTokenDescriptor struct {
	TokenHash           string    `json:"tokenHash"`
	PreviousTokenHash   string    `json:"previousTokenHash,omitempty"`
	ReplacedByTokenHash string    `json:"replacedByTokenHash,omitempty"`
	ExpiresUTC          time.Time `json:"expiresUtc"`
	CreatedUTC          time.Time `json:"createdUtc"`
	Revoked             bool      `json:"revoked"`
}

func (d RefreshTokenDescriptor) IsExpired(now time.Time) bool {
	return now.After(d.ExpiresUTC)
}
