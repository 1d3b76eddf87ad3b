package tokens

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AccessClaims struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwtlib.RegisteredClaims
}

// AccessIssuer signs short-lived HS256 bearer tokens. The signing key is
// validated once at construction; issuance itself cannot fail on config.
type AccessIssuer struct {
	key      []byte
	ttl      time.Duration
	issuer   string
	audience string
}

func NewAccessIssuer(signingKey string, ttl time.Duration, issuer, audience string) (*AccessIssuer, error) {
	if signingKey == "" {
		return nil, errors.New("jwt signing key must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("access token ttl must be > 0")
	}
	return &AccessIssuer{
		key:      []byte(signingKey),
		ttl:      ttl,
		issuer:   issuer,
		audience: audience,
	}, nil
}

// Issue builds a signed token for the user. Expiry is exactly now+ttl and the
// jti makes two tokens for the same user distinguishable in logs.
func (s *AccessIssuer) Issue(userID, userName string, roles []string, now time.Time) (string, error) {
	rs := make([]string, 0, len(roles))
	for _, r := range roles {
		if r != "" {
			rs = append(rs, r)
		}
	}

	claims := AccessClaims{
		Name:  userName,
		Roles: rs,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Audience:  jwtlib.ClaimStrings{s.audience},
			IssuedAt:  jwtlib.NewNumericDate(now),
			NotBefore: jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Validate parses and verifies a token. No clock-skew leeway: an expired
// token is rejected the instant its exp passes.
func (s *AccessIssuer) Validate(tokenStr string) (*AccessClaims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwtlib.Token) (any, error) {
		return s.key, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(s.issuer),
		jwtlib.WithAudience(s.audience),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}
