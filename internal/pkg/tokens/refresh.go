package tokens

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

const (
	// LoginProvider and TokenName key the single descriptor slot per user.
	LoginProvider = "BestProductManager"
	TokenName     = "RefreshToken"

	secretLen = 64
	delimiter = "|"
)

// SlotStore persists at most one refresh token descriptor per user.
// Load returns (nil, nil) when the slot is absent; implementations must also
// map a corrupt stored value to (nil, nil) so a bad slot forces re-login
// instead of crashing. Store fully replaces the slot. Delete on an absent
// slot is a no-op.
type SlotStore interface {
	Load(ctx context.Context, userID string) (*domain.RefreshTokenDescriptor, error)
	Store(ctx context.Context, userID string, d domain.RefreshTokenDescriptor) error
	Delete(ctx context.Context, userID string) error
}

// RefreshManager issues, validates, rotates, and revokes opaque refresh
// tokens. The cookie value is "{userID}|{secret}"; only the secret's digest
// is ever persisted.
type RefreshManager struct {
	store SlotStore
	ttl   time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRefreshManager(store SlotStore, ttl time.Duration) *RefreshManager {
	return &RefreshManager{
		store: store,
		ttl:   ttl,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockUser serializes validate/rotate/revoke per user. Two concurrent
// refreshes for the same user must not both read the same "previous" digest
// and race to write.
func (m *RefreshManager) lockUser(userID string) func() {
	m.mu.Lock()
	l, ok := m.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[userID] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Issue generates a fresh secret, persists its descriptor, and returns the
// cookie value. A live prior descriptor's digest is carried forward as
// PreviousTokenHash so a replay of the rotated-out token can be detected for
// exactly one generation.
func (m *RefreshManager) Issue(ctx context.Context, userID string, now time.Time) (string, error) {
	if userID == "" || strings.Contains(userID, delimiter) {
		return "", fmt.Errorf("refresh: user id %q not usable in cookie value", userID)
	}

	unlock := m.lockUser(userID)
	defer unlock()

	existing, err := m.store.Load(ctx, userID)
	if err != nil {
		return "", err
	}

	secret, err := newSecret()
	if err != nil {
		return "", err
	}

	var previous string
	if existing != nil && !existing.Revoked && !existing.IsExpired(now) {
		previous = existing.TokenHash
	}

	// Descriptor built fully in memory, then one Store call; cancellation
	// before the write leaves no partial state.
	d := domain.RefreshTokenDescriptor{
		TokenHash:         Digest(secret),
		PreviousTokenHash: previous,
		ExpiresUTC:        now.Add(m.ttl),
		CreatedUTC:        now,
		Revoked:           false,
	}

	if err := m.store.Store(ctx, userID, d); err != nil {
		return "", err
	}

	return userID + delimiter + secret, nil
}

// Validate checks a presented cookie value and returns the owning user id.
// Every rejection is ErrInvalidSession; storage failures pass through
// unwrapped so callers can tell a broken store from a bad token.
//
// A secret matching the previous digest is a replay of a rotated-out token:
// the current descriptor is revoked before rejecting, deliberately logging
// out the legitimate holder as well to contain a suspected theft.
func (m *RefreshManager) Validate(ctx context.Context, presented string, now time.Time) (string, error) {
	userID, secret, ok := splitCookieValue(presented)
	if !ok {
		return "", ErrInvalidSession
	}

	unlock := m.lockUser(userID)
	defer unlock()

	d, err := m.store.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	if d == nil {
		return "", ErrInvalidSession
	}
	if d.Revoked {
		return "", ErrInvalidSession
	}
	if d.IsExpired(now) {
		return "", ErrInvalidSession
	}

	incoming := Digest(secret)

	if incoming == d.TokenHash {
		return userID, nil
	}

	if d.PreviousTokenHash != "" && incoming == d.PreviousTokenHash {
		revoked := *d
		revoked.Revoked = true
		if err := m.store.Store(ctx, userID, revoked); err != nil {
			return "", err
		}
		log.Printf("security_event type=refresh_token_reuse user_id=%s", userID)
		return "", ErrReuseDetected
	}

	return "", ErrInvalidSession
}

// Revoke clears the user's slot. Used by logout and admin revocation; an
// already-empty slot is success.
func (m *RefreshManager) Revoke(ctx context.Context, userID string) error {
	unlock := m.lockUser(userID)
	defer unlock()

	return m.store.Delete(ctx, userID)
}

func splitCookieValue(v string) (userID, secret string, ok bool) {
	parts := strings.Split(v, delimiter)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func newSecret() (string, error) {
	buf := make([]byte, secretLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
