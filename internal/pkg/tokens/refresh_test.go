package tokens

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

// memorySlotStore mirrors the persistence contract: one descriptor per user,
// whole-slot replacement, (nil, nil) on absence.
type memorySlotStore struct {
	mu    sync.Mutex
	slots map[string]domain.RefreshTokenDescriptor

	loadErr  error
	storeErr error
}

func newMemorySlotStore() *memorySlotStore {
	return &memorySlotStore{slots: make(map[string]domain.RefreshTokenDescriptor)}
}

func (s *memorySlotStore) Load(ctx context.Context, userID string) (*domain.RefreshTokenDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	d, ok := s.slots[userID]
	if !ok {
		return nil, nil
	}
	copied := d
	return &copied, nil
}

func (s *memorySlotStore) Store(ctx context.Context, userID string, d domain.RefreshTokenDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storeErr != nil {
		return s.storeErr
	}
	s.slots[userID] = d
	return nil
}

func (s *memorySlotStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, userID)
	return nil
}

func (s *memorySlotStore) get(userID string) (domain.RefreshTokenDescriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.slots[userID]
	return d, ok
}

func TestRefreshManager_IssueStoresOnlyDigest(t *testing.T) {
	store := newMemorySlotStore()
	m := NewRefreshManager(store, 15*24*time.Hour)
	now := time.Now().UTC()

	cookie, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)

	userID, secret, ok := strings.Cut(cookie, "|")
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	d, found := store.get("user-1")
	require.True(t, found)
	assert.NotEqual(t, secret, d.TokenHash)
	assert.Equal(t, Digest(secret), d.TokenHash)
	assert.Empty(t, d.PreviousTokenHash)
	assert.False(t, d.Revoked)
	assert.True(t, d.ExpiresUTC.Equal(now.Add(15*24*time.Hour)))
}

func TestRefreshManager_IssueRejectsBadUserID(t *testing.T) {
	m := NewRefreshManager(newMemorySlotStore(), time.Hour)

	_, err := m.Issue(context.Background(), "", time.Now())
	assert.Error(t, err)

	_, err = m.Issue(context.Background(), "user|1", time.Now())
	assert.Error(t, err)
}

func TestRefreshManager_ValidateFreshToken(t *testing.T) {
	store := newMemorySlotStore()
	m := NewRefreshManager(store, time.Hour)
	now := time.Now().UTC()

	cookie, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)

	userID, err := m.Validate(context.Background(), cookie, now.Add(time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestRefreshManager_ExpiredTokenLeavesSlotUntouched(t *testing.T) {
	store := newMemorySlotStore()
	ttl := 15 * 24 * time.Hour
	m := NewRefreshManager(store, ttl)
	now := time.Now().UTC()

	cookie, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)
	before, _ := store.get("user-1")

	_, err = m.Validate(context.Background(), cookie, now.Add(ttl).Add(time.Second))
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.NotErrorIs(t, err, ErrReuseDetected)

	after, found := store.get("user-1")
	require.True(t, found)
	assert.Equal(t, before, after)
}

func TestRefreshManager_MalformedCookieValues(t *testing.T) {
	m := NewRefreshManager(newMemorySlotStore(), time.Hour)
	now := time.Now().UTC()

	for _, v := range []string{"", "nodelimiter", "user-1|", "|secret", "a|b|c"} {
		_, err := m.Validate(context.Background(), v, now)
		assert.ErrorIs(t, err, ErrInvalidSession, "value %q", v)
	}
}

func TestRefreshManager_UnknownUserRejected(t *testing.T) {
	m := NewRefreshManager(newMemorySlotStore(), time.Hour)

	_, err := m.Validate(context.Background(), "ghost|secret", time.Now().UTC())
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRefreshManager_TamperedSecretRejected(t *testing.T) {
	store := newMemorySlotStore()
	m := NewRefreshManager(store, time.Hour)
	now := time.Now().UTC()

	cookie, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)

	tampered := []byte(cookie)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = m.Validate(context.Background(), string(tampered), now)
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.NotErrorIs(t, err, ErrReuseDetected)

	d, _ := store.get("user-1")
	assert.False(t, d.Revoked)
}

func TestRefreshManager_RotationCarriesPreviousHash(t *testing.T) {
	store := newMemorySlotStore()
	m := NewRefreshManager(store, time.Hour)
	now := time.Now().UTC()

	_, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)
	firstDesc, _ := store.get("user-1")

	second, err := m.Issue(context.Background(), "user-1", now.Add(time.Minute))
	require.NoError(t, err)

	d, _ := store.get("user-1")
	assert.Equal(t, firstDesc.TokenHash, d.PreviousTokenHash)

	_, err = m.Validate(context.Background(), second, now.Add(2*time.Minute))
	assert.NoError(t, err)
}

func TestRefreshManager_ReuseRevokesCurrentToken(t *testing.T) {
	store := newMemorySlotStore()
	m := NewRefreshManager(store, time.Hour)
	now := time.Now().UTC()

	old, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)
	current, err := m.Issue(context.Background(), "user-1", now.Add(time.Minute))
	require.NoError(t, err)

	// Replaying the rotated-out token trips reuse detection.
	_, err = m.Validate(context.Background(), old, now.Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrReuseDetected)
	assert.ErrorIs(t, err, ErrInvalidSession)

	d, _ := store.get("user-1")
	assert.True(t, d.Revoked)

	// The legitimate holder is logged out too.
	_, err = m.Validate(context.Background(), current, now.Add(3*time.Minute))
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRefreshManager_TwoGenerationsBackIsPlainInvalid(t *testing.T) {
	store := newMemorySlotStore()
	m := NewRefreshManager(store, time.Hour)
	now := time.Now().UTC()

	r1, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)
	_, err = m.Issue(context.Background(), "user-1", now.Add(time.Minute))
	require.NoError(t, err)
	r3, err := m.Issue(context.Background(), "user-1", now.Add(2*time.Minute))
	require.NoError(t, err)

	// r1's digest is neither current nor previous anymore; its replay is
	// indistinguishable from garbage and must not revoke the live token.
	_, err = m.Validate(context.Background(), r1, now.Add(3*time.Minute))
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.NotErrorIs(t, err, ErrReuseDetected)

	userID, err := m.Validate(context.Background(), r3, now.Add(4*time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestRefreshManager_RevokedSlotRejectsEverything(t *testing.T) {
	store := newMemorySlotStore()
	m := NewRefreshManager(store, time.Hour)
	now := time.Now().UTC()

	cookie, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(context.Background(), "user-1"))

	_, err = m.Validate(context.Background(), cookie, now.Add(time.Minute))
	assert.ErrorIs(t, err, ErrInvalidSession)

	// Revoking an already empty slot stays a no-op.
	assert.NoError(t, m.Revoke(context.Background(), "user-1"))
}

func TestRefreshManager_StoreErrorsPassThrough(t *testing.T) {
	store := newMemorySlotStore()
	m := NewRefreshManager(store, time.Hour)
	now := time.Now().UTC()

	cookie, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)

	storeDown := assert.AnError
	store.mu.Lock()
	store.loadErr = storeDown
	store.mu.Unlock()

	_, err = m.Validate(context.Background(), cookie, now.Add(time.Minute))
	assert.ErrorIs(t, err, storeDown)
	assert.NotErrorIs(t, err, ErrInvalidSession)
}

func TestRefreshManager_IssueAfterExpiryDropsPreviousHash(t *testing.T) {
	store := newMemorySlotStore()
	ttl := time.Hour
	m := NewRefreshManager(store, ttl)
	now := time.Now().UTC()

	_, err := m.Issue(context.Background(), "user-1", now)
	require.NoError(t, err)

	// Re-login after the old token expired; the dead digest is not worth
	// carrying as a reuse tripwire.
	_, err = m.Issue(context.Background(), "user-1", now.Add(ttl).Add(time.Minute))
	require.NoError(t, err)

	d, _ := store.get("user-1")
	assert.Empty(t, d.PreviousTokenHash)
}

func TestRefreshManager_ConcurrentIssuesSerialize(t *testing.T) {
	store := newMemorySlotStore()
	m := NewRefreshManager(store, time.Hour)
	now := time.Now().UTC()

	const workers = 16
	var wg sync.WaitGroup
	cookies := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cookie, err := m.Issue(context.Background(), "user-1", now)
			if assert.NoError(t, err) {
				cookies <- cookie
			}
		}()
	}
	wg.Wait()
	close(cookies)

	// Every issue won the lock in turn: all secrets distinct, no lost writes.
	seen := make(map[string]bool)
	for cookie := range cookies {
		seen[cookie] = true
	}
	assert.Len(t, seen, workers)

	// The slot holds exactly one of the issued secrets as current and one as
	// previous; a torn write would leave digests matching nothing.
	d, found := store.get("user-1")
	require.True(t, found)

	current, previous := 0, 0
	for cookie := range seen {
		_, secret, ok := strings.Cut(cookie, "|")
		require.True(t, ok)
		switch Digest(secret) {
		case d.TokenHash:
			current++
		case d.PreviousTokenHash:
			previous++
		}
	}
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, previous)
}
