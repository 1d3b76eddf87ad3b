package tokens

import (
	"errors"
	"fmt"
)

// ErrInvalidSession covers every refresh validation failure the caller is
// allowed to see: malformed cookie, missing slot, revoked, expired, wrong
// secret. Callers answer all of them with "please re-authenticate".
var ErrInvalidSession = errors.New("invalid session")

// ErrReuseDetected is raised when a presented secret matches the previous
// (rotated-out) digest. It wraps ErrInvalidSession, so handlers that only
// check errors.Is(err, ErrInvalidSession) respond identically; the distinct
// sentinel exists for logging, since a replay suggests token theft.
var ErrReuseDetected = fmt.Errorf("refresh token reuse detected: %w", ErrInvalidSession)
