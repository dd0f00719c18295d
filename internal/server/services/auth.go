// Package services contains server-side business logic composed from
// repositories, the blob store and the auth cache.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"

	"webvault/internal/common"
	"webvault/internal/server/auth"
	"webvault/internal/server/repositories/repomanager"
)

// VerifyOutcome is the result of one credential check.
type VerifyOutcome int

const (
	// VerifyRejected: malformed secret, wrong secret, or lost bootstrap race.
	VerifyRejected VerifyOutcome = iota
	// VerifyAccepted: the secret matches the stored credential.
	VerifyAccepted
	// VerifyBootstrapped: no credential existed; this secret became it.
	VerifyBootstrapped
	// VerifyFailed: the store failed; nothing can be concluded.
	VerifyFailed
)

// AuthService verifies API callers against the single admin credential and
// bootstraps it on first use. A process-local TTL cache of verified digests
// avoids a store round trip on every authenticated call; correctness never
// depends on the cache, only on the store.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       *auth.TokenCache
}

// NewAuthService constructs an AuthService around the given cache instance.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cache *auth.TokenCache) *AuthService {
	return &AuthService{db: db, repomanager: m, cache: cache}
}

// Verify checks the candidate secret and returns one of the four outcomes.
// The returned error is non-nil only alongside VerifyFailed.
//
// Secrets shorter than auth.MinSecretLength are rejected before any store
// access. When no credential exists yet, the candidate's digest is persisted
// as the credential; the stores primary key guards the race between two
// concurrent bootstrap attempts, and the loser is told Rejected. After a
// successful bootstrap the whole cache is cleared so the next call per
// digest re-verifies from the store.
func (s *AuthService) Verify(ctx context.Context, secret string) (VerifyOutcome, error) {
	if len(secret) < auth.MinSecretLength {
		return VerifyRejected, nil
	}
	digest := auth.DigestSecret(secret)

	// Fast path: recently verified in this process.
	if s.cache.Contains(digest) {
		return VerifyAccepted, nil
	}

	repo := s.repomanager.Stores(s.db)

	stored, err := repo.GetAdminToken(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return s.bootstrap(ctx, digest)
		}
		return VerifyFailed, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(digest)) == 1 {
		s.cache.Add(digest)
		return VerifyAccepted, nil
	}
	return VerifyRejected, nil
}

func (s *AuthService) bootstrap(ctx context.Context, digest string) (VerifyOutcome, error) {
	repo := s.repomanager.Stores(s.db)
	if err := repo.CreateAdminToken(ctx, digest); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// Another caller bootstrapped first; a retry re-verifies
			// against the now-existing credential.
			return VerifyRejected, nil
		}
		return VerifyFailed, err
	}
	s.cache.Clear()
	return VerifyBootstrapped, nil
}
