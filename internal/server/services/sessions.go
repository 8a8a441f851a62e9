package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/dbx"
	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/dmitrijs2005/loggy/internal/server/auth"
	"github.com/dmitrijs2005/loggy/internal/server/config"
	"github.com/dmitrijs2005/loggy/internal/server/models"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SessionMeta is request information recorded alongside a new session.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// IssuedSession is the token handed to the client and its expiry.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	validity    time.Duration
	now         func() time.Time
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		validity:    cfg.SessionValidityDuration,
		now:         time.Now,
	}
}

// Issue records a new session for userID and returns its signed token.
func (s *SessionService) Issue(ctx context.Context, userID string, meta SessionMeta) (*IssuedSession, error) {
	return s.issue(ctx, s.db, userID, meta)
}

func (s *SessionService) issue(ctx context.Context, db dbx.DBTX, userID string, meta SessionMeta) (*IssuedSession, error) {
	now := s.now().UTC()

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserAgent: optionalString(meta.UserAgent),
		IPAddress: optionalString(meta.IPAddress),
		ExpiresAt: now.Add(s.validity),
	}

	if err := s.repomanager.Sessions(db).Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateToken(userID, session.ID, s.jwtSecret, now, s.validity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &IssuedSession{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Authenticate resolves token to a user id. Missing, malformed, tampered,
// expired and revoked tokens all yield common.ErrorUnauthorized.
func (s *SessionService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrorUnauthorized
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return "", common.ErrorUnauthorized
	}

	session, err := s.repomanager.Sessions(s.db).Find(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error searching session: %w", err)
	}

	if session.UserID != claims.UserID() || !session.ExpiresAt.After(s.now()) {
		return "", common.ErrorUnauthorized
	}

	return session.UserID, nil
}

// Revoke deletes the session behind token. Tokens that do not verify have
// nothing to revoke and are ignored.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil
	}

	if err := s.repomanager.Sessions(s.db).Delete(ctx, claims.SessionID()); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions whose expiry has passed.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repomanager.Sessions(s.db).DeleteExpired(ctx, s.now())
}

// RunPurger calls PurgeExpired every interval until ctx is cancelled.
// A non-positive interval disables purging.
func (s *SessionService) RunPurger(ctx context.Context, interval time.Duration, l logging.Logger) {
	if interval <= 0 {
		l.Warn(ctx, "session purger disabled", "interval", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				l.Error(ctx, "session purge failed", "error", err)
				continue
			}
			if n > 0 {
				l.Info(ctx, "expired sessions purged", "count", n)
			}
		}
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
