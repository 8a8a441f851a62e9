package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/cryptox"
	"github.com/dmitrijs2005/loggy/internal/dbx"
	"github.com/dmitrijs2005/loggy/internal/server/models"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/loggy/internal/validation"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
	sessions    *SessionService
	dummyHash   string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher, sessions *SessionService) *UserService {
	// verified against when the email is unknown, so both paths cost one hash
	dummy, _ := hasher.Hash("loggy-dummy-password")

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		sessions:    sessions,
		dummyHash:   dummy,
	}
}

// Signup creates an account and its first session in one transaction.
// Invalid input yields validation.FieldErrors; a taken email yields
// common.ErrAlreadyExists.
func (s *UserService) Signup(ctx context.Context, email, password string, meta SessionMeta) (*models.User, *IssuedSession, error) {
	email = validation.NormalizeEmail(email)

	if !validation.ValidEmail(email) {
		return nil, nil, validation.FieldErrors{{Field: "email", Message: "Invalid email address"}}
	}
	if !validation.ValidPassword(password) {
		return nil, nil, validation.FieldErrors{{Field: "password", Message: validation.PasswordRuleMessage}}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	var user *models.User
	var session *IssuedSession

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, &models.User{Email: email, PasswordHash: hash})
		if err != nil {
			return err
		}
		session, err = s.sessions.issue(ctx, tx, user.ID, meta)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, nil, common.ErrAlreadyExists
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, session, nil
}

// Login checks credentials and issues a session. Unknown emails and wrong
// passwords are indistinguishable: both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string, meta SessionMeta) (*models.User, *IssuedSession, error) {
	email = validation.NormalizeEmail(email)

	if email == "" || password == "" {
		return nil, nil, validation.FieldErrors{{Field: "email", Message: "Email and password are required"}}
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, nil, common.ErrorUnauthorized
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		if hash, err := s.hasher.Hash(password); err == nil && repo.UpdatePasswordHash(ctx, user.ID, hash) == nil {
			user.PasswordHash = hash
		}
	}

	session, err := s.sessions.Issue(ctx, user.ID, meta)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Me returns the account behind an authenticated user id.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}
