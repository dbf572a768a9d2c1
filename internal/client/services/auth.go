package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/repositories/metadata"
	"github.com/miy4x/shigezane-admin/internal/dbx"
	"github.com/miy4x/shigezane-admin/internal/logging"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionExpired = errors.New("session expired, please log in again")
)

const sessionKey = "session"

// Authenticator exchanges credentials for a token. *client.API implements it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.LoginResult, error)
}

// AuthService signs the operator in and out and keeps the session across
// restarts.
//
// Contract:
//   - Login: authenticate against the backend, persist and activate the session.
//   - Restore: activate the persisted session if it has not expired.
//   - Logout: forget the session locally.
//   - Current: the active session, ErrNotLoggedIn or ErrSessionExpired.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Restore(ctx context.Context) (models.Session, error)
	Logout(ctx context.Context) error
	Current() (models.Session, error)
}

type authService struct {
	api    Authenticator
	db     *sql.DB
	state  *SessionState
	logger logging.Logger
	now    func() time.Time
}

func NewAuthService(api Authenticator, db *sql.DB, state *SessionState, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{api: api, db: db, state: state, logger: logger, now: time.Now}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Session, error) {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}
	if res.Token == "" {
		return models.Session{}, errors.New("login error: response carries no token")
	}

	session := models.Session{Token: res.Token, User: res.User}
	claims, err := parseClaims(res.Token)
	if err != nil {
		// Opaque tokens are accepted; they simply never expire locally.
		a.logger.Debug(ctx, "session token is not a JWT", "error", err)
	} else {
		if exp, _ := claims.GetExpirationTime(); exp != nil {
			session.ExpiresAt = exp.Time
		}
		if session.User.ID == "" {
			session.User.ID, _ = claims.GetSubject()
		}
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.SetJSON(ctx, metadata.NewSQLiteRepository(tx), sessionKey, session)
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("session saving error: %w", err)
	}

	a.state.Set(session)
	a.logger.Info(ctx, "logged in", "user", session.User.Email)
	return session, nil
}

// parseClaims reads the claims without verifying the signature; the
// backend verifies every request, the client only needs the expiry.
func parseClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (a *authService) Restore(ctx context.Context) (models.Session, error) {
	repo := metadata.NewSQLiteRepository(a.db)
	session, ok, err := metadata.GetJSON[models.Session](ctx, repo, sessionKey)
	if err != nil {
		return models.Session{}, err
	}
	if !ok {
		return models.Session{}, ErrNotLoggedIn
	}
	if session.Expired(a.now()) {
		if err := repo.Delete(ctx, sessionKey); err != nil {
			a.logger.Warn(ctx, "failed to drop expired session", "error", err)
		}
		return models.Session{}, ErrSessionExpired
	}
	a.state.Set(session)
	return session, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.state.Clear()
	if err := metadata.NewSQLiteRepository(a.db).Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("session removal error: %w", err)
	}
	return nil
}

func (a *authService) Current() (models.Session, error) {
	s := a.state.Current()
	if s == nil {
		return models.Session{}, ErrNotLoggedIn
	}
	if s.Expired(a.now()) {
		return models.Session{}, ErrSessionExpired
	}
	return *s, nil
}
