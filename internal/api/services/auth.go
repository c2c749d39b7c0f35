package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rohits-web03/goalai/internal/logging"
	"github.com/rohits-web03/goalai/internal/models"
	"github.com/rohits-web03/goalai/internal/repositories"
	"github.com/rohits-web03/goalai/internal/utils"
)

var (
	ErrValidation         = errors.New("missing required fields")
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthResult is what a successful register or login hands back: the user
// without its verifier plus the cookie value for the new session.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type AuthOptions struct {
	Secret     string
	SessionTTL time.Duration
	// SingleSession revokes a user's previous sessions on every new login.
	SingleSession bool
	Now           func() time.Time
}

type AuthService struct {
	users         repositories.UserRepository
	sessions      repositories.SessionRepository
	hasher        PasswordHasher
	tokens        *SessionTokens
	ttl           time.Duration
	singleSession bool
	now           func() time.Time
	log           logging.Logger

	dummyOnce     sync.Once
	dummyVerifier string
}

func NewAuthService(store *repositories.Store, hasher PasswordHasher, opts AuthOptions, log logging.Logger) *AuthService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		users:         store.Users,
		sessions:      store.Sessions,
		hasher:        hasher,
		tokens:        NewSessionTokens(opts.Secret, now),
		ttl:           ttl,
		singleSession: opts.SingleSession,
		now:           now,
		log:           log,
	}
}

// SessionTTL is how long issued sessions (and their cookies) live.
func (s *AuthService) SessionTTL() time.Duration { return s.ttl }

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if email == "" || password == "" || name == "" {
		return nil, ErrValidation
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		// lost a race with a concurrent registration
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login never tells an unknown email apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		// Burn the same hashing work as a real check.
		s.hasher.Verify(password, s.dummy())
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user.PasswordHash == "" {
		// Provider-only account: same work as a real check.
		s.hasher.Verify(password, s.dummy())
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// LoginWithProvider signs in a user whose email was vouched for by an
// external identity provider. With create set the account must not exist
// yet; otherwise it must.
func (s *AuthService) LoginWithProvider(ctx context.Context, email, name string, create bool) (*AuthResult, error) {
	if email == "" {
		return nil, ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && create:
		return nil, ErrDuplicateEmail
	case errors.Is(err, repositories.ErrNotFound) && !create:
		return nil, ErrUserNotFound
	case errors.Is(err, repositories.ErrNotFound):
		if name == "" {
			name = email
		}
		user, err = s.users.Create(ctx, &models.User{Email: email, Name: name, CreatedAt: s.now()})
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.log.Info(ctx, "user registered via provider", "user_id", user.ID)
	case err != nil:
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return s.issue(ctx, user)
}

// Logout is idempotent: unknown, expired or garbled tokens are not errors.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	id, err := s.tokens.SessionIDIgnoringExpiry(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a cookie value to the id of the user owning it.
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrNotAuthenticated
	}
	id, err := s.tokens.SessionID(token)
	if err != nil {
		return 0, ErrNotAuthenticated
	}

	sess, err := s.sessions.Find(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return 0, ErrNotAuthenticated
	}
	if err != nil {
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	if sess.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, id); err != nil {
			s.log.Warn(ctx, "failed to drop expired session", "error", err)
		}
		return 0, ErrNotAuthenticated
	}
	return sess.UserID, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user.Public(), nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	if s.singleSession {
		if err := s.sessions.DeleteByUser(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("revoke sessions: %w", err)
		}
	}

	id, err := utils.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	now := s.now()
	sess := &models.Session{
		ID:        id,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.tokens.Sign(sess)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: token, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		v, err := s.hasher.Hash("not-a-real-password")
		if err == nil {
			s.dummyVerifier = v
		}
	})
	return s.dummyVerifier
}
