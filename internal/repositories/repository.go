package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/rohits-web03/goalai/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	// Create assigns the next identifier to u and stores it. Returns
	// ErrDuplicate when the email is already taken.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Count(ctx context.Context) (int, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID int64) error
}

// OnboardingRepository merges atomically: concurrent merges for the same
// user never lose fields.
type OnboardingRepository interface {
	Merge(ctx context.Context, userID int64, fields models.Fields, at time.Time) error
	Find(ctx context.Context, userID int64) (*models.Onboarding, error)
}

type ProfileRepository interface {
	Merge(ctx context.Context, userID int64, fields models.Fields, at time.Time) error
	Find(ctx context.Context, userID int64) (*models.Profile, error)
}

type ChatRepository interface {
	Append(ctx context.Context, msg *models.ChatMessage) error
	// List returns the user's messages in insertion order.
	List(ctx context.Context, userID int64) ([]models.ChatMessage, error)
	// TrimOldest drops all but the newest keep messages and returns the
	// dropped ones in insertion order.
	TrimOldest(ctx context.Context, userID int64, keep int) ([]models.ChatMessage, error)
	// DeleteByIDs removes exactly the given messages of userID. Unknown ids
	// are ignored.
	DeleteByIDs(ctx context.Context, userID int64, ids []int64) error
}

// Store bundles the tables the services work with, so the backing
// implementation can be swapped without touching them.
type Store struct {
	Users      UserRepository
	Sessions   SessionRepository
	Onboarding OnboardingRepository
	Profiles   ProfileRepository
	Chats      ChatRepository
}
