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
)

// archiveLinkTTL bounds how long presigned archive links stay usable.
const archiveLinkTTL = 15 * time.Minute

type RecordOptions struct {
	// ChatHistoryLimit caps the messages kept per user; 0 keeps everything.
	ChatHistoryLimit int
	// Archiver receives trimmed history. Nil drops it.
	Archiver repositories.ChatArchiver
	Now      func() time.Time
}

// RecordService owns the per-user tables. Callers must only ever pass the
// id of the authenticated user: no ownership checks happen here.
type RecordService struct {
	users      repositories.UserRepository
	onboarding repositories.OnboardingRepository
	profiles   repositories.ProfileRepository
	chats      repositories.ChatRepository
	archiver   repositories.ChatArchiver
	chatLimit  int
	now        func() time.Time
	log        logging.Logger

	retaining sync.Map // user id -> *sync.Mutex
}

func NewRecordService(store *repositories.Store, opts RecordOptions, log logging.Logger) *RecordService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &RecordService{
		users:      store.Users,
		onboarding: store.Onboarding,
		profiles:   store.Profiles,
		chats:      store.Chats,
		archiver:   opts.Archiver,
		chatLimit:  opts.ChatHistoryLimit,
		now:        now,
		log:        log,
	}
}

// SaveOnboarding merges fields into the user's onboarding profile and marks
// it completed.
func (s *RecordService) SaveOnboarding(ctx context.Context, userID int64, fields models.Fields) error {
	if err := s.onboarding.Merge(ctx, userID, fields, s.now()); err != nil {
		return fmt.Errorf("save onboarding: %w", err)
	}
	return nil
}

// GetOnboarding returns nil without error when nothing was recorded yet.
func (s *RecordService) GetOnboarding(ctx context.Context, userID int64) (*models.Onboarding, error) {
	o, err := s.onboarding.Find(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get onboarding: %w", err)
	}
	return o, nil
}

// UpdateProfile merges fields into the profile table. A non-empty "name"
// also renames the user.
func (s *RecordService) UpdateProfile(ctx context.Context, userID int64, fields models.Fields) error {
	if err := s.profiles.Merge(ctx, userID, fields, s.now()); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if name := fields.String("name"); name != "" {
		if err := s.users.UpdateName(ctx, userID, name); err != nil {
			return fmt.Errorf("rename user: %w", err)
		}
	}
	return nil
}

func (s *RecordService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	p, err := s.profiles.Find(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// AppendChat records one exchange and then applies the retention policy.
// Retention problems are logged, never returned.
func (s *RecordService) AppendChat(ctx context.Context, userID int64, userMessage, aiResponse string, mode models.ChatMode, ts time.Time) error {
	msg := &models.ChatMessage{
		UserID:      userID,
		UserMessage: userMessage,
		AIResponse:  aiResponse,
		Mode:        mode,
		Timestamp:   ts,
	}
	if err := s.chats.Append(ctx, msg); err != nil {
		return fmt.Errorf("append chat: %w", err)
	}
	s.enforceRetention(ctx, userID)
	return nil
}

// ListChats returns the history in insertion order. A positive limit keeps
// only the newest limit messages.
func (s *RecordService) ListChats(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error) {
	msgs, err := s.chats.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

// ChatArchives lists download links for history moved out by retention.
func (s *RecordService) ChatArchives(ctx context.Context, userID int64) ([]repositories.ArchiveLink, error) {
	if s.archiver == nil {
		return []repositories.ArchiveLink{}, nil
	}
	links, err := s.archiver.List(ctx, userID, archiveLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("list chat archives: %w", err)
	}
	return links, nil
}

func (s *RecordService) enforceRetention(ctx context.Context, userID int64) {
	if s.chatLimit <= 0 {
		return
	}
	log := logging.FromContext(ctx, s.log)

	if s.archiver == nil {
		dropped, err := s.chats.TrimOldest(ctx, userID, s.chatLimit)
		if err != nil {
			log.Warn(ctx, "chat retention: trim failed", "user_id", userID, "error", err)
			return
		}
		if len(dropped) > 0 {
			log.Debug(ctx, "chat history trimmed", "user_id", userID, "messages", len(dropped))
		}
		return
	}

	// One archive run per user at a time; a skipped run is picked up by
	// the next append.
	mu, _ := s.retaining.LoadOrStore(userID, &sync.Mutex{})
	if !mu.(*sync.Mutex).TryLock() {
		return
	}
	defer mu.(*sync.Mutex).Unlock()

	msgs, err := s.chats.List(ctx, userID)
	if err != nil {
		log.Warn(ctx, "chat retention: list failed", "user_id", userID, "error", err)
		return
	}
	overflow := len(msgs) - s.chatLimit
	if overflow <= 0 {
		return
	}
	archived := msgs[:overflow]
	key, err := s.archiver.Archive(ctx, userID, archived)
	if err != nil {
		// Keep the history; the next append retries.
		log.Warn(ctx, "chat retention: archive failed", "user_id", userID, "error", err)
		return
	}

	// Only what reached the archive is deleted, never rows appended meanwhile.
	ids := make([]int64, len(archived))
	for i, m := range archived {
		ids[i] = m.ID
	}
	if err := s.chats.DeleteByIDs(ctx, userID, ids); err != nil {
		log.Warn(ctx, "chat retention: delete failed", "user_id", userID, "key", key, "error", err)
		return
	}
	log.Info(ctx, "chat history archived", "user_id", userID, "key", key, "messages", len(ids))
}
