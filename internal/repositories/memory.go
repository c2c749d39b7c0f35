package repositories

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rohits-web03/goalai/internal/models"
)

// NewMemoryStore returns a process-local Store. Nothing survives a restart.
func NewMemoryStore() *Store {
	return &Store{
		Users:      newMemoryUsers(),
		Sessions:   &memorySessions{rows: make(map[string]models.Session)},
		Onboarding: &memoryOnboarding{rows: make(map[int64]models.Onboarding)},
		Profiles:   &memoryProfiles{rows: make(map[int64]models.Profile)},
		Chats:      &memoryChats{rows: make(map[int64][]models.ChatMessage)},
	}
}

type memoryUsers struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]models.User
	byEmail map[string]int64
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{
		nextID:  1,
		byID:    make(map[int64]models.User),
		byEmail: make(map[string]int64),
	}
}

func (m *memoryUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[u.Email]; ok {
		return nil, ErrDuplicate
	}
	row := *u
	row.ID = m.nextID
	m.nextID++
	m.byID[row.ID] = row
	m.byEmail[row.Email] = row.ID
	return &row, nil
}

func (m *memoryUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	row := m.byID[id]
	return &row, nil
}

func (m *memoryUsers) UpdateName(_ context.Context, id int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	row.Name = name
	m.byID[id] = row
	return nil
}

func (m *memoryUsers) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID), nil
}

type memorySessions struct {
	mu   sync.RWMutex
	rows map[string]models.Session
}

func (m *memorySessions) Create(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[s.ID]; ok {
		return ErrDuplicate
	}
	m.rows[s.ID] = *s
	return nil
}

func (m *memorySessions) Find(_ context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memorySessions) DeleteByUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.rows {
		if s.UserID == userID {
			delete(m.rows, id)
		}
	}
	return nil
}

type memoryOnboarding struct {
	mu   sync.RWMutex
	rows map[int64]models.Onboarding
}

func (m *memoryOnboarding) Merge(_ context.Context, userID int64, fields models.Fields, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := m.rows[userID]
	m.rows[userID] = models.Onboarding{
		UserID:    userID,
		Fields:    row.Fields.Merge(fields),
		Completed: true,
		UpdatedAt: at,
	}
	return nil
}

func (m *memoryOnboarding) Find(_ context.Context, userID int64) (*models.Onboarding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[userID]
	if !ok {
		return nil, ErrNotFound
	}
	row.Fields = row.Fields.Merge(nil)
	return &row, nil
}

type memoryProfiles struct {
	mu   sync.RWMutex
	rows map[int64]models.Profile
}

func (m *memoryProfiles) Merge(_ context.Context, userID int64, fields models.Fields, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := m.rows[userID]
	m.rows[userID] = models.Profile{
		UserID:    userID,
		Fields:    row.Fields.Merge(fields),
		UpdatedAt: at,
	}
	return nil
}

func (m *memoryProfiles) Find(_ context.Context, userID int64) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[userID]
	if !ok {
		return nil, ErrNotFound
	}
	row.Fields = row.Fields.Merge(nil)
	return &row, nil
}

type memoryChats struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64][]models.ChatMessage
}

func (m *memoryChats) Append(_ context.Context, msg *models.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	msg.ID = m.nextID
	m.rows[msg.UserID] = append(m.rows[msg.UserID], *msg)
	return nil
}

func (m *memoryChats) List(_ context.Context, userID int64) ([]models.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.rows[userID]
	out := make([]models.ChatMessage, len(rows))
	copy(out, rows)
	return out, nil
}

func (m *memoryChats) TrimOldest(_ context.Context, userID int64, keep int) ([]models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rows[userID]
	if keep < 0 || len(rows) <= keep {
		return nil, nil
	}
	cut := len(rows) - keep
	dropped := make([]models.ChatMessage, cut)
	copy(dropped, rows[:cut])
	m.rows[userID] = append([]models.ChatMessage(nil), rows[cut:]...)
	return dropped, nil
}

func (m *memoryChats) DeleteByIDs(_ context.Context, userID int64, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rows[userID]
	kept := make([]models.ChatMessage, 0, len(rows))
	for _, row := range rows {
		if !slices.Contains(ids, row.ID) {
			kept = append(kept, row)
		}
	}
	m.rows[userID] = kept
	return nil
}
