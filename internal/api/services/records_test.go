package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/goalai/internal/logging"
	"github.com/rohits-web03/goalai/internal/models"
	"github.com/rohits-web03/goalai/internal/repositories"
)

// ---- fakes ----

type fakeArchiver struct {
	mu       sync.Mutex
	archived [][]models.ChatMessage
	err      error
	links    []repositories.ArchiveLink
}

func (f *fakeArchiver) Archive(_ context.Context, userID int64, msgs []models.ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.archived = append(f.archived, append([]models.ChatMessage(nil), msgs...))
	return fmt.Sprintf("chats/%d/%d.json", userID, len(f.archived)), nil
}

func (f *fakeArchiver) List(context.Context, int64, time.Duration) ([]repositories.ArchiveLink, error) {
	return f.links, f.err
}

// gatedArchiver holds its first Archive call until release is closed.
type gatedArchiver struct {
	fakeArchiver
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newGatedArchiver() *gatedArchiver {
	return &gatedArchiver{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedArchiver) Archive(ctx context.Context, userID int64, msgs []models.ChatMessage) (string, error) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.started)
		<-g.release
	}
	return g.fakeArchiver.Archive(ctx, userID, msgs)
}

func newTestRecords(store *repositories.Store, limit int, archiver repositories.ChatArchiver) *RecordService {
	return NewRecordService(store, RecordOptions{
		ChatHistoryLimit: limit,
		Archiver:         archiver,
		Now:              newFakeClock().Now,
	}, logging.Discard())
}

func TestRecordService_OnboardingMerge(t *testing.T) {
	ctx := context.Background()
	records := newTestRecords(repositories.NewMemoryStore(), 0, nil)

	o, err := records.GetOnboarding(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, o)

	require.NoError(t, records.SaveOnboarding(ctx, 1, models.Fields{"examType": "JEE", "studyHours": 6}))
	require.NoError(t, records.SaveOnboarding(ctx, 1, models.Fields{"studyHours": 8, "targetYear": 2026}))

	o, err = records.GetOnboarding(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.True(t, o.Completed)
	assert.Equal(t, models.Fields{"examType": "JEE", "studyHours": 8, "targetYear": 2026}, o.Fields)
}

func TestRecordService_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	records := newTestRecords(repositories.NewMemoryStore(), 0, nil)

	require.NoError(t, records.SaveOnboarding(ctx, 1, models.Fields{"examType": "JEE"}))
	require.NoError(t, records.AppendChat(ctx, 1, "hi", "hello", models.ModeGeneral, time.Now()))

	o, err := records.GetOnboarding(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, o)

	msgs, err := records.ListChats(ctx, 2, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestRecordService_UpdateProfileRenamesUser(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	records := newTestRecords(store, 0, nil)

	user, err := store.Users.Create(ctx, &models.User{Email: "a@x.io", Name: "Asha"})
	require.NoError(t, err)

	require.NoError(t, records.UpdateProfile(ctx, user.ID, models.Fields{"city": "Pune"}))
	require.NoError(t, records.UpdateProfile(ctx, user.ID, models.Fields{"name": "Asha K"}))

	p, err := records.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Fields{"city": "Pune", "name": "Asha K"}, p.Fields)

	renamed, err := store.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha K", renamed.Name)
}

func TestRecordService_ChatOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	records := newTestRecords(repositories.NewMemoryStore(), 0, nil)

	for i := range 5 {
		require.NoError(t, records.AppendChat(ctx, 1, fmt.Sprint("q", i), fmt.Sprint("a", i), models.ModeGeneral, time.Now()))
	}

	all, err := records.ListChats(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, m := range all {
		assert.Equal(t, fmt.Sprint("q", i), m.UserMessage)
	}

	last, err := records.ListChats(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "q3", last[0].UserMessage)
	assert.Equal(t, "q4", last[1].UserMessage)
}

func TestRecordService_RetentionTrims(t *testing.T) {
	ctx := context.Background()
	records := newTestRecords(repositories.NewMemoryStore(), 3, nil)

	for i := range 5 {
		require.NoError(t, records.AppendChat(ctx, 1, fmt.Sprint("q", i), "a", models.ModeGeneral, time.Now()))
	}

	msgs, err := records.ListChats(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "q2", msgs[0].UserMessage)
	assert.Equal(t, "q4", msgs[2].UserMessage)
}

func TestRecordService_RetentionArchivesOverflow(t *testing.T) {
	ctx := context.Background()
	archiver := &fakeArchiver{}
	records := newTestRecords(repositories.NewMemoryStore(), 2, archiver)

	for i := range 4 {
		require.NoError(t, records.AppendChat(ctx, 1, fmt.Sprint("q", i), "a", models.ModeGeneral, time.Now()))
	}

	require.Len(t, archiver.archived, 2)
	assert.Equal(t, "q0", archiver.archived[0][0].UserMessage)
	assert.Equal(t, "q1", archiver.archived[1][0].UserMessage)

	msgs, err := records.ListChats(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "q2", msgs[0].UserMessage)
}

func TestRecordService_RetentionKeepsHistoryWhenArchiveFails(t *testing.T) {
	ctx := context.Background()
	archiver := &fakeArchiver{err: errors.New("bucket unavailable")}
	records := newTestRecords(repositories.NewMemoryStore(), 2, archiver)

	for i := range 4 {
		require.NoError(t, records.AppendChat(ctx, 1, fmt.Sprint("q", i), "a", models.ModeGeneral, time.Now()))
	}

	msgs, err := records.ListChats(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 4)
}

func TestRecordService_ChatArchives(t *testing.T) {
	ctx := context.Background()

	none := newTestRecords(repositories.NewMemoryStore(), 0, nil)
	links, err := none.ChatArchives(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, links)
	assert.Empty(t, links)

	archiver := &fakeArchiver{links: []repositories.ArchiveLink{{Key: "chats/1/1.json", URL: "https://example.test/1"}}}
	withArchive := newTestRecords(repositories.NewMemoryStore(), 0, archiver)
	links, err = withArchive.ChatArchives(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, archiver.links, links)
}

func TestRecordService_RetentionKeepsMessagesAppendedDuringArchive(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	archiver := newGatedArchiver()
	records := newTestRecords(store, 2, archiver)

	for _, q := range []string{"m1", "m2"} {
		require.NoError(t, records.AppendChat(ctx, 1, q, "a", models.ModeGeneral, time.Now()))
	}

	done := make(chan error, 1)
	go func() {
		done <- records.AppendChat(ctx, 1, "m3", "a", models.ModeGeneral, time.Now())
	}()

	<-archiver.started
	// lands while the upload of m1 is in flight
	require.NoError(t, store.Chats.Append(ctx, &models.ChatMessage{UserID: 1, UserMessage: "m4", Mode: models.ModeGeneral, Timestamp: time.Now()}))
	close(archiver.release)
	require.NoError(t, <-done)

	seen := map[string]int{}
	kept, err := records.ListChats(ctx, 1, 0)
	require.NoError(t, err)
	for _, m := range kept {
		seen[m.UserMessage]++
	}
	for _, chunk := range archiver.archived {
		for _, m := range chunk {
			seen[m.UserMessage]++
		}
	}

	for _, q := range []string{"m1", "m2", "m3", "m4"} {
		assert.Equal(t, 1, seen[q], "%s must be kept or archived exactly once", q)
	}
	require.Len(t, archiver.archived, 1)
	assert.Equal(t, "m1", archiver.archived[0][0].UserMessage)
	assert.Len(t, kept, 3)
}
