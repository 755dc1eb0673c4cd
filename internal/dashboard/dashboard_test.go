package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/logger"
	"github.com/zhubert/studydesk/internal/models"
)

type fakeService struct {
	apps     []models.Application
	docs     []models.Document
	chats    []models.ChatSummary
	appsErr  error
	docsErr  error
	chatsErr error
}

func (f *fakeService) ListStudentApplications(ctx context.Context, id string) ([]models.Application, error) {
	return f.apps, f.appsErr
}

func (f *fakeService) ListStudentDocuments(ctx context.Context, id string) ([]models.Document, error) {
	return f.docs, f.docsErr
}

func (f *fakeService) ListChats(ctx context.Context) ([]models.ChatSummary, error) {
	return f.chats, f.chatsErr
}

var errDown = errors.E(errors.Op("test"), errors.KindNetwork, "down")

func TestFetch(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := &fakeService{
		apps: []models.Application{
			{ID: "a1", Status: "Pending", StatusColor: "#9e9e9e"},
			{ID: "a2", Status: "Offer", StatusColor: "#43a047"},
			{ID: "a3", Status: "Pending", StatusColor: "#9e9e9e"},
		},
		docs: []models.Document{{ID: "d1"}},
		chats: []models.ChatSummary{
			{ApplicationID: "a1", UpdatedAt: t0, UnreadCount: 1},
			{ApplicationID: "a2", UpdatedAt: t0.Add(time.Hour), UnreadCount: 2},
		},
	}

	s, err := Fetch(context.Background(), svc, "s1", logger.Discard())
	require.NoError(t, err)

	assert.False(t, s.Degraded())
	assert.Len(t, s.Applications, 3)
	assert.Len(t, s.Documents, 1)
	assert.Equal(t, 3, s.Unread)
	assert.Equal(t, 2, s.Remaining)
	assert.Equal(t, "a2", s.Chats[0].ApplicationID, "newest chat first")
	assert.Equal(t, []StatusCount{
		{Status: "Pending", Color: "#9e9e9e", Count: 2},
		{Status: "Offer", Color: "#43a047", Count: 1},
	}, s.StatusCounts())
}

func TestFetch_PartialFailure(t *testing.T) {
	svc := &fakeService{
		apps:     []models.Application{{ID: "a1"}},
		docsErr:  errDown,
		chatsErr: errDown,
	}

	s, err := Fetch(context.Background(), svc, "s1", logger.Discard())
	require.NoError(t, err)

	assert.True(t, s.Degraded())
	assert.Equal(t, []string{"chats", "documents"}, s.Failed)
	assert.Equal(t, []models.Application{{ID: "a1"}}, s.Applications, "healthy parts are kept")
	assert.NotEmpty(t, s.Documents)
	require.Len(t, s.Chats, 1)
	assert.Equal(t, "a1", s.Chats[0].ApplicationID)
}

func TestFetch_RemainingNeverNegative(t *testing.T) {
	apps := make([]models.Application, 7)
	s, err := Fetch(context.Background(), &fakeService{apps: apps}, "s1", logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Remaining)
}

func TestDashboard_Load(t *testing.T) {
	d := New(&fakeService{apps: []models.Application{{ID: "a1"}}}, "s1", logger.Discard())
	_, ok := d.Summary()
	assert.False(t, ok)

	require.NoError(t, d.Load(context.Background()))
	s, ok := d.Summary()
	require.True(t, ok)
	assert.Len(t, s.Applications, 1)
	assert.False(t, d.Loading())
}

func TestFetch_OnlyTheStudentsChats(t *testing.T) {
	svc := &fakeService{
		apps: []models.Application{{ID: "a1"}},
		chats: []models.ChatSummary{
			{ApplicationID: "a1", UnreadCount: 1},
			{ApplicationID: "other-student-app", UnreadCount: 7},
		},
	}
	s, err := Fetch(context.Background(), svc, "s1", logger.Discard())
	require.NoError(t, err)
	require.Len(t, s.Chats, 1)
	assert.Equal(t, "a1", s.Chats[0].ApplicationID)
	assert.Equal(t, 1, s.Unread)
}

func TestDashboard_CanceledLoadKeepsSummary(t *testing.T) {
	svc := &fakeService{apps: []models.Application{{ID: "a1"}}}
	d := New(svc, "s1", logger.Discard())
	require.NoError(t, d.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.apps, svc.appsErr = nil, context.Canceled
	err := d.Load(ctx)
	assert.True(t, errors.Is(err, errors.KindTimeout))

	s, ok := d.Summary()
	require.True(t, ok)
	assert.Len(t, s.Applications, 1, "previous summary survives")
	assert.False(t, d.Loading())
}
