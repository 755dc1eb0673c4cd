package demo

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhubert/studydesk/internal/api"
	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/models"
)

var advisor = auth.Capability{UserID: AdvisorID, Name: "Advisor", Role: auth.RoleAdvisor}

func TestBackend_SeededFromFixtures(t *testing.T) {
	b := NewBackend(advisor)
	ctx := context.Background()

	apps, err := b.ListApplications(ctx)
	require.NoError(t, err)
	assert.Len(t, apps, len(Applications()))

	docs, err := b.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, len(Documents("")))

	mine, err := b.ListStudentDocuments(ctx, StudentID)
	require.NoError(t, err)
	assert.Len(t, mine, len(Documents(StudentID)))
}

func TestBackend_StudentProfileIsTheirOwn(t *testing.T) {
	b := NewBackend(auth.Capability{UserID: "u1", Role: auth.RoleStudent, StudentID: "s-42"})
	s, err := b.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s-42", s.ID)

	apps, err := b.ListStudentApplications(context.Background(), "s-42")
	require.NoError(t, err)
	assert.NotEmpty(t, apps)
}

func TestBackend_ApplicationLifecycle(t *testing.T) {
	b := NewBackend(advisor)
	ctx := context.Background()

	created, err := b.CreateApplication(ctx, models.NewApplication{
		StudentID: StudentID, Program: "MBA", University: "INSEAD", Intake: "Fall", Year: 2026, CountryCode: "FR",
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", created.StudentName)
	assert.Equal(t, Epoch, created.Date)

	updated, err := b.UpdateApplicationStatus(ctx, created.ID, "Accepted", "#43a047")
	require.NoError(t, err)
	assert.Equal(t, "Accepted", updated.Status)

	starred, err := b.ToggleStar(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, starred)

	require.NoError(t, b.DeleteApplication(ctx, created.ID))
	err = b.DeleteApplication(ctx, created.ID)
	assert.True(t, errors.Is(err, errors.KindNotFound))
}

func TestBackend_ChatUnreadCounts(t *testing.T) {
	b := NewBackend(advisor)
	ctx := context.Background()
	id := Applications()[0].ID

	b.Receive(id, models.Sender{ID: StudentID, Name: "Priya"}, "Any news?")
	chats, err := b.ListChats(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, chats)
	assert.Equal(t, id, chats[0].ApplicationID, "newest thread first")
	assert.Equal(t, 1, chats[0].UnreadCount)
	assert.Equal(t, "Any news?", chats[0].LastMessage)

	require.NoError(t, b.MarkChatRead(ctx, id))
	_, err = b.SendMessage(ctx, id, "Not yet")
	require.NoError(t, err)
	chats, err = b.ListChats(ctx)
	require.NoError(t, err)
	assert.Zero(t, chats[0].UnreadCount, "own messages never count as unread")
}

func TestBackend_UploadDownloadDelete(t *testing.T) {
	b := NewBackend(advisor)
	ctx := context.Background()

	doc, err := b.UploadDocument(ctx, api.Upload{
		Name: "Offer.PDF", Type: models.DocOffer, StudentID: StudentID, Body: strings.NewReader("pdf bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), doc.Size)
	assert.Equal(t, "application/pdf", doc.MimeType)

	var buf bytes.Buffer
	n, err := b.DownloadDocument(ctx, doc.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "pdf bytes", buf.String())

	require.NoError(t, b.DeleteDocument(ctx, doc.ID))
	_, err = b.DownloadDocument(ctx, doc.ID, &buf)
	assert.True(t, errors.Is(err, errors.KindNotFound))
}

func TestBackend_UpdateStudentMergesNested(t *testing.T) {
	b := NewBackend(advisor)
	patch := map[string]any{
		"firstName":        "Priyanka",
		"address1":         map[string]any{"city": "Mumbai"},
		"hasEditedProfile": true,
	}
	s, err := b.UpdateStudent(context.Background(), StudentID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Priyanka", s.FirstName)
	assert.Equal(t, "Mumbai", s.Address1.City)
	assert.Equal(t, "Maharashtra", s.Address1.State, "siblings survive a nested merge")
	assert.True(t, s.HasEditedProfile)
	assert.Equal(t, "Sharma", s.LastName)
}

func TestBackend_DeleteStudentRemovesApplications(t *testing.T) {
	b := NewBackend(advisor)
	ctx := context.Background()
	require.NoError(t, b.DeleteStudent(ctx, StudentID))

	apps, err := b.ListStudentApplications(ctx, StudentID)
	require.NoError(t, err)
	assert.Empty(t, apps)
	_, err = b.GetStudent(ctx, StudentID)
	assert.True(t, errors.Is(err, errors.KindNotFound))
}

func TestBackend_FailAndCalls(t *testing.T) {
	b := NewBackend(advisor)
	ctx := context.Background()
	boom := stderrors.New("boom")

	b.Fail("ListApplications", boom)
	_, err := b.ListApplications(ctx)
	assert.ErrorIs(t, err, boom)

	b.Fail("ListApplications", nil)
	_, err = b.ListApplications(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, b.Calls("ListApplications"))
}

func TestBackend_CanceledContext(t *testing.T) {
	b := NewBackend(advisor)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.ListChats(ctx)
	assert.True(t, errors.Is(err, errors.KindNetwork))
}
