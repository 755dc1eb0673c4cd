package chat

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/logger"
	"github.com/zhubert/studydesk/internal/models"
)

type fakeService struct {
	mu       sync.Mutex
	threads  map[string]models.ApplicationChat
	getErr   error
	readErr  error
	sendErr  error
	sent     []string
	reads    []string
	gate     map[string]chan struct{} // blocks GetApplicationChat for an id
	sendSeq  int
}

func newFake() *fakeService {
	return &fakeService{
		threads: map[string]models.ApplicationChat{},
		gate:    map[string]chan struct{}{},
	}
}

func (f *fakeService) GetApplicationChat(ctx context.Context, id string) (models.ApplicationChat, error) {
	f.mu.Lock()
	g := f.gate[id]
	f.mu.Unlock()
	if g != nil {
		<-g
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return models.ApplicationChat{}, f.getErr
	}
	return f.threads[id], nil
}

func (f *fakeService) MarkChatRead(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, id)
	return f.readErr
}

func (f *fakeService) SendMessage(ctx context.Context, id, text string) (models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return models.Message{}, f.sendErr
	}
	f.sendSeq++
	f.sent = append(f.sent, id+":"+text)
	return models.Message{
		ID:     fmt.Sprintf("srv-%d", f.sendSeq),
		Sender: models.Sender{ID: "u1"},
		Text:   text,
	}, nil
}

var me = auth.Capability{UserID: "u1", Role: auth.RoleAdvisor}

func newPanel(f *fakeService) *Panel {
	return NewPanel(f, me, logger.Discard())
}

func thread(id string, msgs ...models.Message) models.ApplicationChat {
	return models.ApplicationChat{ID: "c-" + id, ApplicationID: id, Messages: msgs}
}

func TestOpen_LoadsAndMarksRead(t *testing.T) {
	f := newFake()
	f.threads["a1"] = thread("a1",
		models.Message{ID: "m1", Sender: models.Sender{ID: "s1"}, Text: "hi"},
		models.Message{ID: "m2", Sender: models.Sender{ID: "u1"}, Text: "hello"},
	)
	p := newPanel(f)

	require.NoError(t, p.Open(context.Background(), "a1"))

	snap := p.Snapshot()
	assert.Equal(t, "a1", snap.ApplicationID)
	require.Len(t, snap.Messages, 2)
	assert.False(t, snap.Placeholder)
	assert.False(t, snap.Loading)
	assert.Equal(t, []string{"a1"}, f.reads)
	for _, m := range snap.Messages {
		assert.True(t, m.Read)
	}
	assert.Equal(t, 0, p.Unread())
}

func TestOpen_FailureUsesPlaceholder(t *testing.T) {
	f := newFake()
	f.getErr = errors.E(errors.Op("test"), errors.KindNetwork, "down")
	p := newPanel(f)

	require.NoError(t, p.Open(context.Background(), "a1"))

	snap := p.Snapshot()
	assert.True(t, snap.Placeholder)
	assert.Equal(t, demo.Chat("a1").Messages, snap.Messages)
	assert.Error(t, p.Err())
	assert.Empty(t, f.reads, "no mark-read after a failed fetch")
}

func TestOpen_MarkReadFailureKeepsThread(t *testing.T) {
	f := newFake()
	f.threads["a1"] = thread("a1", models.Message{ID: "m1", Sender: models.Sender{ID: "s1"}})
	f.readErr = errors.E(errors.Op("test"), errors.KindNetwork, "down")
	p := newPanel(f)

	require.NoError(t, p.Open(context.Background(), "a1"))
	assert.Len(t, p.Snapshot().Messages, 1)
	assert.Equal(t, 1, p.Unread())
}

func TestOpen_StaleResponseDiscarded(t *testing.T) {
	f := newFake()
	f.threads["slow"] = thread("slow", models.Message{ID: "old"})
	f.threads["fast"] = thread("fast", models.Message{ID: "new"})
	gate := make(chan struct{})
	f.gate["slow"] = gate
	p := newPanel(f)

	done := make(chan struct{})
	go func() {
		_ = p.Open(context.Background(), "slow")
		close(done)
	}()

	// Wait until the slow Open has registered itself.
	require.Eventually(t, func() bool { return p.ApplicationID() == "slow" }, timeout, tick)

	require.NoError(t, p.Open(context.Background(), "fast"))
	close(gate)
	<-done

	snap := p.Snapshot()
	assert.Equal(t, "fast", snap.ApplicationID)
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, "new", snap.Messages[0].ID)
	assert.NotContains(t, f.reads, "slow")
}

func TestSend_EmptyRejectedWithoutNetwork(t *testing.T) {
	f := newFake()
	f.threads["a1"] = thread("a1")
	p := newPanel(f)
	require.NoError(t, p.Open(context.Background(), "a1"))
	v := p.Version()

	for _, text := range []string{"", "   ", "\n\t"} {
		p.SetCompose(text)
		err := p.Send(context.Background())
		assert.True(t, errors.Is(err, errors.KindInvalid), "text %q", text)
	}
	assert.Empty(t, f.sent)
	assert.Equal(t, v, p.Version())
	assert.Empty(t, p.Snapshot().Messages)
}

func TestSend_AppendsServerMessage(t *testing.T) {
	f := newFake()
	f.threads["a1"] = thread("a1", models.Message{ID: "m1"})
	p := newPanel(f)
	require.NoError(t, p.Open(context.Background(), "a1"))
	v := p.Version()

	p.SetCompose("  see you tomorrow  ")
	require.NoError(t, p.Send(context.Background()))

	snap := p.Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "srv-1", snap.Messages[1].ID)
	assert.Equal(t, "see you tomorrow", snap.Messages[1].Text)
	assert.Empty(t, snap.Compose)
	assert.Greater(t, snap.Version, v)
	assert.True(t, p.Mine(snap.Messages[1]))
}

func TestSend_FailureKeepsCompose(t *testing.T) {
	f := newFake()
	f.threads["a1"] = thread("a1")
	p := newPanel(f)
	require.NoError(t, p.Open(context.Background(), "a1"))

	f.sendErr = errors.E(errors.Op("test"), errors.KindNetwork, "down")
	p.SetCompose("draft")
	require.Error(t, p.Send(context.Background()))

	assert.Equal(t, "draft", p.Compose())
	assert.Empty(t, p.Snapshot().Messages)
	assert.Error(t, p.Err())
}

func TestSend_NoOpenThread(t *testing.T) {
	p := newPanel(newFake())
	p.SetCompose("hello")
	err := p.Send(context.Background())
	assert.True(t, errors.Is(err, errors.KindInvalid))
}

func TestAnnounce(t *testing.T) {
	f := newFake()
	f.threads["a1"] = thread("a1")
	p := newPanel(f)
	require.NoError(t, p.Open(context.Background(), "a1"))
	p.SetCompose("half-typed")

	require.NoError(t, p.Announce(context.Background(), "a1", StatusAnnouncement("Offer Received")))
	require.NoError(t, p.Announce(context.Background(), "other", "elsewhere"))

	snap := p.Snapshot()
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, "Application status updated to: Offer Received", snap.Messages[0].Text)
	assert.Equal(t, "half-typed", snap.Compose)
	assert.Len(t, f.sent, 2)
}

func TestClose(t *testing.T) {
	f := newFake()
	f.threads["a1"] = thread("a1", models.Message{ID: "m1"})
	p := newPanel(f)
	require.NoError(t, p.Open(context.Background(), "a1"))

	p.Close()
	snap := p.Snapshot()
	assert.Empty(t, snap.ApplicationID)
	assert.Empty(t, snap.Messages)
}

func TestCountUnread(t *testing.T) {
	msgs := []models.Message{
		{Sender: models.Sender{ID: "u1"}},
		{Sender: models.Sender{ID: "s1"}},
		{Sender: models.Sender{ID: "s1"}, Read: true},
		{Sender: models.Sender{ID: "s2"}},
	}
	assert.Equal(t, 2, CountUnread(msgs, "u1"))
	assert.Equal(t, 0, CountUnread(nil, "u1"))
}
