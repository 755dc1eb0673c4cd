// Package chat holds the per-application message thread shown beside the
// detail view, along with its compose buffer.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/models"
)

// Service is the subset of the API client the panel needs.
type Service interface {
	GetApplicationChat(ctx context.Context, applicationID string) (models.ApplicationChat, error)
	MarkChatRead(ctx context.Context, applicationID string) error
	SendMessage(ctx context.Context, applicationID, text string) (models.Message, error)
}

// StatusAnnouncement is the message posted when an application's status changes.
func StatusAnnouncement(status string) string {
	return fmt.Sprintf("Application status updated to: %s", status)
}

// Panel is the chat view-model. All methods are safe for concurrent use;
// the lock is never held across a Service call.
type Panel struct {
	svc        Service
	capability auth.Capability
	log        *slog.Logger

	mu            sync.Mutex
	applicationID string
	thread        models.ApplicationChat
	placeholder   bool
	compose       string
	gen           uint64
	version       uint64
	loading       bool
	sending       bool
	err           error
}

// NewPanel creates an empty panel.
func NewPanel(svc Service, c auth.Capability, log *slog.Logger) *Panel {
	return &Panel{svc: svc, capability: c, log: log}
}

// Open loads the thread for applicationID and then marks it read. A fetch
// failure installs the placeholder thread; the error is kept in Err and
// Open still returns nil so callers never block on chat. If another Open
// starts before this one finishes, this one's result is dropped.
func (p *Panel) Open(ctx context.Context, applicationID string) error {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.applicationID = applicationID
	p.loading = true
	p.compose = ""
	p.err = nil
	p.mu.Unlock()

	thread, err := p.svc.GetApplicationChat(ctx, applicationID)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		p.log.Debug("discarding stale chat", "application", applicationID)
		return nil
	}
	p.loading = false
	if err != nil {
		p.log.Warn("failed to load chat, using placeholder", "application", applicationID, "error", err)
		p.err = err
		p.setThread(demo.Chat(applicationID), true)
		p.mu.Unlock()
		return nil
	}
	if thread.ApplicationID == "" {
		thread.ApplicationID = applicationID
	}
	p.setThread(thread, false)
	p.mu.Unlock()

	if err := p.svc.MarkChatRead(ctx, applicationID); err != nil {
		p.log.Warn("failed to mark chat read", "application", applicationID, "error", err)
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return nil
	}
	msgs := make([]models.Message, len(p.thread.Messages))
	for i, m := range p.thread.Messages {
		m.Read = true
		msgs[i] = m
	}
	t := p.thread
	t.Messages = msgs
	p.setThread(t, false)
	return nil
}

// setThread replaces the thread and bumps the version. Caller holds mu.
func (p *Panel) setThread(t models.ApplicationChat, placeholder bool) {
	p.thread = t
	p.placeholder = placeholder
	p.version++
}

// SetCompose replaces the compose buffer.
func (p *Panel) SetCompose(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.compose = text
}

// Compose returns the compose buffer.
func (p *Panel) Compose() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.compose
}

// Send posts the compose buffer. Blank text is rejected without a network
// call. On success the server's copy is appended and the buffer cleared; on
// failure the buffer is kept so the user can retry.
func (p *Panel) Send(ctx context.Context) error {
	const op errors.Op = "chat.Send"

	p.mu.Lock()
	text := strings.TrimSpace(p.compose)
	id := p.applicationID
	switch {
	case text == "":
		p.mu.Unlock()
		return errors.EmptyMessage()
	case id == "":
		p.mu.Unlock()
		return errors.E(op, errors.KindInvalid, "no conversation open")
	case p.sending:
		p.mu.Unlock()
		return errors.Busy(op)
	}
	p.sending = true
	gen := p.gen
	p.mu.Unlock()

	msg, err := p.svc.SendMessage(ctx, id, text)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.sending = false
	if err != nil {
		p.log.Warn("failed to send message", "application", id, "error", err)
		p.err = err
		return err
	}
	p.err = nil
	if gen != p.gen {
		// The user moved to another thread; the message is on the server and
		// will show when they come back.
		return nil
	}
	p.appendLocked(msg)
	p.compose = ""
	return nil
}

// Announce posts text to applicationID's thread without touching the
// compose buffer. When that thread is open, the message is appended.
func (p *Panel) Announce(ctx context.Context, applicationID, text string) error {
	msg, err := p.svc.SendMessage(ctx, applicationID, text)
	if err != nil {
		p.log.Warn("failed to post announcement", "application", applicationID, "error", err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.applicationID == applicationID && !p.loading {
		p.appendLocked(msg)
	}
	return nil
}

func (p *Panel) appendLocked(msg models.Message) {
	t := p.thread
	msgs := make([]models.Message, len(t.Messages), len(t.Messages)+1)
	copy(msgs, t.Messages)
	t.Messages = append(msgs, msg)
	p.setThread(t, p.placeholder)
}

// Close forgets the open thread. In-flight responses for it are dropped.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.applicationID = ""
	p.thread = models.ApplicationChat{}
	p.placeholder = false
	p.compose = ""
	p.loading = false
	p.err = nil
	p.version++
}

// Snapshot is a consistent read of the panel for rendering.
type Snapshot struct {
	ApplicationID string
	Messages      []models.Message
	Placeholder   bool
	Compose       string
	Loading       bool
	Sending       bool
	Version       uint64
	Err           error
}

// Snapshot returns the current state. Messages must not be modified.
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		ApplicationID: p.applicationID,
		Messages:      p.thread.Messages,
		Placeholder:   p.placeholder,
		Compose:       p.compose,
		Loading:       p.loading,
		Sending:       p.sending,
		Version:       p.version,
		Err:           p.err,
	}
}

// Version increments whenever the thread changes.
func (p *Panel) Version() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// ApplicationID returns the open thread's application, or "".
func (p *Panel) ApplicationID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applicationID
}

// Err returns the last load or send failure.
func (p *Panel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Unread counts messages not written by the current user and not yet read.
func (p *Panel) Unread() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return CountUnread(p.thread.Messages, p.capability.UserID)
}

// CountUnread counts unread messages written by someone other than userID.
func CountUnread(msgs []models.Message, userID string) int {
	n := 0
	for _, m := range msgs {
		if !m.Read && m.Sender.ID != userID {
			n++
		}
	}
	return n
}

// Mine reports whether msg was written by the current user.
func (p *Panel) Mine(msg models.Message) bool {
	return msg.Sender.ID != "" && msg.Sender.ID == p.capability.UserID
}
