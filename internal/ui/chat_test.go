package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/chat"
	"github.com/zhubert/studydesk/internal/models"
)

var chatNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testChat(t *testing.T) *Chat {
	t.Helper()
	GetViewContext().UpdateTerminalSize(120, 40)
	c := NewChat()
	c.SetClock(func() time.Time { return chatNow })
	c.SetMine(func(m models.Message) bool { return m.Sender.ID == "me" })
	c.SetSize(60, 20)
	return c
}

func thread(n int) []models.Message {
	var msgs []models.Message
	for i := range n {
		sender := models.Sender{ID: "advisor", Name: "Dana"}
		if i%2 == 1 {
			sender = models.Sender{ID: "me", Name: "Priya"}
		}
		msgs = append(msgs, models.Message{
			ID:        fmt.Sprintf("m%d", i),
			Sender:    sender,
			Text:      fmt.Sprintf("message number %d", i),
			Timestamp: chatNow.Add(-time.Duration(n-i) * time.Minute),
		})
	}
	return msgs
}

func TestChat_NoThread(t *testing.T) {
	c := testChat(t)

	view := stripANSI(c.View())
	if !strings.Contains(view, "Select an application") {
		t.Errorf("expected empty-state hint, got\n%s", view)
	}
	if c.HasThread() {
		t.Error("HasThread() should be false")
	}
}

func TestChat_RendersSendersAndTimestamps(t *testing.T) {
	c := testChat(t)
	c.SetSnapshot(chat.Snapshot{ApplicationID: "a1", Messages: thread(2), Version: 1})

	view := stripANSI(c.View())
	for _, want := range []string{"Dana", "You", "message number 0", "message number 1", "11:58 AM", "11:59 AM"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q\n%s", want, view)
		}
	}
	if strings.Contains(view, "Priya") {
		t.Errorf("own messages should be labelled You\n%s", view)
	}
}

func TestChat_PlaceholderBanner(t *testing.T) {
	c := testChat(t)
	c.SetSnapshot(chat.Snapshot{ApplicationID: "a1", Messages: thread(1), Placeholder: true, Version: 1})

	if view := stripANSI(c.View()); !strings.Contains(view, "showing sample messages") {
		t.Errorf("expected placeholder banner\n%s", view)
	}
}

func TestChat_ScrollsToNewestOnVersionChange(t *testing.T) {
	c := testChat(t)
	c.SetSnapshot(chat.Snapshot{ApplicationID: "a1", Messages: thread(30), Version: 1})
	if !c.AtBottom() {
		t.Fatal("new thread should open at the newest message")
	}

	// Scroll up, then re-render the same version: position is kept.
	c.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if c.AtBottom() {
		t.Fatal("pgup should leave the bottom")
	}
	c.SetSnapshot(chat.Snapshot{ApplicationID: "a1", Messages: thread(30), Version: 1})
	if c.AtBottom() {
		t.Error("same version should not jump to the bottom")
	}

	// A new message bumps the version and jumps to it.
	c.SetSnapshot(chat.Snapshot{ApplicationID: "a1", Messages: thread(31), Version: 2})
	if !c.AtBottom() {
		t.Error("version change should scroll to the newest message")
	}
}

func TestChat_InputOnlyWhenFocused(t *testing.T) {
	c := testChat(t)
	c.SetSnapshot(chat.Snapshot{ApplicationID: "a1", Version: 1})

	c.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if c.Input() != "" {
		t.Errorf("unfocused chat should ignore typing, got %q", c.Input())
	}

	c.SetFocused(true)
	c.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	c.Update(tea.KeyPressMsg{Code: 'i', Text: "i"})
	if c.Input() != "hi" {
		t.Errorf("Input() = %q, want %q", c.Input(), "hi")
	}

	c.ClearInput()
	if c.Input() != "" {
		t.Error("ClearInput should empty the compose area")
	}
}

func TestChat_SendingTitle(t *testing.T) {
	c := testChat(t)
	c.SetTitle("University of Toronto")
	c.SetSnapshot(chat.Snapshot{ApplicationID: "a1", Sending: true, Version: 1})

	if view := stripANSI(c.View()); !strings.Contains(view, "University of Toronto · sending...") {
		t.Errorf("expected sending indicator\n%s", view)
	}
}
