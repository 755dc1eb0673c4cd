// Package notification sends desktop notifications for events that happen
// while the user is looking elsewhere: a status change or a new chat message.
// It uses beeep, which works on macOS, Linux and Windows.
package notification

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/beeep"
	"github.com/zhubert/studydesk/internal/logger"
)

// AppName prefixes every notification title.
const AppName = "studydesk"

// Notifier delivers one desktop notification.
type Notifier func(title, message string, icon any) error

var (
	enabled  atomic.Bool
	notifyMu sync.RWMutex
	notify   Notifier = beeep.Notify
)

func init() {
	enabled.Store(true)
}

// SetEnabled turns notifications on or off. The config's notifications flag
// is applied at startup.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether notifications are sent.
func Enabled() bool {
	return enabled.Load()
}

// SetNotifier replaces the delivery function and returns a func that puts
// the previous one back.
func SetNotifier(fn Notifier) (restore func()) {
	notifyMu.Lock()
	prev := notify
	notify = fn
	notifyMu.Unlock()
	return func() {
		notifyMu.Lock()
		notify = prev
		notifyMu.Unlock()
	}
}

// Send sends a desktop notification. When notifications are disabled it
// does nothing and returns nil.
func Send(title, message string) error {
	if !enabled.Load() {
		return nil
	}
	log := logger.ComponentLogger("Notification")
	log.Debug("sending notification", "title", title, "message", message)
	notifyMu.RLock()
	fn := notify
	notifyMu.RUnlock()
	// Empty icon: beeep picks the platform default
	if err := fn(title, message, ""); err != nil {
		log.Warn("failed to send notification", "error", err)
		return err
	}
	return nil
}

// StatusChanged announces an application's new status. Callers on the UI
// loop run it in a goroutine since delivery can block.
func StatusChanged(university, status string) error {
	return Send(AppName, fmt.Sprintf("%s: status updated to %s", university, status))
}

// NewMessages announces unread chat messages on an application.
func NewMessages(university string, n int) error {
	if n <= 0 {
		return nil
	}
	noun := "message"
	if n > 1 {
		noun = "messages"
	}
	return Send(AppName, fmt.Sprintf("%d new %s on %s", n, noun, university))
}
