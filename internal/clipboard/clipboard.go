// Package clipboard copies short text, such as an application reference
// number, to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/studydesk/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error

	// write is swapped out in tests; the real clipboard needs a display.
	write = func(text string) error {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}
	read = func() string {
		return string(clipboard.Read(clipboard.FmtText))
	}
	initialize = clipboard.Init
)

// Init initializes the clipboard. It is safe to call multiple times; only
// the first call does any work.
func Init() error {
	initOnce.Do(func() {
		if err := initialize(); err != nil {
			logger.ComponentLogger("Clipboard").Warn("failed to initialize", "error", err)
			initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
			return
		}
		logger.ComponentLogger("Clipboard").Debug("initialized")
	})
	return initErr
}

// WriteText places text on the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	if err := write(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	logger.ComponentLogger("Clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// ReadText returns the clipboard's text, or "" when it holds none.
func ReadText() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	return read(), nil
}
