package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// castHeader is the first line of an asciicast v2 file.
type castHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// clearScreen homes the cursor and wipes the terminal before each frame
const clearScreen = "\x1b[2J\x1b[H"

// WriteCast writes frames as an asciicast v2 recording, playable with
// `asciinema play`. Each frame replaces the whole screen after its delay.
func WriteCast(w io.Writer, frames []Frame, width, height int, title string) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(castHeader{
		Version: 2,
		Width:   width,
		Height:  height,
		Title:   title,
		Env:     map[string]string{"TERM": "xterm-256color"},
	}); err != nil {
		return fmt.Errorf("write cast header: %w", err)
	}

	var at time.Duration
	for i, f := range frames {
		at += f.Delay
		// Terminals need CR before each LF once raw mode is assumed
		out := clearScreen + strings.ReplaceAll(f.Content, "\n", "\r\n")
		if err := enc.Encode([]any{at.Seconds(), "o", out}); err != nil {
			return fmt.Errorf("write frame %d: %w", i, err)
		}
	}
	return nil
}
