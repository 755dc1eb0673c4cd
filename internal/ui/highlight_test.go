package ui

import (
	"strings"
	"testing"

	"github.com/zhubert/studydesk/internal/models"
)

func TestHighlightJSON(t *testing.T) {
	app := models.Application{ID: "a1", University: "TU Munich", Year: 2026, Starred: true}

	out, err := HighlightJSON(app)
	if err != nil {
		t.Fatalf("HighlightJSON() error = %v", err)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected ANSI colour codes in highlighted output")
	}

	plain := stripANSI(out)
	for _, want := range []string{`"_id": "a1"`, `"university": "TU Munich"`, `"year": 2026`, `"starred": true`} {
		if !strings.Contains(plain, want) {
			t.Errorf("highlighted JSON should contain %s\n%s", want, plain)
		}
	}
}

func TestHighlightJSON_Unmarshalable(t *testing.T) {
	if _, err := HighlightJSON(map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("expected an error for a value json cannot encode")
	}
}

func TestHighlightCode_UnknownLanguageFallsBack(t *testing.T) {
	out := highlightCode("plain text", "no-such-language")
	if strings.TrimSpace(stripANSI(out)) != "plain text" {
		t.Errorf("fallback lexer should keep the text, got %q", stripANSI(out))
	}
}
