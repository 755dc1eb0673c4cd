package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindPermission, "permission denied"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindConfig, "configuration error"},
		{KindLimit, "limit reached"},
		{KindBusy, "operation in progress"},
		{KindTimeout, "timeout"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "api.Get", Context: "some context", Err: errors.New("underlying")},
			expected: "api.Get: some context: underlying",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "api.Get", Err: errors.New("underlying")},
			expected: "api.Get: underlying",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying")},
			expected: "underlying",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE_StringOnlyBecomesErr(t *testing.T) {
	err := E(Op("x.Y"), KindInvalid, "bad input")
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected *Error")
	}
	if e.Context != "" || e.Err.Error() != "bad input" {
		t.Errorf("unexpected shape: %+v", e)
	}
}

func TestIsAndGetKind_ThroughWrapping(t *testing.T) {
	base := EmptyMessage()
	wrapped := fmt.Errorf("send: %w", base)

	if !Is(wrapped, KindInvalid) {
		t.Error("Is should see through fmt wrapping")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("plain errors should be KindUnknown")
	}
}

func TestStatusError_Kinds(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{404, KindNotFound},
		{401, KindPermission},
		{403, KindPermission},
		{400, KindInvalid},
		{409, KindInvalid},
		{504, KindTimeout},
		{500, KindNetwork},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			if got := GetKind(StatusError("api.Get", tt.status, "")); got != tt.kind {
				t.Errorf("kind = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	if got := Message(StatusError("api.Get", 500, "database down")); got != "database down" {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(RequestFailed("api.Get", errors.New("dial tcp: refused"))); got != "request failed" {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q", got)
	}
	if got := Message(errors.New("plain")); got != "plain" {
		t.Errorf("Message(plain) = %q", got)
	}
}

func TestDomainConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"limit", ApplicationLimitReached("s1", 5), KindLimit},
		{"too large", FileTooLarge("cv.pdf", 6<<20, 5<<20), KindInvalid},
		{"unknown field", UnknownField("basic", "nope"), KindInvalid},
		{"permission", PermissionDenied("delete"), KindPermission},
		{"busy", Busy("chat.Send"), KindBusy},
		{"config", ConfigLoadFailed("/x", errors.New("eof")), KindConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, tt.kind) {
				t.Errorf("expected kind %v, got %v", tt.kind, GetKind(tt.err))
			}
		})
	}
}
