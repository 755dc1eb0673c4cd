package notification

import (
	"errors"
	"testing"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
	}
	err error
}

func (m *mockNotification) notify(title, message string, _ any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
	}{title, message})
	return m.err
}

func withMock(t *testing.T, err error) *mockNotification {
	t.Helper()
	mock := &mockNotification{err: err}
	restore := SetNotifier(mock.notify)
	SetEnabled(true)
	t.Cleanup(func() {
		restore()
		SetEnabled(true)
	})
	return mock
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		mockErr     error
		expectError bool
	}{
		{name: "successful notification"},
		{name: "notification error", mockErr: errors.New("dbus unavailable"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := withMock(t, tt.mockErr)

			err := Send("Title", "Body")
			if (err != nil) != tt.expectError {
				t.Errorf("Send() error = %v, expectError %v", err, tt.expectError)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			if mock.calls[0].title != "Title" || mock.calls[0].message != "Body" {
				t.Errorf("unexpected call %+v", mock.calls[0])
			}
		})
	}
}

func TestSend_Disabled(t *testing.T) {
	mock := withMock(t, nil)
	SetEnabled(false)

	if err := Send("Title", "Body"); err != nil {
		t.Errorf("Send() while disabled returned %v", err)
	}
	if len(mock.calls) != 0 {
		t.Errorf("expected no calls while disabled, got %d", len(mock.calls))
	}
	if Enabled() {
		t.Error("Enabled() should be false")
	}
}

func TestStatusChanged(t *testing.T) {
	mock := withMock(t, nil)

	if err := StatusChanged("University of Toronto", "Offer Received"); err != nil {
		t.Fatal(err)
	}
	want := "University of Toronto: status updated to Offer Received"
	if mock.calls[0].title != AppName || mock.calls[0].message != want {
		t.Errorf("got %+v, want message %q", mock.calls[0], want)
	}
}

func TestNewMessages(t *testing.T) {
	tests := []struct {
		n     int
		calls int
		want  string
	}{
		{n: 0, calls: 0},
		{n: 1, calls: 1, want: "1 new message on TU Munich"},
		{n: 3, calls: 1, want: "3 new messages on TU Munich"},
	}
	for _, tt := range tests {
		mock := withMock(t, nil)
		if err := NewMessages("TU Munich", tt.n); err != nil {
			t.Fatal(err)
		}
		if len(mock.calls) != tt.calls {
			t.Fatalf("n=%d: expected %d calls, got %d", tt.n, tt.calls, len(mock.calls))
		}
		if tt.calls > 0 && mock.calls[0].message != tt.want {
			t.Errorf("n=%d: message = %q, want %q", tt.n, mock.calls[0].message, tt.want)
		}
	}
}
