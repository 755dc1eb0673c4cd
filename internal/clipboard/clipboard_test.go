package clipboard

import (
	"errors"
	"sync"
	"testing"
)

func fakeClipboard(t *testing.T, failWith error) *string {
	t.Helper()
	var buf string
	origInit, origWrite, origRead := initialize, write, read
	initialize = func() error { return failWith }
	write = func(s string) error { buf = s; return nil }
	read = func() string { return buf }
	initOnce = sync.Once{}
	t.Cleanup(func() {
		initialize, write, read = origInit, origWrite, origRead
		initOnce = sync.Once{}
		initErr = nil
	})
	return &buf
}

func TestWriteThenRead(t *testing.T) {
	buf := fakeClipboard(t, nil)

	if err := WriteText("482913/2025"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if *buf != "482913/2025" {
		t.Errorf("clipboard = %q", *buf)
	}
	got, err := ReadText()
	if err != nil {
		t.Fatal(err)
	}
	if got != "482913/2025" {
		t.Errorf("ReadText() = %q", got)
	}
}

func TestInitFailure(t *testing.T) {
	buf := fakeClipboard(t, errors.New("no display"))

	if err := WriteText("x"); err == nil {
		t.Fatal("expected error when clipboard is unavailable")
	}
	if *buf != "" {
		t.Errorf("nothing should be written, got %q", *buf)
	}
	if _, err := ReadText(); err == nil {
		t.Error("ReadText() should also fail")
	}
}
