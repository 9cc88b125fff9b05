package datafile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/gig-worker-hub/internal/ingest"
)

const validCSV = "date,platform,hours,earnings\n2023-01-01,Uber,4,100\n"

func waitForEvent(t *testing.T, s *Service) Event {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for data file event")
	}
	return Event{}
}

func newWatchedFile(t *testing.T) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gigs.csv")
	if err := os.WriteFile(path, []byte(validCSV), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	return s, path
}

func TestService_ReloadsOnWrite(t *testing.T) {
	s, path := newWatchedFile(t)

	updated := validCSV + "2023-01-02,Lyft,3,75\n"
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ev := waitForEvent(t, s)
	if ev.Type != EventReloaded {
		t.Fatalf("event type = %v, error = %v", ev.Type, ev.Error)
	}
	if ev.RecordSet.Len() != 2 {
		t.Errorf("reloaded rows = %d, want 2", ev.RecordSet.Len())
	}
}

func TestService_InvalidRewriteReportsError(t *testing.T) {
	s, path := newWatchedFile(t)

	if err := os.WriteFile(path, []byte("date,platform\n2023-01-01,Uber\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ev := waitForEvent(t, s)
	if ev.Type != EventError {
		t.Fatalf("event type = %v, want EventError", ev.Type)
	}
	if !errors.Is(ev.Error, ingest.ErrValidation) {
		t.Errorf("error = %v, want a validation error", ev.Error)
	}
}

func TestService_IgnoresSiblingFiles(t *testing.T) {
	s, path := newWatchedFile(t)

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	if err := os.WriteFile(other, []byte("hello"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case ev := <-s.Events():
		t.Errorf("unexpected event %+v", ev)
	case <-time.After(4 * DebounceInterval):
	}
}

func TestService_StopAndPath(t *testing.T) {
	s, path := newWatchedFile(t)

	abs, _ := filepath.Abs(path)
	if s.Path() != abs {
		t.Errorf("Path() = %q, want %q", s.Path(), abs)
	}

	s.Stop()
	if s.Path() != "" {
		t.Errorf("Path() after Stop = %q", s.Path())
	}

	if err := os.WriteFile(path, []byte(validCSV), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	select {
	case ev := <-s.Events():
		t.Errorf("unexpected event after Stop: %+v", ev)
	case <-time.After(4 * DebounceInterval):
	}
}

func TestService_WatchAfterClose(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.Watch(filepath.Join(t.TempDir(), "x.csv")); err == nil {
		t.Error("Watch() after Close should fail")
	}
}
