// Package datafile watches the loaded data file and re-validates it when it
// changes on disk.
package datafile

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/gig-worker-hub/internal/ingest"
	"github.com/j-veylop/gig-worker-hub/internal/logger"
	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// DebounceInterval collapses bursts of writes into one reload.
const DebounceInterval = 150 * time.Millisecond

// EventType defines the type of data file event.
type EventType int

const (
	// EventReloaded carries a freshly validated record set.
	EventReloaded EventType = iota
	// EventError reports a failed reload or a watcher failure.
	EventError
)

// Event represents a data file service event.
type Event struct {
	Type      EventType
	Path      string
	RecordSet *models.RecordSet
	Error     error
}

// LoadFunc reads and validates a data file.
type LoadFunc func(path string) (*models.RecordSet, error)

// Service watches at most one data file at a time.
type Service struct {
	mu            sync.Mutex
	path          string
	watcher       *fsnotify.Watcher
	load          LoadFunc
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
	closed        bool
}

// New creates an idle watcher service.
func New() (*Service, error) {
	return NewWithLoader(ingest.LoadFile)
}

// NewWithLoader creates an idle watcher service that reloads with load.
func NewWithLoader(load LoadFunc) (*Service, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	s := &Service{
		watcher:   watcher,
		load:      load,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}

	go s.watchLoop()
	return s, nil
}

// Events returns the event channel.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Path returns the watched file, or "" when idle.
func (s *Service) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Watch switches the watch to path. The parent directory is watched so
// editors that replace the file by rename are still seen.
func (s *Service) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("watcher is closed")
	}
	if abs == s.path {
		return nil
	}

	s.unwatchLocked()

	if err := s.watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	s.path = abs

	logger.Debug("watching data file", "path", abs)
	return nil
}

// Stop stops watching the current file, if any.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unwatchLocked()
}

func (s *Service) unwatchLocked() {
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
	if s.path == "" {
		return
	}
	if err := s.watcher.Remove(filepath.Dir(s.path)); err != nil {
		logger.Debug("failed to remove watch", "path", s.path, "error", err)
	}
	s.path = ""
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleFSEvent(event)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

func (s *Service) handleFSEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" || filepath.Clean(event.Name) != s.path {
		return
	}

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	path := s.path
	s.debounceTimer = time.AfterFunc(DebounceInterval, func() {
		s.reload(path)
	})
}

// reload re-validates path and reports the outcome. A watch that moved on
// to another file in the meantime discards the result.
func (s *Service) reload(path string) {
	rs, err := s.load(path)

	if s.Path() != path {
		return
	}

	if err != nil {
		logger.Warn("data file reload failed", "path", path, "error", err)
		s.sendEvent(Event{Type: EventError, Path: path, Error: err})
		return
	}

	logger.Info("data file reloaded", "path", path, "rows", rs.Len())
	s.sendEvent(Event{Type: EventReloaded, Path: path, RecordSet: rs})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.mu.Unlock()

	close(s.stopChan)
	return s.watcher.Close()
}
