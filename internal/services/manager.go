// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/gig-worker-hub/internal/advisor"
	"github.com/j-veylop/gig-worker-hub/internal/config"
	"github.com/j-veylop/gig-worker-hub/internal/db"
	"github.com/j-veylop/gig-worker-hub/internal/ingest"
	"github.com/j-veylop/gig-worker-hub/internal/logger"
	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/sample"
	"github.com/j-veylop/gig-worker-hub/internal/services/datafile"
	"github.com/j-veylop/gig-worker-hub/internal/session"
)

type (
	// DataReloadedEvent is emitted when the watched data file was re-validated.
	DataReloadedEvent struct {
		Path      string
		RecordSet *models.RecordSet
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DataReloadedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()        {}

// ErrNoAdvisor is returned when advisory operations are used without a
// configured generator.
var ErrNoAdvisor = errors.New("advisor not configured")

// Notifier shows a desktop notification.
type Notifier func(title, body string) error

func beeepNotifier(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Manager orchestrates services and event routing. It owns the session but
// never mutates it from a background goroutine; the UI applies results.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	session     *session.Session
	database    *db.DB
	advisor     *advisor.Service
	datafile    *datafile.Service
	notify      Notifier
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	closeOnce   sync.Once
}

// Option configures a Manager.
type Option func(*Manager)

// WithNotifier replaces the desktop notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notify = n }
}

// NewManager creates a new service manager. gen may be nil, in which case
// advisory operations report ErrNoAdvisor.
func NewManager(cfg *config.Config, gen advisor.Generator, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		session:  session.New(),
		notify:   beeepNotifier,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if removed, err := m.database.Prune(db.DefaultRetentionDays); err != nil {
		logger.Warn("failed to prune journal", "error", err)
	} else if removed > 0 {
		logger.Info("pruned journal", "rows", removed)
		if err := m.database.Vacuum(); err != nil {
			logger.Warn("failed to vacuum journal", "error", err)
		}
	}

	if gen != nil {
		m.advisor = advisor.NewService(gen,
			advisor.WithJournal(m.database),
			advisor.WithSessionID(m.session.ID()),
		)
	}

	if cfg.WatchDataFile {
		m.datafile, err = datafile.New()
		if err != nil {
			_ = m.database.Close()
			return nil, err
		}
		go m.routeEvents()
	}

	logger.Info("session started", "session_id", m.session.ID())
	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.datafile.Events():
			m.handleDataFileEvent(event)
		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleDataFileEvent(event datafile.Event) {
	switch event.Type {
	case datafile.EventReloaded:
		m.journalLoad(event.Path, event.RecordSet, nil)
		m.broadcast(DataReloadedEvent{Path: event.Path, RecordSet: event.RecordSet})

	case datafile.EventError:
		if event.Path != "" {
			m.journalLoad(event.Path, nil, event.Error)
			m.Notify("Data reload failed", fmt.Sprintf("%s: %v", event.Path, event.Error))
		}
		m.broadcast(ErrorEvent{Service: "datafile", Error: event.Error})
	}
}

// Session returns the session state.
func (m *Manager) Session() *session.Session {
	return m.session
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// HasAdvisor reports whether advisory operations are available.
func (m *Manager) HasAdvisor() bool {
	return m.advisor != nil
}

// LoadFile validates the file at path and, on success, starts watching it.
// The session is left untouched; the caller installs the returned set.
func (m *Manager) LoadFile(path string) (*models.RecordSet, error) {
	rs, err := ingest.LoadFile(path)
	m.journalLoad(path, rs, err)
	if err != nil {
		return nil, err
	}

	if m.datafile != nil {
		if err := m.datafile.Watch(path); err != nil {
			logger.Warn("failed to watch data file", "path", path, "error", err)
		}
	}
	return rs, nil
}

// LoadSample generates a fresh demonstration set and stops watching any file.
func (m *Manager) LoadSample() *models.RecordSet {
	rs := sample.Generate(sample.NewRand())
	m.journalLoad(sample.SourceName, rs, nil)
	if m.datafile != nil {
		m.datafile.Stop()
	}
	return rs
}

// ExportSample writes sample data to the configured export path. The active
// set is exported when it is sample data, so the download matches the
// screen; otherwise a fresh set is generated.
func (m *Manager) ExportSample() (string, error) {
	rs := m.session.RecordSet()
	if rs == nil || rs.Source != sample.SourceName {
		rs = sample.Generate(sample.NewRand())
	}

	path := m.cfg.SampleExportPath
	if err := sample.ExportFile(path, rs); err != nil {
		return "", err
	}
	return path, nil
}

// Recommend asks the advisor for a report on rs.
func (m *Manager) Recommend(ctx context.Context, rs *models.RecordSet) string {
	if m.advisor == nil {
		return fmt.Sprintf("%s generating report: %v", advisor.FailureMarker, ErrNoAdvisor)
	}
	result := m.advisor.Recommend(ctx, rs)
	if !advisor.IsFailure(result) {
		m.Notify("Recommendations ready", "Your performance report has been generated.")
	}
	return result
}

// Ask forwards a question to the advisor.
func (m *Manager) Ask(ctx context.Context, question string) string {
	if m.advisor == nil {
		return fmt.Sprintf("%s generating response: %v", advisor.FailureMarker, ErrNoAdvisor)
	}
	return m.advisor.Ask(ctx, question)
}

// AdvisorTimeout bounds a single advisory round-trip.
func (m *Manager) AdvisorTimeout() time.Duration {
	if m.cfg.AdvisorTimeout > 0 {
		return m.cfg.AdvisorTimeout
	}
	return config.DefaultAdvisorTimeout
}

// JournalStats returns the journal summary.
func (m *Manager) JournalStats() (*models.JournalStats, error) {
	return m.database.GetStats()
}

// RecentAdvisoryCalls returns the latest journaled advisory calls.
func (m *Manager) RecentAdvisoryCalls(limit int) ([]models.AdvisoryCall, error) {
	return m.database.GetRecentAdvisoryCalls(limit)
}

// WatchedPath returns the data file being watched, or "".
func (m *Manager) WatchedPath() string {
	if m.datafile == nil {
		return ""
	}
	return m.datafile.Path()
}

// Notify shows a desktop notification when enabled in the configuration.
func (m *Manager) Notify(title, body string) {
	if !m.cfg.DesktopNotify || m.notify == nil {
		return
	}
	if err := m.notify(title, body); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

func (m *Manager) journalLoad(source string, rs *models.RecordSet, loadErr error) {
	entry := &models.DataLoad{
		SessionID: m.session.ID(),
		Source:    source,
		Rows:      rs.Len(),
	}
	if loadErr != nil {
		entry.Error = loadErr.Error()
	}
	if err := m.database.InsertDataLoad(entry); err != nil {
		logger.Warn("failed to journal data load", "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.datafile != nil {
			if err := m.datafile.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	})

	return errors.Join(errs...)
}
