// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/j-veylop/gig-worker-hub/internal/analytics"
	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/session"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// Loading resources.
const (
	ResourceData    = "data"
	ResourceAdvisor = "advisor"
	ResourceExport  = "export"
	ResourceJournal = "journal"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks in-flight work per resource.
type LoadingState struct {
	Data    bool
	Advisor bool
	Export  bool
	Journal bool
}

// Derived holds the aggregates computed from the active record set.
type Derived struct {
	Summary    models.Summary
	Weekly     []models.WeeklyTotal
	Platforms  []models.PlatformStats
	Weekdays   [7]models.WeekdayTotal
	Projection models.Projection
}

// State is the UI state shared by the root model and every tab.
type State struct {
	mu sync.RWMutex

	session *session.Session
	derived Derived
	version int

	recommendations   string
	recommendationsAt time.Time

	journal     *models.JournalStats
	recentCalls []models.AdvisoryCall

	Loading     LoadingState
	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates state around sess. A nil session starts a fresh one.
func NewState(sess *session.Session) *State {
	if sess == nil {
		sess = session.New()
	}
	s := &State{
		session:       sess,
		notifications: make([]Notification, 0),
	}
	s.derived = derive(sess.RecordSet())
	return s
}

func derive(rs *models.RecordSet) Derived {
	return Derived{
		Summary:    analytics.Summarize(rs),
		Weekly:     analytics.Weekly(rs),
		Platforms:  analytics.ByPlatform(rs),
		Weekdays:   analytics.ByWeekday(rs),
		Projection: analytics.Project(rs, analytics.DefaultProjectionDays),
	}
}

// Session returns the underlying session.
func (s *State) Session() *session.Session {
	return s.session
}

// SetRecordSet installs rs as the active set, replacing the previous one,
// recomputes the aggregates and drops recommendations made for older data.
func (s *State) SetRecordSet(rs *models.RecordSet) {
	d := derive(rs)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SetRecordSet(rs)
	s.derived = d
	s.version++
	s.recommendations = ""
	s.recommendationsAt = time.Time{}
	s.LastUpdated = time.Now()
}

// RecordSet returns the active record set, or nil.
func (s *State) RecordSet() *models.RecordSet {
	return s.session.RecordSet()
}

// HasData reports whether a record set is loaded.
func (s *State) HasData() bool {
	return s.session.HasData()
}

// Derived returns the aggregates of the active set.
func (s *State) Derived() Derived {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.derived
}

// Version increments every time the active set is replaced.
func (s *State) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SetRecommendations stores the latest generated report.
func (s *State) SetRecommendations(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendations = text
	s.recommendationsAt = time.Now()
}

// Recommendations returns the latest report and when it was generated.
func (s *State) Recommendations() (string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recommendations, s.recommendationsAt
}

// AppendMessage adds an entry to the chat transcript.
func (s *State) AppendMessage(role session.Role, content string, isError bool) {
	s.session.Append(role, content, isError)
}

// ClearTranscript empties the chat transcript.
func (s *State) ClearTranscript() {
	s.session.ClearTranscript()
}

// Transcript returns the chat transcript.
func (s *State) Transcript() []session.Message {
	return s.session.Transcript()
}

// SetJournalStats stores the latest journal summary and recent calls.
func (s *State) SetJournalStats(stats *models.JournalStats, recent []models.AdvisoryCall) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal = stats
	s.recentCalls = recent
}

// JournalStats returns the latest journal summary, or nil.
func (s *State) JournalStats() *models.JournalStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal
}

// RecentAdvisoryCalls returns the latest journaled advisory calls, newest first.
func (s *State) RecentAdvisoryCalls() []models.AdvisoryCall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recentCalls
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case ResourceData:
		s.Loading.Data = loading
	case ResourceAdvisor:
		s.Loading.Advisor = loading
	case ResourceExport:
		s.Loading.Export = loading
	case ResourceJournal:
		s.Loading.Journal = loading
	}
}

// IsLoading reports whether resource is in flight.
func (s *State) IsLoading(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch resource {
	case ResourceData:
		return s.Loading.Data
	case ResourceAdvisor:
		return s.Loading.Advisor
	case ResourceExport:
		return s.Loading.Export
	case ResourceJournal:
		return s.Loading.Journal
	}
	return false
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Data || s.Loading.Advisor || s.Loading.Export || s.Loading.Journal
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Data {
		resources = append(resources, ResourceData)
	}
	if s.Loading.Advisor {
		resources = append(resources, ResourceAdvisor)
	}
	if s.Loading.Export {
		resources = append(resources, ResourceExport)
	}
	if s.Loading.Journal {
		resources = append(resources, ResourceJournal)
	}
	return resources
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := fmt.Sprintf("%s-%d", time.Now().Format("20060102150405"), s.notificationSeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}
