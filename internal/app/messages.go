package app

import (
	"time"

	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// LoadFileMsg requests validation and loading of an earnings file.
type LoadFileMsg struct {
	Path string
}

// LoadSampleMsg requests a freshly generated demonstration set.
type LoadSampleMsg struct{}

// DataLoadedMsg carries the result of a load.
type DataLoadedMsg struct {
	RecordSet *models.RecordSet
	Source    string
	Error     error
}

// ExportSampleMsg requests writing sample data to disk.
type ExportSampleMsg struct{}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Path  string
	Error error
}

// RequestRecommendationsMsg asks the advisor for a performance report.
type RequestRecommendationsMsg struct{}

// RecommendationsMsg carries the generated report or its failure text.
type RecommendationsMsg struct {
	Text string
}

// AskQuestionMsg submits a free-form chat question.
type AskQuestionMsg struct {
	Question string
}

// AnswerMsg carries the advisor's reply to a chat question.
type AnswerMsg struct {
	Question string
	Text     string
}

// ClearChatMsg empties the chat transcript.
type ClearChatMsg struct{}

// JournalStatsMsg carries the latest journal summary.
type JournalStatsMsg struct {
	Stats  *models.JournalStats
	Recent []models.AdvisoryCall
	Error  error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearNotificationsMsg requests clearing all notifications.
type ClearNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// DataChangedMsg is broadcast to tabs after the active set changes.
type DataChangedMsg struct {
	Version int
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
