package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gig-worker-hub/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func loadFileCmd(mgr *services.Manager, path string) tea.Cmd {
	return func() tea.Msg {
		rs, err := mgr.LoadFile(path)
		return DataLoadedMsg{RecordSet: rs, Source: path, Error: err}
	}
}

func loadSampleCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		rs := mgr.LoadSample()
		return DataLoadedMsg{RecordSet: rs, Source: rs.Source}
	}
}

func exportSampleCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		path, err := mgr.ExportSample()
		return ExportResultMsg{Path: path, Error: err}
	}
}

// recommendCmd runs the advisor off the UI loop, bounded by the configured
// timeout. The record set is captured before the goroutine starts.
func recommendCmd(mgr *services.Manager, state *State) tea.Cmd {
	rs := state.RecordSet()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mgr.AdvisorTimeout())
		defer cancel()
		return RecommendationsMsg{Text: mgr.Recommend(ctx, rs)}
	}
}

func askCmd(mgr *services.Manager, question string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mgr.AdvisorTimeout())
		defer cancel()
		return AnswerMsg{Question: question, Text: mgr.Ask(ctx, question)}
	}
}

// recentCallsLimit is how many journaled advisory calls the Info tab lists.
const recentCallsLimit = 5

func journalStatsCmd(mgr *services.Manager) tea.Cmd {
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		stats, err := mgr.JournalStats()
		if err != nil {
			return JournalStatsMsg{Error: err}
		}
		recent, err := mgr.RecentAdvisoryCalls(recentCallsLimit)
		return JournalStatsMsg{Stats: stats, Recent: recent, Error: err}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// WaitForServiceEvent is the public version for use in models.
func WaitForServiceEvent(ch <-chan services.ServiceEvent) tea.Cmd {
	return services.WaitForEvent(ch)
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// LoadFile validates and loads the file at path.
func (c *Commands) LoadFile(path string) tea.Cmd {
	return loadFileCmd(c.manager, path)
}

// LoadSample generates a demonstration set.
func (c *Commands) LoadSample() tea.Cmd {
	return loadSampleCmd(c.manager)
}

// ExportSample writes sample data to the configured path.
func (c *Commands) ExportSample() tea.Cmd {
	return exportSampleCmd(c.manager)
}

// Recommend generates a performance report for the active set.
func (c *Commands) Recommend(state *State) tea.Cmd {
	return recommendCmd(c.manager, state)
}

// Ask sends a chat question to the advisor.
func (c *Commands) Ask(question string) tea.Cmd {
	return askCmd(c.manager, question)
}

// LoadJournalStats reads the journal summary.
func (c *Commands) LoadJournalStats() tea.Cmd {
	return journalStatsCmd(c.manager)
}

// SubscribeToServices returns a command that subscribes to service events.
func (c *Commands) SubscribeToServices() tea.Cmd {
	return subscribeToServicesCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return tea.Quit
}

// Batch combines multiple commands into one.
func (c *Commands) Batch(cmds ...tea.Cmd) tea.Cmd {
	return tea.Batch(cmds...)
}
