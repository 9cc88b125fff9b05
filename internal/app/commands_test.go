package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gig-worker-hub/internal/advisor"
	"github.com/j-veylop/gig-worker-hub/internal/config"
	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/services"
	"github.com/j-veylop/gig-worker-hub/internal/sample"
)

const validCSV = "date,platform,hours,earnings\n2023-01-01,Uber,4,100\n2023-01-02,Lyft,2,40\n"

func newTestManager(t *testing.T, gen advisor.Generator) *services.Manager {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DatabasePath:     filepath.Join(dir, "journal.db"),
		SampleExportPath: filepath.Join(dir, "sample.csv"),
		AdvisorTimeout:   time.Second,
	}
	mgr, err := services.NewManager(cfg, gen, services.WithNotifier(func(string, string) error { return nil }))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func echoGenerator(reply string) advisor.Generator {
	return advisor.GeneratorFunc(func(_ context.Context, _ string) (string, error) {
		return reply, nil
	})
}

func TestCommands_Tick(t *testing.T) {
	cmds := NewCommands(nil)
	if cmds.Tick(time.Millisecond) == nil {
		t.Error("Tick returned nil")
	}
	if cmds.DefaultTick() == nil {
		t.Error("DefaultTick returned nil")
	}
}

func TestCommands_Notifications(t *testing.T) {
	cmds := NewCommands(nil)

	tests := []struct {
		name string
		fn   func(string) tea.Cmd
		want NotificationType
	}{
		{"Success", cmds.NotifySuccess, NotificationSuccess},
		{"Error", cmds.NotifyError, NotificationError},
		{"Warning", cmds.NotifyWarning, NotificationWarning},
		{"Info", cmds.NotifyInfo, NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
		})
	}
}

func TestCommands_Quit(t *testing.T) {
	cmds := NewCommands(nil)
	msg := cmds.Quit()()
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("Expected QuitMsg, got %T", msg)
	}
}

func TestCommands_LoadFile(t *testing.T) {
	mgr := newTestManager(t, nil)
	cmds := NewCommands(mgr)

	path := filepath.Join(t.TempDir(), "earnings.csv")
	if err := os.WriteFile(path, []byte(validCSV), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	msg, ok := cmds.LoadFile(path)().(DataLoadedMsg)
	if !ok {
		t.Fatal("LoadFile should produce DataLoadedMsg")
	}
	if msg.Error != nil {
		t.Fatalf("unexpected error: %v", msg.Error)
	}
	if msg.RecordSet.Len() != 2 {
		t.Errorf("Len = %d, want 2", msg.RecordSet.Len())
	}

	msg = cmds.LoadFile(filepath.Join(t.TempDir(), "missing.csv"))().(DataLoadedMsg)
	if msg.Error == nil {
		t.Error("missing file should fail")
	}
}

func TestCommands_LoadSample(t *testing.T) {
	cmds := NewCommands(newTestManager(t, nil))
	msg := cmds.LoadSample()().(DataLoadedMsg)
	if msg.RecordSet.Len() != sample.Days {
		t.Errorf("Len = %d, want %d", msg.RecordSet.Len(), sample.Days)
	}
	if msg.Source != sample.SourceName {
		t.Errorf("Source = %q, want %q", msg.Source, sample.SourceName)
	}
}

func TestCommands_ExportSample(t *testing.T) {
	mgr := newTestManager(t, nil)
	msg := NewCommands(mgr).ExportSample()().(ExportResultMsg)
	if msg.Error != nil {
		t.Fatalf("unexpected error: %v", msg.Error)
	}
	if _, err := os.Stat(msg.Path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestCommands_Recommend(t *testing.T) {
	mgr := newTestManager(t, echoGenerator("- track your hours"))
	state := NewState(mgr.Session())
	state.SetRecordSet(sampleSet())

	msg := NewCommands(mgr).Recommend(state)().(RecommendationsMsg)
	if msg.Text != "- track your hours" {
		t.Errorf("Text = %q", msg.Text)
	}
}

func TestCommands_AskFailure(t *testing.T) {
	gen := advisor.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("boom")
	})
	mgr := newTestManager(t, gen)

	msg := NewCommands(mgr).Ask("how am I doing?")().(AnswerMsg)
	if msg.Question != "how am I doing?" {
		t.Errorf("Question = %q", msg.Question)
	}
	if !advisor.IsFailure(msg.Text) {
		t.Errorf("Text should be failure-marked, got %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "boom") {
		t.Errorf("Text should carry the cause, got %q", msg.Text)
	}
}

func TestCommands_LoadJournalStats(t *testing.T) {
	if NewCommands(nil).LoadJournalStats() != nil {
		t.Error("nil manager should produce no command")
	}

	mgr := newTestManager(t, echoGenerator("keep going"))
	mgr.LoadSample()
	mgr.Ask(context.Background(), "how is my week?")

	msg := NewCommands(mgr).LoadJournalStats()().(JournalStatsMsg)
	if msg.Error != nil {
		t.Fatalf("unexpected error: %v", msg.Error)
	}
	if msg.Stats.DataLoads != 1 {
		t.Errorf("DataLoads = %d, want 1", msg.Stats.DataLoads)
	}
	if len(msg.Recent) != 1 || msg.Recent[0].Kind != models.AdvisoryQuestion {
		t.Errorf("Recent = %+v, want one question call", msg.Recent)
	}
}
