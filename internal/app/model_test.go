package app

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/gig-worker-hub/internal/models"
	"github.com/j-veylop/gig-worker-hub/internal/services"
	"github.com/j-veylop/gig-worker-hub/internal/session"
)

// stubTab records the messages it receives.
type stubTab struct {
	msgs      []tea.Msg
	capturing bool
	width     int
	height    int
}

func (s *stubTab) Init() tea.Cmd { return nil }

func (s *stubTab) Update(msg tea.Msg) (Tab, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *stubTab) View() string              { return "stub view" }
func (s *stubTab) SetSize(w, h int)          { s.width, s.height = w, h }
func (s *stubTab) ShortHelp() []key.Binding  { return nil }
func (s *stubTab) FullHelp() [][]key.Binding { return nil }
func (s *stubTab) CapturingInput() bool      { return s.capturing }

func (s *stubTab) received(want tea.Msg) bool {
	for _, m := range s.msgs {
		if reflect.DeepEqual(m, want) {
			return true
		}
	}
	return false
}

func stubTabs() []*stubTab {
	tabs := make([]*stubTab, len(tabNames))
	for i := range tabs {
		tabs[i] = &stubTab{}
	}
	return tabs
}

func withStubTabs(m *Model) []*stubTab {
	stubs := stubTabs()
	tabs := make([]Tab, len(stubs))
	for i, s := range stubs {
		tabs[i] = s
	}
	m.SetTabs(tabs)
	return stubs
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runCmd executes cmd, flattening batches, and returns the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func lastNotification(t *testing.T, m *Model) Notification {
	t.Helper()
	notifs := m.state.GetNotifications()
	if len(notifs) == 0 {
		t.Fatal("expected a notification")
	}
	return notifs[len(notifs)-1]
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabData {
		t.Error("Default tab should be Data")
	}
	if len(model.tabs) != 5 {
		t.Errorf("Should have 5 tab slots, got %d", len(model.tabs))
	}
}

func TestNewModel_SharesManagerSession(t *testing.T) {
	mgr := newTestManager(t, nil)
	model := NewModel(mgr)
	if model.state.Session().ID() != mgr.Session().ID() {
		t.Error("state should wrap the manager's session")
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	if model.Init() == nil {
		t.Error("Init returned nil command")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)
	stubs := withStubTabs(model)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}

	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, want 100x50", m.width, m.height)
	}
	if !m.ready {
		t.Error("Model should be ready after WindowSizeMsg")
	}
	if stubs[0].width != 100 || stubs[0].height != 45 {
		t.Errorf("tab size = %dx%d, want 100x45", stubs[0].width, stubs[0].height)
	}
}

func TestModel_TabSwitching(t *testing.T) {
	model := NewModel(nil)
	withStubTabs(model)

	model.Update(TabSwitchMsg{Tab: TabBreakdown})
	if model.activeTab != TabBreakdown {
		t.Errorf("ActiveTab = %v, want Breakdown", model.activeTab)
	}

	tests := []struct {
		key  rune
		want TabID
	}{
		{'1', TabData},
		{'2', TabOverview},
		{'3', TabBreakdown},
		{'4', TabAdvisor},
		{'5', TabInfo},
	}
	for _, tt := range tests {
		model.Update(keyRune(tt.key))
		if model.activeTab != tt.want {
			t.Errorf("key %c: ActiveTab = %v, want %v", tt.key, model.activeTab, tt.want)
		}
	}

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.activeTab != TabData {
		t.Errorf("next tab should wrap to Data, got %v", model.activeTab)
	}
	model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.activeTab != TabInfo {
		t.Errorf("prev tab should wrap to Info, got %v", model.activeTab)
	}

	model.Update(TabSwitchMsg{Tab: TabID(42)})
	if model.activeTab != TabInfo {
		t.Error("out of range tab switch should be ignored")
	}
}

func TestModel_CapturingInputBypassesShortcuts(t *testing.T) {
	model := NewModel(nil)
	stubs := withStubTabs(model)
	stubs[TabData].capturing = true

	msg := keyRune('q')
	_, cmd := model.Update(msg)

	for _, m := range runCmd(cmd) {
		if _, ok := m.(tea.QuitMsg); ok {
			t.Fatal("q should be typed into the input, not quit")
		}
	}
	if !stubs[TabData].received(msg) {
		t.Error("key should reach the capturing tab")
	}

	model.Update(keyRune('3'))
	if model.activeTab != TabData {
		t.Error("digits should not switch tabs while typing")
	}

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	quit := false
	for _, m := range runCmd(cmd) {
		if _, ok := m.(tea.QuitMsg); ok {
			quit = true
		}
	}
	if !quit {
		t.Error("ctrl+c should always quit")
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(TickMsg{Time: time.Now()})
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	view := model.View()
	if !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	model.ready = true
	model.width = 100
	model.height = 24

	view = model.View()
	for _, name := range tabNames {
		if !strings.Contains(view, name) {
			t.Errorf("View should show %s tab", name)
		}
	}
	if !strings.Contains(view, "Nothing to show") {
		t.Error("View should show placeholder text")
	}
}

func TestModel_Help(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 80
	model.height = 24

	model.Update(ToggleHelpMsg{})
	if !model.showHelp {
		t.Error("showHelp should be true")
	}

	if !strings.Contains(model.View(), "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}

	model.Update(keyRune('?'))
	if model.showHelp {
		t.Error("showHelp should be false after toggle")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)

	model.Update(AddNotificationMsg{Message: "Test Note", Type: NotificationInfo})

	if len(model.state.GetNotifications()) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(model.state.GetNotifications()))
	}

	model.ready = true
	model.width = 80
	model.height = 24
	if !strings.Contains(model.View(), "Test Note") {
		t.Error("View should show notification")
	}

	model.Update(ClearNotificationsMsg{})
	if len(model.state.GetNotifications()) != 0 {
		t.Error("notifications should be cleared")
	}
}

func TestModel_DataLoaded(t *testing.T) {
	model := NewModel(nil)
	stubs := withStubTabs(model)
	model.state.SetLoading(ResourceData, true)

	rs := sampleSet()
	_, cmd := model.Update(DataLoadedMsg{RecordSet: rs, Source: rs.Source})

	if model.state.RecordSet() != rs {
		t.Fatal("record set should be installed")
	}
	if model.state.IsLoading(ResourceData) {
		t.Error("data loading should be cleared")
	}

	var changed bool
	for _, msg := range runCmd(cmd) {
		if dc, ok := msg.(DataChangedMsg); ok {
			changed = true
			model.Update(dc)
			for i, s := range stubs {
				if !s.received(dc) {
					t.Errorf("tab %d did not receive DataChangedMsg", i)
				}
			}
		}
	}
	if !changed {
		t.Error("DataChangedMsg should be emitted")
	}
}

func TestModel_DataLoadFailureKeepsPreviousSet(t *testing.T) {
	model := NewModel(nil)
	prev := sampleSet()
	model.state.SetRecordSet(prev)

	_, cmd := model.Update(DataLoadedMsg{Error: errors.New("missing required columns: hours")})
	for _, msg := range runCmd(cmd) {
		model.Update(msg)
	}

	if model.state.RecordSet() != prev {
		t.Error("failed load must keep the previous set")
	}
	n := lastNotification(t, model)
	if n.Type != NotificationError || !strings.Contains(n.Message, "hours") {
		t.Errorf("expected error toast naming the column, got %+v", n)
	}
}

func TestModel_RequestRecommendationsWithoutData(t *testing.T) {
	model := NewModel(newTestManager(t, echoGenerator("advice")))

	_, cmd := model.Update(RequestRecommendationsMsg{})
	for _, msg := range runCmd(cmd) {
		model.Update(msg)
	}

	if model.state.IsLoading(ResourceAdvisor) {
		t.Error("advisor should not start without data")
	}
	if n := lastNotification(t, model); n.Type != NotificationWarning {
		t.Errorf("Type = %v, want warning", n.Type)
	}
}

func TestModel_RecommendationsFlow(t *testing.T) {
	model := NewModel(newTestManager(t, echoGenerator("- raise your rate")))
	model.state.SetRecordSet(sampleSet())

	_, cmd := model.Update(RequestRecommendationsMsg{})
	if !model.state.IsLoading(ResourceAdvisor) {
		t.Fatal("advisor should be loading")
	}

	for _, msg := range runCmd(cmd) {
		if rec, ok := msg.(RecommendationsMsg); ok {
			model.Update(rec)
		}
	}

	text, _ := model.state.Recommendations()
	if text != "- raise your rate" {
		t.Errorf("recommendations = %q", text)
	}
	if model.state.IsLoading(ResourceAdvisor) {
		t.Error("advisor loading should be cleared")
	}
}

func TestModel_RecommendationsFailureToast(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(RecommendationsMsg{Text: "Error generating report: timeout"})
	for _, msg := range runCmd(cmd) {
		model.Update(msg)
	}
	if n := lastNotification(t, model); n.Type != NotificationError {
		t.Errorf("Type = %v, want error", n.Type)
	}
}

func TestModel_AskFlow(t *testing.T) {
	model := NewModel(newTestManager(t, echoGenerator("Drive during rush hour.")))

	_, cmd := model.Update(AskQuestionMsg{Question: "  when should I drive?  "})

	msgs := model.state.Transcript()
	if len(msgs) != 1 || msgs[0].Role != session.RoleUser || msgs[0].Content != "when should I drive?" {
		t.Fatalf("user turn not recorded: %+v", msgs)
	}

	for _, msg := range runCmd(cmd) {
		if ans, ok := msg.(AnswerMsg); ok {
			model.Update(ans)
		}
	}

	msgs = model.state.Transcript()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[1].Role != session.RoleAssistant || msgs[1].IsError {
		t.Errorf("assistant turn = %+v", msgs[1])
	}
}

func TestModel_AskIgnoresBlank(t *testing.T) {
	model := NewModel(newTestManager(t, echoGenerator("x")))
	model.Update(AskQuestionMsg{Question: "   "})
	if len(model.state.Transcript()) != 0 {
		t.Error("blank question should be ignored")
	}
}

func TestModel_AnswerFailureFlagged(t *testing.T) {
	model := NewModel(nil)
	model.Update(AnswerMsg{Question: "q", Text: "Error generating response: boom"})

	msgs := model.state.Transcript()
	if len(msgs) != 1 || !msgs[0].IsError {
		t.Errorf("failure answer should be flagged: %+v", msgs)
	}

	model.Update(ClearChatMsg{})
	if len(model.state.Transcript()) != 0 {
		t.Error("transcript should be cleared")
	}
}

func TestModel_JournalStats(t *testing.T) {
	model := NewModel(nil)
	model.Update(JournalStatsMsg{Stats: &models.JournalStats{DataLoads: 4}})
	if model.state.JournalStats().DataLoads != 4 {
		t.Error("journal stats should be stored")
	}

	model.Update(JournalStatsMsg{Error: errors.New("locked")})
	if model.state.JournalStats().DataLoads != 4 {
		t.Error("failed read should keep previous stats")
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	rs := sampleSet()
	cmd := model.handleServiceEvent(services.DataReloadedEvent{Path: "/tmp/earnings.csv", RecordSet: rs})
	if cmd == nil {
		t.Fatal("reload should produce commands")
	}
	if model.state.RecordSet() != rs {
		t.Error("reloaded set should replace the active set")
	}

	cmd = model.handleServiceEvent(services.ErrorEvent{Service: "datafile", Error: errors.New("bad date")})
	msg, ok := cmd().(AddNotificationMsg)
	if !ok {
		t.Fatal("error event should add a notification")
	}
	if msg.Type != NotificationError || !strings.Contains(msg.Message, "datafile") {
		t.Errorf("unexpected notification %+v", msg)
	}
}

func TestModel_LoadFileBlankPath(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(LoadFileMsg{Path: "  "})
	for _, msg := range runCmd(cmd) {
		model.Update(msg)
	}
	if n := lastNotification(t, model); n.Type != NotificationWarning {
		t.Errorf("Type = %v, want warning", n.Type)
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

func TestTabID_String(t *testing.T) {
	tests := []struct {
		id   TabID
		want string
	}{
		{TabData, "Data"},
		{TabOverview, "Overview"},
		{TabBreakdown, "Breakdown"},
		{TabAdvisor, "Advisor"},
		{TabInfo, "Info"},
		{TabID(999), "Unknown"},
		{TabID(-1), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
