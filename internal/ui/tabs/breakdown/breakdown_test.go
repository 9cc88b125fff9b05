package breakdown

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/j-veylop/gig-worker-hub/internal/app"
	"github.com/j-veylop/gig-worker-hub/internal/models"
)

func threeJobs() *models.RecordSet {
	d := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
	return &models.RecordSet{Records: []models.Record{
		{Date: d, Platform: "A", Earnings: decimal.NewFromInt(10), Hours: 1},
		{Date: d, Platform: "A", Earnings: decimal.NewFromInt(20), Hours: 3},
		{Date: d, Platform: "B", Earnings: decimal.NewFromInt(5), Hours: 2},
	}}
}

func TestModel_EmptyView(t *testing.T) {
	m := New(app.NewState(nil))
	m.SetSize(100, 40)
	if view := ansi.Strip(m.View()); !strings.Contains(view, "No data loaded") {
		t.Error("empty state should be shown")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_ViewWithData(t *testing.T) {
	state := app.NewState(nil)
	state.SetRecordSet(threeJobs())

	m := New(state)
	m.SetSize(120, 80)

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"2 platforms",
		"$30.00", "$15.00", "$5.00",
		"85.7%", "14.3%",
		"Share of Earnings",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ToggleSort(t *testing.T) {
	state := app.NewState(nil)
	state.SetRecordSet(&models.RecordSet{Records: []models.Record{
		{Platform: "Alpha", Earnings: decimal.NewFromInt(1), Hours: 1},
		{Platform: "Zeta", Earnings: decimal.NewFromInt(9), Hours: 1},
	}})
	m := New(state)

	stats, _ := m.rows()
	if stats[0].Platform != "Alpha" {
		t.Errorf("default order should be by name, got %s first", stats[0].Platform)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	stats, shares := m.rows()
	if stats[0].Platform != "Zeta" {
		t.Errorf("earnings order should put Zeta first, got %s", stats[0].Platform)
	}
	if shares[0] != 0.9 {
		t.Errorf("share = %v, want 0.9", shares[0])
	}

	if state.Derived().Platforms[0].Platform != "Alpha" {
		t.Error("sorting must not reorder the shared aggregates")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if m.order != sortByName {
		t.Error("second toggle should return to name order")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(nil))
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
