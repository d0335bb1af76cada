package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pinball/internal/storage"
)

func TestRunRows(t *testing.T) {
	rows := runRows([]storage.Run{
		{Outcome: storage.OutcomeClear, Money: 505, Launches: 7, Duration: 125},
		{Outcome: storage.OutcomeDead, Money: 12, Launches: 3, Duration: 9},
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := []string{"#1", "cleared", "$505", "7", "2:05"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 col %d = %q, expected %q", i, rows[0][i], cell)
		}
	}
	if rows[1][1] != "failed" || rows[1][4] != "0:09" {
		t.Errorf("unexpected row: %v", rows[1])
	}
}

func TestScoreboardViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(storage.Run{GameID: "pinball", Outcome: storage.OutcomeClear, Money: 505, Duration: 200})
	store.SaveRun(storage.Run{GameID: "pinball", Outcome: storage.OutcomeDead, Money: 40, Duration: 30})

	m := NewScoreboardModel("pinball", "Pinball", store, 100, 30)
	if len(m.runs) != 2 || !m.runs[0].Won() {
		t.Fatalf("best view should list the cleared run first: %+v", m.runs)
	}
	if !strings.Contains(m.View(), "Best runs") {
		t.Error("title should name the view")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if runViews[m.view] != viewRecent || m.runs[0].Won() {
		t.Errorf("recent view should list the newest run first: %+v", m.runs)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back to the menu")
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel("pinball", "Pinball", nil, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Errorf("expected empty message:\n%s", m.View())
	}
}
