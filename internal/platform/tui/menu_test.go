package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hexfront/internal/core"
	"github.com/vovakirdan/hexfront/internal/registry"
	"github.com/vovakirdan/hexfront/internal/storage"
)

func init() {
	registry.Register("menu_test_a", func() registry.Game { return &fakeGame{} })
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(MenuModel)
	require.True(t, ok)
	return model
}

func TestMenuSelect(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	m := NewMenuModel(nil, cfg)
	require.NotEmpty(t, m.items)

	last := len(m.items) - 1
	for range m.items {
		m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, last, m.cursor, "cursor stops at the last item")

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())

	res := menuResult(m)
	assert.Equal(t, m.items[last].GameID, res.GameID)
	assert.False(t, res.Quit)
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	h := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, menuResult(h).WantsHistory)

	q := menuUpdate(t, m, runeKey('q'))
	assert.True(t, menuResult(q).Quit)
	assert.Empty(t, q.View())
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m = menuUpdate(t, m, tea.WindowSizeMsg{Width: 132, Height: 50})

	assert.Equal(t, 132, m.Config().ScreenW)
	assert.Equal(t, 50, m.Config().ScreenH)
}

func TestMenuViewShowsStats(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "matches.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.SaveMatch(storage.Match{MatchID: "a", Mode: "hexfront", Winner: "RED", EndReason: "capture", Turns: 9})
	require.NoError(t, err)

	view := NewMenuModel(store, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}).View()
	assert.Contains(t, view, "H E X F R O N T")
	assert.Contains(t, view, "1 matches played")
	assert.Contains(t, view, "RED 1")
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "toolong", centerText("toolong", 4))
	assert.False(t, strings.HasPrefix(centerText("x", 1), " "))
}

func TestHistoryTabs(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "matches.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.SaveMatch(storage.Match{MatchID: "a", Mode: "menu_test_a", Winner: "BLUE", EndReason: "turn_limit", Turns: 1200})
	require.NoError(t, err)
	_, err = store.SaveMatch(storage.Match{MatchID: "b", Mode: "other", Winner: "RED", EndReason: "score", Turns: 5})
	require.NoError(t, err)

	m := NewHistoryModel(store, 100, 30)
	require.Equal(t, "All", m.tabs[0].title)
	assert.Len(t, m.matches, 2)
	assert.Equal(t, 2, m.stats.Matches)

	idx := -1
	for i, tab := range m.tabs {
		if tab.mode == "menu_test_a" {
			idx = i
		}
	}
	require.Positive(t, idx)

	for range idx {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(HistoryModel)
	}
	require.Len(t, m.matches, 1)
	assert.Equal(t, "a", m.matches[0].MatchID)

	rows := historyRows(m.matches)
	assert.Equal(t, "turn limit", rows[0][3])
	assert.Equal(t, "1,200", rows[0][4])

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, idx-1, next.(HistoryModel).tab)

	next, _ = m.Update(runeKey('b'))
	assert.True(t, next.(HistoryModel).IsGoingBack())
}

func TestStatsLine(t *testing.T) {
	assert.Equal(t, "No matches recorded yet.", statsLine(nil))
	assert.Equal(t, "No matches recorded yet.", statsLine(&storage.Stats{}))

	line := statsLine(&storage.Stats{Matches: 1500, BlueWins: 800, RedWins: 600, Unfinished: 100, AvgTurns: 12.5})
	assert.Contains(t, line, "1,500 played")
	assert.Contains(t, line, "avg 12.5 turns")
}
