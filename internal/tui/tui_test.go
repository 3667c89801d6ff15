package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/sessions"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timetable"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

var fixture = []models.Session{
	{Subject: "Maths", Teacher: "Dr.X", Division: "A", Day: "Monday", Time: "08:30-09:30", Room: "101"},
	{Subject: "Physics", Teacher: "Dr.Y", Division: "B", Day: "Tuesday", Time: "09:30-10:30", Room: "102"},
	{Subject: "LAB BATCH B1 - Physics", Teacher: "Dr.P", Division: "A", Day: "Monday", Time: "01:30-02:30", Room: "PL1"},
}

func loadedModel(t *testing.T) model {
	t.Helper()
	m := initialModel(Config{Source: "test.csv"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	next, _ = next.Update(StoreLoadedMsg{Store: sessions.NewStore(fixture, sessions.StoreOptions{})})
	return next.(model)
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestModelInitialization(t *testing.T) {
	m := initialModel(Config{Source: "x.csv"})

	if m.screen != modeScreen {
		t.Error("initial screen should be the mode menu")
	}
	if m.loadingState != sessions.StateIdle {
		t.Error("initial loading state should be idle")
	}
	if m.View() != "\n  Initializing..." {
		t.Errorf("unexpected view before first resize: %q", m.View())
	}
}

func TestKeysBeforeLoadStarts(t *testing.T) {
	load := func(ctx context.Context) <-chan sessions.LoadResult {
		return make(chan sessions.LoadResult)
	}
	m := initialModel(Config{Source: "slow.csv", Load: load})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(model)

	m = press(t, m, "enter", "down", "enter", "esc", "r")
	if m.screen != modeScreen || m.svc != nil {
		t.Errorf("keys before the store arrives should be ignored, screen %d", m.screen)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should still quit")
	}
}

func TestStoreLoaded(t *testing.T) {
	m := loadedModel(t)

	if m.loadingState != sessions.StateReady {
		t.Errorf("expected ready, got %s", m.loadingState)
	}
	if m.svc == nil {
		t.Fatal("service should be built once the store arrives")
	}
	if !strings.Contains(m.status, "3 sessions loaded") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestStoreLoadFailure(t *testing.T) {
	m := initialModel(Config{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	next, _ = next.Update(StoreLoadedMsg{Error: errors.New("boom")})
	m = next.(model)

	if m.loadingState != sessions.StateError {
		t.Errorf("expected error state, got %s", m.loadingState)
	}
	if !strings.Contains(m.View(), "Error: boom") {
		t.Error("load error should show in the footer")
	}

	// A failed load still browses, with nothing to choose from.
	m = press(t, m, "enter")
	if m.screen != selectorScreen || len(m.selectors) != 0 {
		t.Errorf("expected an empty selector list, got %v", m.selectors)
	}
}

func TestBrowseClassroom(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "enter")

	if m.screen != selectorScreen {
		t.Fatal("enter on the menu should open the selector")
	}
	if len(m.selectors) != 2 || m.selectors[0] != "101" {
		t.Fatalf("unexpected rooms %v", m.selectors)
	}

	m = press(t, m, "enter")
	if m.screen != resultScreen || m.grid == nil {
		t.Fatal("enter on a room should show its grid")
	}
	if m.grid.Title != "Schedule for Classroom: 101" {
		t.Errorf("unexpected title %q", m.grid.Title)
	}
	if !strings.Contains(m.View(), "Maths") {
		t.Error("result view should render the grid")
	}

	m = press(t, m, "esc")
	if m.screen != selectorScreen {
		t.Error("esc should go back to the selector")
	}
	m = press(t, m, "esc")
	if m.screen != modeScreen {
		t.Error("esc should go back to the menu")
	}
}

func TestBrowseDayShowsLabs(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "down", "enter")

	if m.menuItem().view != timetable.DayView {
		t.Fatalf("expected day view, got %s", m.menuItem().view)
	}
	if m.selectors[0] != "Monday" {
		t.Fatalf("unexpected days %v", m.selectors)
	}

	m = press(t, m, "enter")
	if len(m.labs) != 1 || m.labs[0].Time != "01:30-03:30" {
		t.Errorf("expected one normalised lab, got %+v", m.labs)
	}
}

func TestCursorBounds(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "up", "up")
	if m.menuCursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", m.menuCursor)
	}
	for range menu {
		m = press(t, m, "down")
	}
	if m.menuCursor != len(menu)-1 {
		t.Errorf("cursor should stop at the last item, got %d", m.menuCursor)
	}
}

func TestLiveNow(t *testing.T) {
	m := initialModel(Config{Service: timetable.ServiceOptions{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 19, 8, 45, 0, 0, time.UTC) },
	}})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	next, _ = next.Update(StoreLoadedMsg{Store: sessions.NewStore(fixture, sessions.StoreOptions{})})
	m = next.(model)

	for m.menuCursor < len(menu)-1 {
		m = press(t, m, "down")
	}
	m = press(t, m, "enter")

	if m.screen != resultScreen {
		t.Fatal("live now should skip the selector")
	}
	view := m.View()
	if !strings.Contains(view, "Live Schedule for Monday, 08:30-09:30") {
		t.Errorf("unexpected live view:\n%s", view)
	}
	if !strings.Contains(view, "r: refresh") {
		t.Error("live view should offer refresh")
	}

	m = press(t, m, "esc")
	if m.screen != modeScreen {
		t.Error("esc from live should return to the menu")
	}
}

func TestColumnPaging(t *testing.T) {
	m := loadedModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = next.(model)

	m = press(t, m, "enter", "enter")
	if visible := m.visibleColumns(); visible >= len(m.grid.Columns) {
		t.Fatalf("expected paging at width 60, %d of %d columns visible", visible, len(m.grid.Columns))
	}

	m = press(t, m, "left")
	if m.colOffset != 0 {
		t.Error("left at the first page should not move")
	}
	m = press(t, m, "right")
	if m.colOffset != 1 {
		t.Errorf("expected offset 1, got %d", m.colOffset)
	}
	for range 10 {
		m = press(t, m, "right")
	}
	if m.colOffset+m.visibleColumns() != len(m.grid.Columns) {
		t.Errorf("paging should stop at the last column, offset %d", m.colOffset)
	}
}

func TestEscCancelsLoad(t *testing.T) {
	release := make(chan struct{})
	load := func(ctx context.Context) <-chan sessions.LoadResult {
		ch := make(chan sessions.LoadResult)
		go func() {
			defer close(ch)
			select {
			case <-ctx.Done():
			case <-release:
			}
		}()
		return ch
	}
	defer close(release)

	m := initialModel(Config{Source: "slow.csv", Load: load})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	next, cmd := next.Update(loadStartedMsg{})
	m = next.(model)
	if m.loadingState != sessions.StateLoading || cmd == nil {
		t.Fatal("loadStartedMsg should start loading")
	}
	if !strings.Contains(m.View(), "ESC to cancel") {
		t.Error("loading overlay should offer cancel")
	}

	m = press(t, m, "esc")
	if m.loadingState != sessions.StateCancelling {
		t.Errorf("expected cancelling, got %s", m.loadingState)
	}

	// The cancelled loader closes its channel; the command reports it.
	msg := loadStoreCmd(canceledContext(), load)()
	next, _ = m.Update(msg)
	m = next.(model)
	if m.loadingState != sessions.StateError || m.err == nil {
		t.Error("a cancelled load should leave an error state")
	}
	if m.svc == nil || !m.svc.Store().Empty() {
		t.Error("a cancelled load should browse an empty store")
	}
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
