package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/sessions"
)

// Loader loads the Store; it must return when ctx is cancelled.
type Loader func(ctx context.Context) <-chan sessions.LoadResult

type (
	// StoreLoadedMsg carries the outcome of the startup load.
	StoreLoadedMsg struct {
		Store *sessions.Store
		Error error
	}

	// TickMsg drives the spinner.
	TickMsg time.Time
)

// loadStoreCmd waits for the loader. A load cancelled before it produced a
// result reports ctx's error.
func loadStoreCmd(ctx context.Context, load Loader) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-load(ctx)
		if !ok {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			return StoreLoadedMsg{Error: err}
		}
		return StoreLoadedMsg{Store: result.Store, Error: result.Err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
