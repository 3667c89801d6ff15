package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Spinner steps through the frames of a bubbles spinner on our own tick.
type Spinner struct {
	frames []string
	frame  int
}

func NewSpinner() *Spinner {
	return &Spinner{frames: spinner.Dot.Frames}
}

func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

func (s *Spinner) View() string {
	return s.frames[s.frame]
}

// LoadingIndicator is a spinner, a message and the time spent so far.
type LoadingIndicator struct {
	spinner *Spinner
	message string
	started time.Time
}

func NewLoadingIndicator(message string) *LoadingIndicator {
	return &LoadingIndicator{
		spinner: NewSpinner(),
		message: message,
		started: time.Now(),
	}
}

func (l *LoadingIndicator) SetMessage(message string) {
	l.message = message
}

func (l *LoadingIndicator) Tick() {
	l.spinner.Next()
}

func (l *LoadingIndicator) View() string {
	spinnerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	messageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	elapsedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	elapsed := time.Since(l.started).Truncate(100 * time.Millisecond)
	return fmt.Sprintf("%s %s %s",
		spinnerStyle.Render(l.spinner.View()),
		messageStyle.Render(l.message),
		elapsedStyle.Render(fmt.Sprintf("(%s)", elapsed)))
}

// LoadingOverlay centres the indicator and a cancel hint in a width x height
// box.
func LoadingOverlay(width, height int, indicator *LoadingIndicator) string {
	cancelHint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("[ESC to cancel]")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(indicator.View() + "\n\n" + cancelHint)
}
