// Package notify reports the outcome of a speak run to the user.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notifier delivers a short status message. Implementations must not block
// for long and must be safe for concurrent use.
type Notifier interface {
	Notify(title, message string, isError bool)
}

// Console prints styled notifications to a writer, typically stderr.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	title lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
	body  lipgloss.Style
}

// NewConsole creates a Console writing to w. Colors are used only when w is
// a terminal.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:     w,
		title: r.NewStyle().Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("#4ECB71")).Bold(true),
		fail:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		body:  r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// Notify implements Notifier.
func (c *Console) Notify(title, message string, isError bool) {
	mark := c.ok.Render("✓")
	if isError {
		mark = c.fail.Render("✗")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", mark, c.title.Render(title))
	if message != "" {
		fmt.Fprintf(c.w, "  %s\n", c.body.Render(message))
	}
}

// Log sends notifications to a structured logger.
type Log struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (l Log) Notify(title, message string, isError bool) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if isError {
		logger.Error(title, "detail", message)
		return
	}
	logger.Info(title, "detail", message)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(title, message string, isError bool) {
	for _, n := range m {
		n.Notify(title, message, isError)
	}
}

// Nop discards notifications.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(string, string, bool) {}
