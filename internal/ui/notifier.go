package ui

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const (
	notificationColorConstant   = "#00FA9A"
	notificationNewlineConstant = "\n"
)

// ConsoleNotifier writes workflow notifications to a writer, one styled line each.
type ConsoleNotifier struct {
	mutex  sync.Mutex
	writer io.Writer
	style  lipgloss.Style
}

// NewConsoleNotifier constructs a notifier that styles messages for the provided writer.
func NewConsoleNotifier(writer io.Writer) *ConsoleNotifier {
	if writer == nil {
		writer = io.Discard
	}
	renderer := lipgloss.NewRenderer(writer)
	return &ConsoleNotifier{
		writer: writer,
		style:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(notificationColorConstant)),
	}
}

// Notify implements shared.Notifier. Write failures are ignored.
func (notifier *ConsoleNotifier) Notify(message string) {
	if notifier == nil {
		return
	}
	trimmedMessage := strings.TrimSpace(message)
	if len(trimmedMessage) == 0 {
		return
	}

	notifier.mutex.Lock()
	defer notifier.mutex.Unlock()
	_, _ = io.WriteString(notifier.writer, notifier.style.Render(trimmedMessage)+notificationNewlineConstant)
}
