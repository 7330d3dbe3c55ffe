package prompt

import (
	"io"

	"golang.org/x/term"

	"github.com/temirov/spacesync/internal/spaces/shared"
)

type fileDescriptorProvider interface {
	Fd() uintptr
}

// TerminalDetector reports whether a file descriptor refers to a terminal.
type TerminalDetector func(fileDescriptor int) bool

// Selector picks the interactive prompter for the provided streams.
type Selector struct {
	IsTerminal TerminalDetector
}

// NewSelector constructs a Selector backed by golang.org/x/term.
func NewSelector() Selector {
	return Selector{IsTerminal: term.IsTerminal}
}

// Select returns a FormPrompter when input is a terminal and a LinePrompter otherwise.
func (selector Selector) Select(input io.Reader, output io.Writer) shared.Prompter {
	if selector.isTerminal(input) {
		return NewFormPrompter(input, output)
	}
	return NewLinePrompter(input, output)
}

func (selector Selector) isTerminal(input io.Reader) bool {
	if selector.IsTerminal == nil {
		return false
	}
	descriptorProvider, hasDescriptor := input.(fileDescriptorProvider)
	if !hasDescriptor {
		return false
	}
	return selector.IsTerminal(int(descriptorProvider.Fd()))
}
