package prompt

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/temirov/spacesync/internal/spaces/shared"
)

const promptSuffixConstant = " "

// LinePrompter reads one line per prompt from an io.Reader. End of input
// without a response is reported as a cancelled prompt.
type LinePrompter struct {
	mutex  sync.Mutex
	reader *bufio.Reader
	writer io.Writer
}

// NewLinePrompter constructs a prompter from the provided reader and writer.
func NewLinePrompter(input io.Reader, output io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(input), writer: output}
}

// Prompt writes the request message and reads the response line.
func (prompter *LinePrompter) Prompt(executionContext context.Context, request shared.PromptRequest) (shared.PromptResult, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return shared.Cancelled(), contextError
	}

	prompter.mutex.Lock()
	defer prompter.mutex.Unlock()

	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, request.Message+promptSuffixConstant); writeError != nil {
			return shared.Cancelled(), writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil {
		if !errors.Is(readError, io.EOF) {
			return shared.Cancelled(), readError
		}
		if len(response) == 0 {
			return shared.Cancelled(), nil
		}
	}
	return shared.Answered(response), nil
}
