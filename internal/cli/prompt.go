package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Prompt asks questions on a writer and reads the answers from a reader.
// Reads can be abandoned through their context.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
	mu  sync.Mutex
}

// NewPrompt creates a prompt reading from in and writing to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	if out == nil {
		out = io.Discard
	}
	return &Prompt{
		in:  bufio.NewReader(in),
		out: out,
	}
}

type readResult struct {
	err  error
	line string
}

// ReadLine returns the next line without surrounding whitespace. A final line
// without a newline is returned with io.EOF.
func (p *Prompt) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	done := make(chan readResult, 1)
	go func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		line, err := p.in.ReadString('\n')
		done <- readResult{line: strings.TrimSpace(line), err: err}
	}()

	// An abandoned read keeps its goroutine until the reader returns.
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-done:
		return res.line, res.err
	}
}

// Confirm asks a yes/no question. Only "y" and "yes" count as yes; EOF is a
// no.
func (p *Prompt) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.out, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	reply, err := p.ReadLine(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(reply) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
