package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// historySink is the part of *liner.State the history mirror drives.
type historySink interface {
	AppendHistory(item string)
	ClearHistory()
}

// lineHistory mirrors the line editor's history so a single entry can be
// rewritten; liner itself can only append or clear.
type lineHistory struct {
	sink  historySink
	lines []string
}

func newLineHistory(sink historySink) *lineHistory { return &lineHistory{sink: sink} }

// Append records line the way liner does: blank lines and repeats of the
// previous entry are skipped.
func (h *lineHistory) Append(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	h.sink.AppendHistory(line)
}

func (h *lineHistory) Len() int { return len(h.lines) }

func (h *lineHistory) Replace(index int, line string) error {
	if index < 0 || index >= len(h.lines) {
		return fmt.Errorf("history index %d out of range [0, %d)", index, len(h.lines))
	}
	old := h.lines
	old[index] = line
	h.lines = nil
	h.sink.ClearHistory()
	for _, l := range old {
		h.Append(l)
	}
	return nil
}

// linerInput reads lines through liner and records each one in history, so
// the answer to ldform's question is the entry it rewrites.
type linerInput struct {
	ln   *liner.State
	hist *lineHistory
}

func newLinerInput(ln *liner.State) *linerInput {
	return &linerInput{ln: ln, hist: newLineHistory(ln)}
}

func (in *linerInput) Prompt(prompt string) (string, error) {
	line, err := in.ln.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	in.hist.Append(line)
	return line, nil
}

// plainInput reads from a non-terminal (pipe, file). Prompts are still
// written so transcripts read like a session.
type plainInput struct {
	r   *bufio.Reader
	out io.Writer
}

func newPlainInput(r io.Reader, out io.Writer) *plainInput {
	return &plainInput{r: bufio.NewReader(r), out: out}
}

func (in *plainInput) Prompt(prompt string) (string, error) {
	fmt.Fprint(in.out, prompt)
	line, err := in.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
