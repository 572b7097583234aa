package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// terminalSpeech speaks by printing and listens by reading lines. A line not
// typed before the timeout counts as silence.
type terminalSpeech struct {
	out io.Writer

	once  sync.Once
	in    io.Reader
	lines chan string
	eof   chan struct{}
}

func newTerminalSpeech(in io.Reader, out io.Writer) *terminalSpeech {
	return &terminalSpeech{in: in, out: out, lines: make(chan string), eof: make(chan struct{})}
}

func (t *terminalSpeech) Supported() bool { return t.in != nil }

func (t *terminalSpeech) Speak(_ context.Context, text, _ string) error {
	_, err := fmt.Fprintf(t.out, "agent> %s\n", text)
	return err
}

func (t *terminalSpeech) Listen(ctx context.Context, _ string, timeout time.Duration) (string, error) {
	t.once.Do(t.startReader)
	fmt.Fprint(t.out, "you> ")

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case line := <-t.lines:
		return line, nil
	case <-t.eof:
		return "", io.EOF
	case <-timer.C:
		fmt.Fprintln(t.out)
		return "", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// startReader pumps stdin in the background; a pending read cannot be
// abandoned, so lines typed late are delivered to the next Listen.
func (t *terminalSpeech) startReader() {
	go func() {
		sc := bufio.NewScanner(t.in)
		for sc.Scan() {
			t.lines <- sc.Text()
		}
		close(t.eof)
	}()
}
