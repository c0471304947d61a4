package prompt

import (
	"bufio"
	"context"
	"io"
	"strings"
)

type line struct {
	text string
	err  error
}

// lineReader reads answers one line at a time. A read blocks until a line
// arrives, the input ends, or ctx is done.
type lineReader struct {
	lines chan line
	done  chan struct{}
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan line, 1), done: make(chan struct{})}
	go lr.run(r)
	return lr
}

func (lr *lineReader) run(r io.Reader) {
	defer close(lr.lines)
	br := bufio.NewReader(r)
	for {
		text, err := br.ReadString('\n')
		if text != "" && !lr.send(line{text: strings.TrimRight(text, "\r\n")}) {
			return
		}
		if err != nil {
			if err != io.EOF {
				lr.send(line{err: err})
			}
			return
		}
	}
}

// send hands l to next. It reports false once the reader is stopped.
func (lr *lineReader) send(l line) bool {
	select {
	case lr.lines <- l:
		return true
	case <-lr.done:
		return false
	}
}

// stop releases the goroutine. A Read already blocked on the input cannot be
// interrupted; the goroutine exits when that Read returns.
func (lr *lineReader) stop() {
	close(lr.done)
}

func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-lr.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}
