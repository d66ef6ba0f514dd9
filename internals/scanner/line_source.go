package scanner

import (
	"bufio"
	"io"
	"strings"
	"sync/atomic"
	"time"
)

// LineSource adapts a line-oriented reader (stdin, a serial scanner, a test
// buffer) into a Source: every non-empty line is one observation. While
// paused, lines are read but dropped, mirroring a camera that keeps running
// with capture disabled.
type LineSource struct {
	frames chan Observation
	paused atomic.Bool
	err    error
	done   chan struct{}
}

func NewLineSource(r io.Reader) *LineSource {
	s := &LineSource{
		frames: make(chan Observation),
		done:   make(chan struct{}),
	}
	go s.read(r)
	return s
}

func (s *LineSource) read(r io.Reader) {
	defer close(s.frames)
	defer close(s.done)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || s.paused.Load() {
			continue
		}
		s.frames <- Observation{Payload: line, ObservedAt: time.Now()}
	}
	s.err = sc.Err()
}

func (s *LineSource) Frames() <-chan Observation { return s.frames }

func (s *LineSource) Pause() { s.paused.Store(true) }

func (s *LineSource) Resume() { s.paused.Store(false) }

// Err reports why the stream ended; nil means clean EOF.
func (s *LineSource) Err() error {
	<-s.done
	return s.err
}
