package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const (
	clearLine  = "\r\033[2K"
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// LiveStatus redraws a one-line "running" indicator with elapsed time
// until Stop is called.
type LiveStatus struct {
	out       io.Writer
	label     string
	frameRate int

	mu      sync.Mutex
	frame   int
	started time.Time
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewLiveStatus(out io.Writer, label string, frameRate int) *LiveStatus {
	if frameRate <= 0 {
		frameRate = 10
	}
	return &LiveStatus{out: out, label: label, frameRate: frameRate}
}

func (s *LiveStatus) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.started = time.Now()
	s.done = make(chan struct{})
	fmt.Fprint(s.out, hideCursor)

	s.wg.Add(1)
	go s.loop(s.done)
}

func (s *LiveStatus) loop(done <-chan struct{}) {
	defer s.wg.Done()
	t := time.NewTicker(time.Second / time.Duration(s.frameRate))
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			s.render()
		}
	}
}

func (s *LiveStatus) render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, s.line())
	s.frame++
}

func (s *LiveStatus) line() string {
	r := spinnerFrames[s.frame%len(spinnerFrames)]
	return fmt.Sprintf("%s  %c %s  %.1fs", clearLine, r, s.label, time.Since(s.started).Seconds())
}

// Stop ends the redraw loop and clears the line. It is safe to call more
// than once.
func (s *LiveStatus) Stop() {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()
	if done == nil {
		return
	}
	close(done)
	s.wg.Wait()
	fmt.Fprint(s.out, clearLine+showCursor)
}
