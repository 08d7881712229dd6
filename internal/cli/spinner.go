package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gduarte0/program2mass/pkg/optimize"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line while a long operation runs. Fed module
// candidates through Observe, it also shows the module being tried and
// how many of the tried modules fit every room.
type Spinner struct {
	label   string
	out     io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	started time.Time

	mu     sync.Mutex
	module int
	tried  int
	viable int
	width  int // widest line drawn, for clearing
}

func newSpinner(label string) *Spinner {
	return newSpinnerWithContext(context.Background(), label)
}

// newSpinnerWithContext returns a spinner on stderr that stops drawing
// once ctx is done.
func newSpinnerWithContext(ctx context.Context, label string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		label:   label,
		out:     os.Stderr,
		ctx:     sctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Observe records one evaluated module candidate.
func (s *Spinner) Observe(c optimize.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.module = c.Module
	s.tried++
	if c.Viable() {
		s.viable++
	}
}

// status renders the text after the frame.
func (s *Spinner) status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tried == 0 {
		return s.label
	}
	return fmt.Sprintf("%s %d cm · %d tried · %d viable · %s",
		s.label, s.module, s.tried, s.viable, time.Since(s.started).Round(100*time.Millisecond))
}

// Start draws a frame every 80ms until Stop or cancellation.
func (s *Spinner) Start() {
	s.started = time.Now()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				line := s.status()
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(line))
				s.mu.Lock()
				s.width = max(s.width, len(line))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width+2))
	}
}

func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.done:
		return false
	default:
	}
	return s.ctx.Err() != nil
}
