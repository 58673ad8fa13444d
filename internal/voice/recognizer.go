package voice

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

var (
	// ErrUnsupported is returned when no speech engine is available.
	ErrUnsupported = errors.New("speech recognition is not supported on this device")
	// ErrSourceClosed is returned by Start once a recognizer has no more input.
	ErrSourceClosed = errors.New("speech source closed")
	// ErrBusy is returned by Start while a session is already running.
	ErrBusy = errors.New("recognizer session already running")
)

// Event is one notification from a recognition session. A session ends when
// its channel is closed.
type Event struct {
	Transcript string
	Final      bool
	Err        error
}

// Recognizer is a speech engine that produces transcripts in sessions.
type Recognizer interface {
	Start(ctx context.Context) (<-chan Event, error)
	Stop() error
}

// Unsupported is the Recognizer used when the platform has no speech engine.
type Unsupported struct{}

func (Unsupported) Start(context.Context) (<-chan Event, error) { return nil, ErrUnsupported }
func (Unsupported) Stop() error                                 { return nil }

// LineRecognizer reads one final transcript per line, for example from
// stdin or from a file written by an external speech-to-text engine.
type LineRecognizer struct {
	// SessionLimit ends a session after that many lines; 0 means unlimited.
	SessionLimit int

	src  io.Reader
	once sync.Once

	lines chan string
	err   error

	mu     sync.Mutex
	closed bool
	active bool
	cancel context.CancelFunc
}

// NewLineRecognizer returns a recognizer reading lines from r.
func NewLineRecognizer(r io.Reader) *LineRecognizer {
	return &LineRecognizer{src: r, lines: make(chan string)}
}

// pump is the only reader of src; sessions come and go around it.
func (l *LineRecognizer) pump() {
	go func() {
		sc := bufio.NewScanner(l.src)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				l.lines <- line
			}
		}
		l.mu.Lock()
		l.err = sc.Err()
		l.closed = true
		l.mu.Unlock()
		close(l.lines)
	}()
}

// Start begins a session.
func (l *LineRecognizer) Start(ctx context.Context) (<-chan Event, error) {
	l.once.Do(l.pump)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrSourceClosed
	}
	if l.active {
		l.mu.Unlock()
		return nil, ErrBusy
	}
	sctx, cancel := context.WithCancel(ctx)
	l.active = true
	l.cancel = cancel
	l.mu.Unlock()

	out := make(chan Event)
	go func() {
		defer close(out)
		defer l.end(cancel)

		send := func(ev Event) bool {
			select {
			case out <- ev:
				return true
			case <-sctx.Done():
				return false
			}
		}
		for n := 0; l.SessionLimit == 0 || n < l.SessionLimit; n++ {
			select {
			case <-sctx.Done():
				return
			case line, ok := <-l.lines:
				if !ok {
					l.mu.Lock()
					err := l.err
					l.mu.Unlock()
					if err != nil {
						send(Event{Err: err})
					}
					return
				}
				if !send(Event{Transcript: line, Final: true}) {
					return
				}
			}
		}
	}()
	return out, nil
}

// Stop ends the running session, if any.
func (l *LineRecognizer) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	return nil
}

func (l *LineRecognizer) end(cancel context.CancelFunc) {
	cancel()
	l.mu.Lock()
	l.active = false
	l.cancel = nil
	l.mu.Unlock()
}

var (
	_ Recognizer = (*LineRecognizer)(nil)
	_ Recognizer = Unsupported{}
)
