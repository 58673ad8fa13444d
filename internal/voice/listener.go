package voice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"organo/internal/logging"
)

// maxBufferRunes caps the unmatched transcript kept between events.
const maxBufferRunes = 256

// Utterance is what the listener hands to its Handler for each event.
type Utterance struct {
	// Text is the unmatched transcript buffered so far joined with Latest.
	Text string
	// Latest is the transcript of the event being handled.
	Latest string
	// Final is false for interim results, which are not buffered.
	Final bool
}

// Handler evaluates an utterance and reports whether it was consumed. A
// consumed transcript is cleared from the buffer.
type Handler func(ctx context.Context, u Utterance) bool

// Listener keeps a recognizer running while listening is on.
type Listener struct {
	rec          Recognizer
	handle       Handler
	logger       logging.Logger
	restartDelay time.Duration

	mu        sync.Mutex
	listening bool
	buffer    string
	restarts  int
}

// NewListener returns a Listener feeding rec's transcripts to handle.
func NewListener(rec Recognizer, handle Handler, restartDelay time.Duration, logger logging.Logger) *Listener {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Listener{rec: rec, handle: handle, restartDelay: restartDelay, logger: logger}
}

// Run listens until Stop is called, ctx is done, or the recognizer runs out
// of input. Sessions that end or fail are restarted after the restart delay.
// ErrUnsupported is returned as is so the caller can tell the user.
func (l *Listener) Run(ctx context.Context) error {
	l.mu.Lock()
	l.listening = true
	l.mu.Unlock()
	defer l.setListening(false)

	for l.Listening() {
		events, err := l.rec.Start(ctx)
		switch {
		case errors.Is(err, ErrUnsupported):
			return err
		case errors.Is(err, ErrSourceClosed):
			return nil
		case err != nil:
			l.logger.Warn("starting recognizer", "err", err)
		default:
			l.consume(ctx, events)
		}

		if ctx.Err() != nil || !l.Listening() {
			return nil
		}
		l.mu.Lock()
		l.restarts++
		l.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.restartDelay):
		}
	}
	return nil
}

func (l *Listener) consume(ctx context.Context, events <-chan Event) {
	for ev := range events {
		// Events still in flight after Stop are drained unhandled.
		if !l.Listening() {
			continue
		}
		if ev.Err != nil {
			l.logger.Warn("recognizer error", "err", ev.Err)
			continue
		}
		if ev.Transcript == "" {
			continue
		}

		l.mu.Lock()
		candidate := joinTranscript(l.buffer, ev.Transcript)
		if ev.Final {
			l.buffer = candidate
		}
		l.mu.Unlock()

		if l.handle(ctx, Utterance{Text: candidate, Latest: ev.Transcript, Final: ev.Final}) {
			l.Clear()
		}
	}
}

// Stop turns listening off and ends the running session.
func (l *Listener) Stop() error {
	l.setListening(false)
	return l.rec.Stop()
}

// Listening reports whether the listening flag is set.
func (l *Listener) Listening() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listening
}

// Buffer returns the transcript accumulated since the last match.
func (l *Listener) Buffer() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buffer
}

// Clear drops the accumulated transcript.
func (l *Listener) Clear() {
	l.mu.Lock()
	l.buffer = ""
	l.mu.Unlock()
}

// Restarts reports how many times a session was restarted.
func (l *Listener) Restarts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.restarts
}

func (l *Listener) setListening(v bool) {
	l.mu.Lock()
	l.listening = v
	l.mu.Unlock()
}

func joinTranscript(buffer, next string) string {
	joined := strings.TrimSpace(buffer + " " + next)
	if r := []rune(joined); len(r) > maxBufferRunes {
		joined = strings.TrimSpace(string(r[len(r)-maxBufferRunes:]))
	}
	return joined
}
