package navigation

import (
	"context"
	"sync"
	"time"

	"organo/internal/domain"
	"organo/internal/logging"
	"organo/internal/voice"
)

// Navigator is told about every matched command and the screen it led to.
type Navigator interface {
	Navigate(cmd domain.Command, screen domain.Screen)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(cmd domain.Command, screen domain.Screen)

func (f NavigatorFunc) Navigate(cmd domain.Command, screen domain.Screen) { f(cmd, screen) }

// Service implements domain.NavigationService.
type Service struct {
	sets      map[domain.Screen][]domain.KeywordSet
	history   domain.CommandRepository
	navigator Navigator
	logger    logging.Logger
	now       func() time.Time

	mu     sync.Mutex
	stack  []domain.Screen
	titles []string
	topic  string
}

var _ domain.NavigationService = (*Service)(nil)

// New returns a service starting at the home screen. sets falls back to
// voice.DefaultKeywordSets for screens it does not mention. history,
// navigator and logger may be nil.
func New(sets map[domain.Screen][]domain.KeywordSet, history domain.CommandRepository, navigator Navigator, logger logging.Logger) *Service {
	merged := voice.DefaultKeywordSets()
	for screen, s := range sets {
		if len(s) > 0 {
			merged[screen] = s
		}
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Service{
		sets:      merged,
		history:   history,
		navigator: navigator,
		logger:    logger,
		now:       time.Now,
		stack:     []domain.Screen{voice.ScreenHome},
	}
}

// SetTopics replaces the topic titles open_topic looks up.
func (s *Service) SetTopics(titles []string) {
	s.mu.Lock()
	s.titles = append([]string(nil), titles...)
	s.mu.Unlock()
}

// Current returns the screen on top of the stack.
func (s *Service) Current() domain.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack[len(s.stack)-1]
}

// Stack returns the screens from home to the current one.
func (s *Service) Stack() []domain.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Screen(nil), s.stack...)
}

// Topic returns the title of the last opened topic.
func (s *Service) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

// Handle evaluates one complete utterance and records it. It reports
// whether it resolved to an intent.
func (s *Service) Handle(ctx context.Context, transcript string) (domain.Command, bool) {
	return s.handle(ctx, transcript, transcript, true)
}

// HandleUtterance evaluates the listener's buffered text. Only the latest
// part is kept as the transcript, and interim results are recorded only when
// they match, so history has one row per utterance.
func (s *Service) HandleUtterance(ctx context.Context, u voice.Utterance) (domain.Command, bool) {
	return s.handle(ctx, u.Text, u.Latest, u.Final)
}

func (s *Service) handle(ctx context.Context, text, latest string, final bool) (domain.Command, bool) {
	normalized := voice.Normalize(text)

	s.mu.Lock()
	current := s.stack[len(s.stack)-1]
	cmd := domain.Command{
		Transcript: latest,
		Normalized: normalized,
		Screen:     current,
		At:         s.now().UTC(),
	}
	matched := false
	if intent, ok := voice.MatchIntent(normalized, s.sets[current]); ok {
		matched = s.applyLocked(&cmd, intent)
	}
	screen := s.stack[len(s.stack)-1]
	s.mu.Unlock()

	if final || matched {
		s.record(cmd)
	}
	if !matched {
		return cmd, false
	}
	s.logger.Debug("voice command", "intent", cmd.Intent.String(), "from", current.String(), "to", screen.String())
	if s.navigator != nil {
		s.navigator.Navigate(cmd, screen)
	}
	return cmd, true
}

// applyLocked performs intent and fills cmd. It returns false when the
// intent cannot be acted on yet, such as open_topic without a known title.
func (s *Service) applyLocked(cmd *domain.Command, intent domain.Intent) bool {
	switch intent {
	case voice.IntentBack:
		if len(s.stack) > 1 {
			s.stack = s.stack[:len(s.stack)-1]
		}
	case voice.IntentOpenTopic:
		title, ok := voice.LookupTopic(cmd.Normalized, s.titles)
		if !ok {
			return false
		}
		cmd.Topic = title
		s.topic = title
		s.pushLocked(voice.ScreenTopic)
	case voice.IntentStop:
	default:
		target, ok := voice.Target(intent)
		if !ok {
			return false
		}
		s.pushLocked(target)
	}
	cmd.Intent = intent
	return true
}

func (s *Service) pushLocked(screen domain.Screen) {
	if screen == voice.ScreenHome {
		s.stack = s.stack[:1]
		return
	}
	if s.stack[len(s.stack)-1] == screen {
		return
	}
	s.stack = append(s.stack, screen)
}

func (s *Service) record(cmd domain.Command) {
	if s.history == nil || cmd.Normalized == "" {
		return
	}
	if err := s.history.InsertCommand(cmd); err != nil {
		s.logger.Warn("recording voice command", "err", err)
	}
}
