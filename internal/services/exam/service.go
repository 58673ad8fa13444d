package exam

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"organo/internal/domain"
	"organo/internal/logging"
)

// AnswerFunc asks for the answer to question number index (0-based) and
// returns the chosen answer ID, or "" to skip it. It must return promptly
// once ctx is done.
type AnswerFunc func(ctx context.Context, q domain.Question, index int) (domain.ID, error)

// Service implements domain.ExamService.
type Service struct {
	client   domain.ExamClient
	logger   logging.Logger
	duration func(domain.Exam) time.Duration

	// TickInterval is how often Take reports the remaining time.
	TickInterval time.Duration
}

var _ domain.ExamService = (*Service)(nil)

// New returns an exam service over client.
func New(client domain.ExamClient, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Service{
		client:       client,
		logger:       logger,
		duration:     domain.Exam.Duration,
		TickInterval: time.Second,
	}
}

// Generate asks the backend for a new exam.
func (s *Service) Generate(ctx context.Context, req domain.ExamRequest) (domain.Exam, error) {
	exam, err := s.client.GenerateExam(ctx, req)
	if err != nil {
		return domain.Exam{}, err
	}
	if len(exam.Questions) == 0 {
		return domain.Exam{}, errors.New("the backend returned an exam without questions")
	}
	return exam, nil
}

// Submit sends answers for grading.
func (s *Service) Submit(ctx context.Context, sub domain.ExamSubmission) (domain.ExamResult, error) {
	return s.client.SubmitExam(ctx, sub)
}

// Take runs exam: questions are answered through answer while a countdown of
// the exam's duration runs. The answers are submitted when every question
// has been seen or when time runs out, whichever comes first. onTick may be
// nil.
func (s *Service) Take(ctx context.Context, exam domain.Exam, answer AnswerFunc, onTick func(time.Duration)) (domain.ExamResult, error) {
	limit := s.duration(exam)
	if limit <= 0 {
		return domain.ExamResult{}, fmt.Errorf("exam %s has no duration", exam.ID)
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu      sync.Mutex
		answers = make(map[domain.ID]domain.ID, len(exam.Questions))
	)
	done := make(chan error, 1)
	go func() {
		for i, q := range exam.Questions {
			id, err := answer(runCtx, q, i)
			if err != nil {
				done <- err
				return
			}
			if id != "" {
				mu.Lock()
				answers[q.ID] = id
				mu.Unlock()
			}
		}
		done <- nil
	}()

	timeUp := make(chan struct{})
	go func() {
		cd := Countdown{Total: limit, Interval: s.TickInterval, OnTick: onTick}
		if cd.Run(runCtx) == nil {
			close(timeUp)
		}
	}()

	sub := domain.ExamSubmission{ExamID: exam.ID}
	select {
	case err := <-done:
		if err != nil {
			return domain.ExamResult{}, fmt.Errorf("answering: %w", err)
		}
	case <-timeUp:
		sub.TimedOut = true
		s.logger.Info("exam time is up, submitting", "exam", exam.ID.String())
	case <-ctx.Done():
		return domain.ExamResult{}, ctx.Err()
	}
	cancel()

	mu.Lock()
	sub.Answers = maps.Clone(answers)
	mu.Unlock()
	return s.client.SubmitExam(ctx, sub)
}
