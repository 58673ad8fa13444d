package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organo/internal/backend"
	"organo/internal/devapi"
	"organo/internal/domain"
	"organo/internal/session"
	"organo/internal/store"
	"organo/internal/validate"
)

// ==== Helpers ====

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type memoryRecorder struct {
	mu      sync.Mutex
	records []domain.RequestRecord
}

func (m *memoryRecorder) RecordRequest(rec domain.RequestRecord) error {
	m.mu.Lock()
	m.records = append(m.records, rec)
	m.mu.Unlock()
	return nil
}

func (m *memoryRecorder) count(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.records {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (m *memoryRecorder) all() []domain.RequestRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RequestRecord(nil), m.records...)
}

type stack struct {
	api      *backend.Client
	raw      *backend.Client
	manager  *session.Manager
	clock    *clock
	recorder *memoryRecorder
	server   *devapi.Server
	url      string
}

func newStack(t *testing.T) *stack {
	t.Helper()
	clk := &clock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	srv := devapi.New(devapi.Config{SigningKey: []byte("k"), AccessTTL: time.Minute, Now: clk.Now})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	rec := &memoryRecorder{}
	recording := backend.NewRecordingTransport(http.DefaultTransport, rec, nil)
	v := validate.New("en")

	raw := backend.New(ts.URL, &http.Client{Transport: recording}, v)
	mgr := session.NewManager(store.NewSessionFileStore(t.TempDir(), ""), raw)
	api := backend.New(ts.URL, &http.Client{Transport: session.NewTransport(mgr, recording)}, v)

	return &stack{api: api, raw: raw, manager: mgr, clock: clk, recorder: rec, server: srv, url: ts.URL}
}

func (s *stack) login(t *testing.T, name string) domain.LoginResponse {
	t.Helper()
	res, err := s.api.Login(context.Background(), domain.Credentials{Username: domain.Username(name), Password: name})
	require.NoError(t, err)
	require.NoError(t, s.manager.Start(domain.Session{ServerURL: s.url, Tokens: res.TokenPair, User: res.User}))
	return res
}

// ==== Tests ====

func TestLoginAndMe(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	t.Run("should reject bad credentials with 401", func(t *testing.T) {
		_, err := s.api.Login(ctx, domain.Credentials{Username: "teacher", Password: "wrong"})
		require.Error(t, err)
		assert.True(t, backend.IsUnauthorized(err))

		var apiErr *backend.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.MethodPost, apiErr.Method)
		assert.Equal(t, "invalid username or password", apiErr.Message)
	})

	t.Run("should validate credentials before calling the backend", func(t *testing.T) {
		before := len(s.recorder.all())
		_, err := s.api.Login(ctx, domain.Credentials{Username: " ", Password: ""})

		var verr *validate.Error
		require.ErrorAs(t, err, &verr)
		_, ok := verr.Field("password")
		assert.True(t, ok)
		assert.Len(t, s.recorder.all(), before)
	})

	t.Run("should return the signed-in user", func(t *testing.T) {
		s.login(t, "student")
		me, err := s.api.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, me.Role)
	})
}

func TestTransparentRefresh(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	first := s.login(t, "teacher")

	s.clock.Advance(2 * time.Minute)

	subjects, err := s.api.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, subjects)

	assert.Equal(t, 1, s.recorder.count("/auth/refresh"))
	assert.NotEqual(t, first.AccessToken, s.manager.AccessToken())
	assert.NotEqual(t, first.RefreshToken, s.manager.Session().Tokens.RefreshToken, "rotated refresh token is kept")

	records := s.recorder.all()
	last := records[len(records)-1]
	assert.Equal(t, "/subjects", last.Path)
	assert.Equal(t, http.StatusOK, last.Status)
	assert.True(t, last.Replayed)
}

func TestConcurrentExpiryRefreshesOnce(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.login(t, "teacher")
	s.clock.Advance(2 * time.Minute)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.api.ListSubjects(ctx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, s.recorder.count("/auth/refresh"))
}

func TestRefreshFailureExpiresSession(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	res := s.login(t, "student")

	require.NoError(t, s.raw.Logout(ctx, res.RefreshToken))
	s.clock.Advance(2 * time.Minute)

	_, err := s.api.ListSubjects(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, session.ErrSessionExpired))
	assert.True(t, backend.IsUnauthorized(err))
	assert.False(t, backend.IsNetwork(err))
	assert.True(t, s.manager.Session().Empty())
}

func TestContentAndErrors(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.login(t, "teacher")

	subject, err := s.api.CreateSubject(ctx, domain.Subject{Name: "Organización"})
	require.NoError(t, err)
	require.NotEmpty(t, subject.ID)

	subject.Description = "Teoría de la organización"
	updated, err := s.api.UpdateSubject(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, subject.Description, updated.Description)

	topic, err := s.api.CreateTopic(ctx, domain.Topic{SubjectID: subject.ID, Title: "Estructura"})
	require.NoError(t, err)

	ep, err := s.api.CreateEpigraph(ctx, domain.Epigraph{TopicID: topic.ID, Name: "Tipos"})
	require.NoError(t, err)
	_, err = s.api.CreateConcept(ctx, domain.Concept{TopicID: topic.ID, EpigraphID: ep.ID, Term: "Matricial", Definition: "Doble línea de mando"})
	require.NoError(t, err)

	concepts, err := s.api.ListConcepts(ctx, topic.ID)
	require.NoError(t, err)
	require.Len(t, concepts, 1)

	q, err := s.api.CreateQuestion(ctx, domain.Question{TopicID: topic.ID, Statement: "¿Qué es?", Answers: []domain.Answer{{Text: "Esto", Correct: true}}})
	require.NoError(t, err)
	_, err = s.api.CreateAnswer(ctx, domain.Answer{QuestionID: q.ID, Text: "Aquello"})
	require.NoError(t, err)
	answers, err := s.api.ListAnswers(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 2)

	t.Run("should classify not found", func(t *testing.T) {
		_, err := s.api.GetSubject(ctx, "missing")
		assert.True(t, backend.IsNotFound(err))
		assert.False(t, backend.IsUnauthorized(err))
	})

	t.Run("should refuse updates without an id", func(t *testing.T) {
		_, err := s.api.UpdateTopic(ctx, domain.Topic{SubjectID: subject.ID, Title: "x"})
		assert.Error(t, err)
	})

	t.Run("should delete", func(t *testing.T) {
		require.NoError(t, s.api.DeleteTopic(ctx, topic.ID))
		topics, err := s.api.ListTopics(ctx, subject.ID)
		require.NoError(t, err)
		assert.Empty(t, topics)
	})
}

func TestStudentIsForbiddenFromTeacherEndpoints(t *testing.T) {
	s := newStack(t)
	s.login(t, "student")

	_, err := s.api.CreateSubject(context.Background(), domain.Subject{Name: "Historia"})
	assert.True(t, backend.IsForbidden(err))
	_, err = s.api.ListBackups(context.Background())
	assert.True(t, backend.IsForbidden(err))
}

func TestExamAndAdmin(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.login(t, "teacher")

	subject, err := s.api.CreateSubject(ctx, domain.Subject{Name: "Organización"})
	require.NoError(t, err)
	topic, err := s.api.CreateTopic(ctx, domain.Topic{SubjectID: subject.ID, Title: "Estructura"})
	require.NoError(t, err)
	q, err := s.api.CreateQuestion(ctx, domain.Question{TopicID: topic.ID, Statement: "¿Qué es?", Answers: []domain.Answer{
		{Text: "Bien", Correct: true},
		{Text: "Mal"},
	}})
	require.NoError(t, err)

	_, err = s.api.GenerateExam(ctx, domain.ExamRequest{SubjectID: subject.ID})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr, "question_count and duration_minutes must be at least 1")

	exam, err := s.api.GenerateExam(ctx, domain.ExamRequest{SubjectID: subject.ID, QuestionCount: 1, DurationMinutes: 5})
	require.NoError(t, err)
	require.Len(t, exam.Questions, 1)

	result, err := s.api.SubmitExam(ctx, domain.ExamSubmission{ExamID: exam.ID, Answers: map[domain.ID]domain.ID{q.ID: q.Answers[0].ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Correct)

	stats, err := s.api.SubjectAnalytics(ctx, subject.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ExamsTaken)

	backup, err := s.api.CreateBackup(ctx, "antes")
	require.NoError(t, err)
	require.NoError(t, s.api.DeleteSubject(ctx, subject.ID))
	require.NoError(t, s.api.RestoreBackup(ctx, backup.ID))
	subjects, err := s.api.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 1)

	backups, err := s.api.ListBackups(ctx)
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	require.NoError(t, s.api.InviteUser(ctx, domain.Invitation{Email: "ana@example.com", Role: domain.RoleStudent}))
	assert.Len(t, s.server.Invitations(), 1)
	assert.Error(t, s.api.InviteUser(ctx, domain.Invitation{Email: "ana", Role: domain.RoleAdmin}))
}

func TestNetworkErrors(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := backend.New(url, nil, nil)
	_, err := c.ListSubjects(context.Background())

	require.Error(t, err)
	assert.True(t, backend.IsNetwork(err))
	assert.False(t, backend.IsNotFound(err))
}
