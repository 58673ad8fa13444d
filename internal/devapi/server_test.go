package devapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organo/internal/domain"
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

func newTestServer(t *testing.T) (*Server, *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	return New(Config{SigningKey: []byte("test-key"), AccessTTL: time.Minute, Now: clk.Now}), clk
}

func call(t *testing.T, s *Server, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if out != nil && rec.Code/100 == 2 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func login(t *testing.T, s *Server, name string) domain.LoginResponse {
	t.Helper()
	var out domain.LoginResponse
	code := call(t, s, http.MethodPost, "/auth/login", "", domain.Credentials{Username: domain.Username(name), Password: name}, &out)
	require.Equal(t, http.StatusOK, code)
	return out
}

// ==== Auth ====

func TestLogin(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("should issue tokens for valid credentials", func(t *testing.T) {
		res := login(t, s, "teacher")
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
		assert.Equal(t, domain.RoleTeacher, res.User.Role)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		code := call(t, s, http.MethodPost, "/auth/login", "", domain.Credentials{Username: "teacher", Password: "nope"}, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("should require a token on protected routes", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call(t, s, http.MethodGet, "/auth/me", "", nil, nil))
		assert.Equal(t, http.StatusUnauthorized, call(t, s, http.MethodGet, "/auth/me", "garbage", nil, nil))
	})
}

func TestAccessTokenExpiryAndRefresh(t *testing.T) {
	s, clk := newTestServer(t)
	res := login(t, s, "student")

	var me domain.User
	require.Equal(t, http.StatusOK, call(t, s, http.MethodGet, "/auth/me", res.AccessToken, nil, &me))
	assert.Equal(t, domain.Username("student"), me.Username)

	clk.Advance(2 * time.Minute)
	assert.Equal(t, http.StatusUnauthorized, call(t, s, http.MethodGet, "/auth/me", res.AccessToken, nil, nil))

	var pair domain.TokenPair
	require.Equal(t, http.StatusOK, call(t, s, http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": res.RefreshToken}, &pair))
	assert.NotEqual(t, res.RefreshToken, pair.RefreshToken, "refresh tokens rotate")
	assert.Equal(t, http.StatusOK, call(t, s, http.MethodGet, "/auth/me", pair.AccessToken, nil, nil))

	code := call(t, s, http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": res.RefreshToken}, nil)
	assert.Equal(t, http.StatusUnauthorized, code, "a rotated refresh token is single use")
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	s, _ := newTestServer(t)
	res := login(t, s, "student")

	require.Equal(t, http.StatusNoContent, call(t, s, http.MethodPost, "/auth/logout", "", map[string]string{"refresh_token": res.RefreshToken}, nil))

	code := call(t, s, http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": res.RefreshToken}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

// ==== Content ====

func TestContentLifecycle(t *testing.T) {
	s, _ := newTestServer(t)
	teacher := login(t, s, "teacher").AccessToken
	student := login(t, s, "student").AccessToken

	t.Run("should forbid students from writing content", func(t *testing.T) {
		code := call(t, s, http.MethodPost, "/subjects", student, domain.Subject{Name: "Historia"}, nil)
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("should reject blank names", func(t *testing.T) {
		code := call(t, s, http.MethodPost, "/subjects", teacher, domain.Subject{Name: "  "}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, code)
	})

	var subject domain.Subject
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/subjects", teacher, domain.Subject{Name: "Organización"}, &subject))

	var second, first domain.Topic
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/topics", teacher, domain.Topic{SubjectID: subject.ID, Title: "Burocracia", Order: 2}, &second))
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/topics", teacher, domain.Topic{SubjectID: subject.ID, Title: "Estructura", Order: 1}, &first))

	t.Run("should list topics by order for students", func(t *testing.T) {
		var topics []domain.Topic
		require.Equal(t, http.StatusOK, call(t, s, http.MethodGet, "/subjects/"+subject.ID.String()+"/topics", student, nil, &topics))
		require.Len(t, topics, 2)
		assert.Equal(t, "Estructura", topics[0].Title)
	})

	var ep domain.Epigraph
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/epigraphs", teacher, domain.Epigraph{TopicID: first.ID, Name: "Tipos"}, &ep))

	t.Run("should reject a concept pointing at another topic's epigraph", func(t *testing.T) {
		code := call(t, s, http.MethodPost, "/concepts", teacher, domain.Concept{TopicID: second.ID, EpigraphID: ep.ID, Term: "x", Definition: "y"}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, code)
	})

	var concept domain.Concept
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/concepts", teacher, domain.Concept{TopicID: first.ID, EpigraphID: ep.ID, Term: "Matricial", Definition: "Doble dependencia"}, &concept))

	t.Run("should cascade subject deletion", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, call(t, s, http.MethodDelete, "/subjects/"+subject.ID.String(), teacher, nil, nil))

		assert.Equal(t, http.StatusNotFound, call(t, s, http.MethodGet, "/topics/"+first.ID.String(), teacher, nil, nil))
		var concepts []domain.Concept
		require.Equal(t, http.StatusOK, call(t, s, http.MethodGet, "/topics/"+first.ID.String()+"/concepts", teacher, nil, &concepts))
		assert.Empty(t, concepts)
	})
}

// ==== Exams, analytics, backups ====

func seedExamContent(t *testing.T, s *Server, token string) (domain.Subject, []domain.Question) {
	t.Helper()
	var subject domain.Subject
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/subjects", token, domain.Subject{Name: "Organización"}, &subject))
	var topic domain.Topic
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/topics", token, domain.Topic{SubjectID: subject.ID, Title: "Estructura"}, &topic))

	var questions []domain.Question
	for _, stmt := range []string{"¿Qué es una matriz?", "¿Qué es la burocracia?"} {
		var q domain.Question
		require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/questions", token, domain.Question{
			TopicID:   topic.ID,
			Statement: stmt,
			Answers: []domain.Answer{
				{Text: "correcta", Correct: true},
				{Text: "incorrecta"},
			},
		}, &q))
		questions = append(questions, q)
	}
	return subject, questions
}

func TestExamFlow(t *testing.T) {
	s, _ := newTestServer(t)
	teacher := login(t, s, "teacher").AccessToken
	student := login(t, s, "student").AccessToken
	subject, questions := seedExamContent(t, s, teacher)

	correct := make(map[domain.ID]domain.ID)
	for _, q := range questions {
		require.Len(t, q.Answers, 2)
		correct[q.ID] = q.Answers[0].ID
	}

	var exam domain.Exam
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/exams", student, domain.ExamRequest{SubjectID: subject.ID, QuestionCount: 5, DurationMinutes: 10}, &exam))
	require.Len(t, exam.Questions, 2)
	for _, q := range exam.Questions {
		for _, a := range q.Answers {
			assert.False(t, a.Correct, "exams never reveal the key")
		}
	}

	first := exam.Questions[0].ID
	var result domain.ExamResult
	require.Equal(t, http.StatusOK, call(t, s, http.MethodPost, "/exams/"+exam.ID.String()+"/submit", student,
		domain.ExamSubmission{Answers: map[domain.ID]domain.ID{first: correct[first]}}, &result))
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 2, result.Total)
	assert.InDelta(t, 5.0, result.Score, 0.001)

	code := call(t, s, http.MethodPost, "/exams/"+exam.ID.String()+"/submit", student, domain.ExamSubmission{}, nil)
	assert.Equal(t, http.StatusConflict, code)

	var stats domain.SubjectAnalytics
	require.Equal(t, http.StatusOK, call(t, s, http.MethodGet, "/subjects/"+subject.ID.String()+"/analytics", teacher, nil, &stats))
	assert.Equal(t, 1, stats.ExamsTaken)
	require.Len(t, stats.PerTopic, 1)
	assert.Equal(t, 1, stats.PerTopic[0].Answered)
	assert.InDelta(t, 1.0, stats.PerTopic[0].CorrectRatio, 0.001)
}

func TestBackupRestore(t *testing.T) {
	s, _ := newTestServer(t)
	teacher := login(t, s, "teacher").AccessToken

	var kept domain.Subject
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/subjects", teacher, domain.Subject{Name: "Antes"}, &kept))

	var backup domain.Backup
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/backups", teacher, map[string]string{"label": "nightly"}, &backup))
	assert.Positive(t, backup.SizeBytes)

	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/subjects", teacher, domain.Subject{Name: "Después"}, nil))
	require.Equal(t, http.StatusNoContent, call(t, s, http.MethodPost, "/backups/"+backup.ID.String()+"/restore", teacher, nil, nil))

	var subjects []domain.Subject
	require.Equal(t, http.StatusOK, call(t, s, http.MethodGet, "/subjects", teacher, nil, &subjects))
	require.Len(t, subjects, 1)
	assert.Equal(t, kept.ID, subjects[0].ID)
}

func TestInvitations(t *testing.T) {
	s, _ := newTestServer(t)
	teacher := login(t, s, "teacher").AccessToken

	code := call(t, s, http.MethodPost, "/invitations", teacher, domain.Invitation{Email: "not-an-email", Role: domain.RoleStudent}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code = call(t, s, http.MethodPost, "/invitations", teacher, domain.Invitation{Email: "ana@example.com", Role: domain.RoleStudent}, nil)
	assert.Equal(t, http.StatusAccepted, code)
	assert.Len(t, s.Invitations(), 1)
}
