package devapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"organo/internal/domain"
	"organo/internal/logging"
	"organo/internal/validate"
)

// Config tunes a Server. Zero values pick development defaults.
type Config struct {
	SigningKey []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Logger     logging.Logger
	Now        func() time.Time
}

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Server is the in-memory backend. It implements http.Handler.
type Server struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     logging.Logger
	now        func() time.Time
	router     *mux.Router
	validator  *validate.Validator

	mu          sync.RWMutex
	users       []account
	refresh     map[string]refreshGrant
	content     content
	exams       map[domain.ID]examRecord
	results     []examOutcome
	backups     []backupSnapshot
	invitations []domain.Invitation
}

// content is everything a backup snapshots.
type content struct {
	Subjects  []domain.Subject  `json:"subjects"`
	Groups    []domain.Group    `json:"groups"`
	Topics    []domain.Topic    `json:"topics"`
	Epigraphs []domain.Epigraph `json:"epigraphs"`
	Concepts  []domain.Concept  `json:"concepts"`
	Questions []domain.Question `json:"questions"`
	Answers   []domain.Answer   `json:"answers"`
}

func (c content) clone() content {
	return content{
		Subjects:  append([]domain.Subject(nil), c.Subjects...),
		Groups:    append([]domain.Group(nil), c.Groups...),
		Topics:    append([]domain.Topic(nil), c.Topics...),
		Epigraphs: append([]domain.Epigraph(nil), c.Epigraphs...),
		Concepts:  append([]domain.Concept(nil), c.Concepts...),
		Questions: append([]domain.Question(nil), c.Questions...),
		Answers:   append([]domain.Answer(nil), c.Answers...),
	}
}

// New returns a Server with the seed accounts in place.
func New(cfg Config) *Server {
	s := &Server{
		key:        cfg.SigningKey,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		logger:     cfg.Logger,
		now:        cfg.Now,
		refresh:    make(map[string]refreshGrant),
		exams:      make(map[domain.ID]examRecord),
		validator:  validate.New("en"),
	}
	if len(s.key) == 0 {
		s.key = []byte(uuid.NewString())
	}
	if s.accessTTL <= 0 {
		s.accessTTL = defaultAccessTTL
	}
	if s.refreshTTL <= 0 {
		s.refreshTTL = defaultRefreshTTL
	}
	if s.logger == nil {
		s.logger = logging.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.seedAccounts()
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.accessLog)

	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(s.authenticate)
	api.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	api.HandleFunc("/subjects", s.listSubjects).Methods(http.MethodGet)
	api.HandleFunc("/subjects/{id}", s.getSubject).Methods(http.MethodGet)
	api.HandleFunc("/subjects/{id}/groups", s.listGroups).Methods(http.MethodGet)
	api.HandleFunc("/subjects/{id}/topics", s.listTopics).Methods(http.MethodGet)
	api.HandleFunc("/topics/{id}", s.getTopic).Methods(http.MethodGet)
	api.HandleFunc("/topics/{id}/epigraphs", s.listEpigraphs).Methods(http.MethodGet)
	api.HandleFunc("/topics/{id}/concepts", s.listConcepts).Methods(http.MethodGet)
	api.HandleFunc("/exams", s.generateExam).Methods(http.MethodPost)
	api.HandleFunc("/exams/{id}/submit", s.submitExam).Methods(http.MethodPost)

	teacher := api.NewRoute().Subrouter()
	teacher.Use(s.requireTeacher)
	teacher.HandleFunc("/subjects", s.createSubject).Methods(http.MethodPost)
	teacher.HandleFunc("/subjects/{id}", s.updateSubject).Methods(http.MethodPut)
	teacher.HandleFunc("/subjects/{id}", s.deleteSubject).Methods(http.MethodDelete)
	teacher.HandleFunc("/subjects/{id}/analytics", s.subjectAnalytics).Methods(http.MethodGet)
	teacher.HandleFunc("/groups", s.createGroup).Methods(http.MethodPost)
	teacher.HandleFunc("/groups/{id}", s.deleteGroup).Methods(http.MethodDelete)
	teacher.HandleFunc("/topics", s.createTopic).Methods(http.MethodPost)
	teacher.HandleFunc("/topics/{id}", s.updateTopic).Methods(http.MethodPut)
	teacher.HandleFunc("/topics/{id}", s.deleteTopic).Methods(http.MethodDelete)
	teacher.HandleFunc("/topics/{id}/questions", s.listQuestions).Methods(http.MethodGet)
	teacher.HandleFunc("/epigraphs", s.createEpigraph).Methods(http.MethodPost)
	teacher.HandleFunc("/epigraphs/{id}", s.deleteEpigraph).Methods(http.MethodDelete)
	teacher.HandleFunc("/concepts", s.createConcept).Methods(http.MethodPost)
	teacher.HandleFunc("/concepts/{id}", s.updateConcept).Methods(http.MethodPut)
	teacher.HandleFunc("/concepts/{id}", s.deleteConcept).Methods(http.MethodDelete)
	teacher.HandleFunc("/questions", s.createQuestion).Methods(http.MethodPost)
	teacher.HandleFunc("/questions/{id}", s.deleteQuestion).Methods(http.MethodDelete)
	teacher.HandleFunc("/questions/{id}/answers", s.listAnswers).Methods(http.MethodGet)
	teacher.HandleFunc("/questions/{id}/answers", s.createAnswer).Methods(http.MethodPost)
	teacher.HandleFunc("/backups", s.listBackups).Methods(http.MethodGet)
	teacher.HandleFunc("/backups", s.createBackup).Methods(http.MethodPost)
	teacher.HandleFunc("/backups/{id}/restore", s.restoreBackup).Methods(http.MethodPost)
	teacher.HandleFunc("/invitations", s.invite).Methods(http.MethodPost)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr,
			"status", rec.status, "bytes", rec.bytes, "duration", s.now().Sub(start).String())
	})
}

func newID() domain.ID { return domain.ID(uuid.NewString()) }
