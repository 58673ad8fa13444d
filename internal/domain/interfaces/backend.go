package interfaces

import (
	"context"

	domaintypes "organo/internal/domain/types"
)

// AuthClient covers the session endpoints of the backend.
type AuthClient interface {
	Login(ctx context.Context, creds domaintypes.Credentials) (domaintypes.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (domaintypes.TokenPair, error)
	Me(ctx context.Context) (domaintypes.User, error)
}

// ContentClient covers the subject → topic → epigraph/concept hierarchy.
type ContentClient interface {
	ListSubjects(ctx context.Context) ([]domaintypes.Subject, error)
	GetSubject(ctx context.Context, id domaintypes.ID) (domaintypes.Subject, error)
	CreateSubject(ctx context.Context, s domaintypes.Subject) (domaintypes.Subject, error)
	UpdateSubject(ctx context.Context, s domaintypes.Subject) (domaintypes.Subject, error)
	DeleteSubject(ctx context.Context, id domaintypes.ID) error

	ListGroups(ctx context.Context, subjectID domaintypes.ID) ([]domaintypes.Group, error)
	CreateGroup(ctx context.Context, g domaintypes.Group) (domaintypes.Group, error)
	DeleteGroup(ctx context.Context, id domaintypes.ID) error

	ListTopics(ctx context.Context, subjectID domaintypes.ID) ([]domaintypes.Topic, error)
	GetTopic(ctx context.Context, id domaintypes.ID) (domaintypes.Topic, error)
	CreateTopic(ctx context.Context, t domaintypes.Topic) (domaintypes.Topic, error)
	UpdateTopic(ctx context.Context, t domaintypes.Topic) (domaintypes.Topic, error)
	DeleteTopic(ctx context.Context, id domaintypes.ID) error

	ListEpigraphs(ctx context.Context, topicID domaintypes.ID) ([]domaintypes.Epigraph, error)
	CreateEpigraph(ctx context.Context, e domaintypes.Epigraph) (domaintypes.Epigraph, error)
	DeleteEpigraph(ctx context.Context, id domaintypes.ID) error

	ListConcepts(ctx context.Context, topicID domaintypes.ID) ([]domaintypes.Concept, error)
	CreateConcept(ctx context.Context, c domaintypes.Concept) (domaintypes.Concept, error)
	UpdateConcept(ctx context.Context, c domaintypes.Concept) (domaintypes.Concept, error)
	DeleteConcept(ctx context.Context, id domaintypes.ID) error

	ListQuestions(ctx context.Context, topicID domaintypes.ID) ([]domaintypes.Question, error)
	CreateQuestion(ctx context.Context, q domaintypes.Question) (domaintypes.Question, error)
	DeleteQuestion(ctx context.Context, id domaintypes.ID) error
	ListAnswers(ctx context.Context, questionID domaintypes.ID) ([]domaintypes.Answer, error)
	CreateAnswer(ctx context.Context, a domaintypes.Answer) (domaintypes.Answer, error)
}

// ExamClient covers exam generation and grading.
type ExamClient interface {
	GenerateExam(ctx context.Context, req domaintypes.ExamRequest) (domaintypes.Exam, error)
	SubmitExam(ctx context.Context, sub domaintypes.ExamSubmission) (domaintypes.ExamResult, error)
}

// AdminClient covers the teacher-only endpoints.
type AdminClient interface {
	SubjectAnalytics(ctx context.Context, subjectID domaintypes.ID) (domaintypes.SubjectAnalytics, error)
	ListBackups(ctx context.Context) ([]domaintypes.Backup, error)
	CreateBackup(ctx context.Context, label string) (domaintypes.Backup, error)
	RestoreBackup(ctx context.Context, id domaintypes.ID) error
	InviteUser(ctx context.Context, inv domaintypes.Invitation) error
}

// BackendClient is the whole REST surface the client consumes.
type BackendClient interface {
	AuthClient
	ContentClient
	ExamClient
	AdminClient
}
