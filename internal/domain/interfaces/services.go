package interfaces

import (
	"context"
	"time"

	domaintypes "organo/internal/domain/types"
)

// AuthService signs the user in and out and reports the current session.
type AuthService interface {
	Login(ctx context.Context, creds domaintypes.Credentials) (domaintypes.User, error)
	Logout(ctx context.Context) error
	Whoami() (domaintypes.User, time.Time, error)
}

// ContentService is the content surface used by both student and teacher commands.
type ContentService interface {
	ContentClient
	Outline(ctx context.Context, subjectID domaintypes.ID) ([]domaintypes.TopicOutline, error)
}

// ExamService generates, runs and submits exams.
type ExamService interface {
	Generate(ctx context.Context, req domaintypes.ExamRequest) (domaintypes.Exam, error)
	Submit(ctx context.Context, sub domaintypes.ExamSubmission) (domaintypes.ExamResult, error)
}

// NavigationService turns transcripts into navigation.
type NavigationService interface {
	Handle(ctx context.Context, transcript string) (domaintypes.Command, bool)
	Current() domaintypes.Screen
}
