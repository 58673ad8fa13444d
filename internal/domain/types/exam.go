package types

import "time"

// ExamRequest asks the backend to assemble an exam.
type ExamRequest struct {
	SubjectID       ID   `json:"subject_id" validate:"required"`
	TopicIDs        []ID `json:"topic_ids,omitempty"`
	QuestionCount   int  `json:"question_count" validate:"min=1,max=200"`
	DurationMinutes int  `json:"duration_minutes" validate:"min=1,max=600"`
}

// Exam is a generated exam. Answers never carry the Correct flag here.
type Exam struct {
	ID              ID         `json:"id"`
	SubjectID       ID         `json:"subject_id"`
	Questions       []Question `json:"questions"`
	DurationMinutes int        `json:"duration_minutes"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Duration returns the time allowed to complete the exam.
func (e Exam) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// ExamSubmission maps question IDs to the chosen answer IDs.
type ExamSubmission struct {
	ExamID   ID        `json:"exam_id" validate:"required"`
	Answers  map[ID]ID `json:"answers"`
	TimedOut bool      `json:"timed_out,omitempty"`
}

// ExamResult is the backend's grading of a submission.
type ExamResult struct {
	ExamID  ID      `json:"exam_id"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Score   float64 `json:"score"`
}
