package backend

import (
	"context"

	"organo/internal/domain"
)

// GenerateExam asks the backend to assemble an exam.
func (c *Client) GenerateExam(ctx context.Context, req domain.ExamRequest) (domain.Exam, error) {
	if err := c.check(req); err != nil {
		return domain.Exam{}, err
	}
	var out domain.Exam
	if err := c.post(ctx, "/exams", req, &out); err != nil {
		return domain.Exam{}, err
	}
	return out, nil
}

// SubmitExam sends the chosen answers for grading.
func (c *Client) SubmitExam(ctx context.Context, sub domain.ExamSubmission) (domain.ExamResult, error) {
	if err := c.check(sub); err != nil {
		return domain.ExamResult{}, err
	}
	var out domain.ExamResult
	if err := c.post(ctx, idPath("/exams", sub.ExamID, "submit"), sub, &out); err != nil {
		return domain.ExamResult{}, err
	}
	return out, nil
}
