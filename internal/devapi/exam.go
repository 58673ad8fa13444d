package devapi

import (
	"math/rand"
	"net/http"
	"slices"

	"organo/internal/domain"
)

type examRecord struct {
	exam      domain.Exam
	userID    domain.ID
	key       map[domain.ID]domain.ID // question -> correct answer
	submitted bool
}

type examOutcome struct {
	subjectID domain.ID
	score     float64
	perTopic  map[domain.ID][2]int // answered, correct
}

func (s *Server) generateExam(w http.ResponseWriter, r *http.Request) {
	var req domain.ExamRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	claims := claimsFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.subjectExistsLocked(req.SubjectID) {
		writeError(w, http.StatusNotFound, "subject not found")
		return
	}
	inScope := func(t domain.Topic) bool {
		return t.SubjectID == req.SubjectID && (len(req.TopicIDs) == 0 || slices.Contains(req.TopicIDs, t.ID))
	}
	topics := make(map[domain.ID]bool)
	for _, t := range filter(s.content.Topics, inScope) {
		topics[t.ID] = true
	}

	pool := filter(s.content.Questions, func(q domain.Question) bool { return topics[q.TopicID] })
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > req.QuestionCount {
		pool = pool[:req.QuestionCount]
	}
	if len(pool) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no questions available for this selection")
		return
	}

	rec := examRecord{
		userID: domain.ID(claims.Subject),
		key:    make(map[domain.ID]domain.ID),
	}
	questions := make([]domain.Question, 0, len(pool))
	for _, q := range pool {
		q = s.withAnswersLocked(q)
		for i, a := range q.Answers {
			if a.Correct {
				rec.key[q.ID] = a.ID
			}
			q.Answers[i].Correct = false
		}
		questions = append(questions, q)
	}
	rec.exam = domain.Exam{
		ID:              newID(),
		SubjectID:       req.SubjectID,
		Questions:       questions,
		DurationMinutes: req.DurationMinutes,
		CreatedAt:       s.now().UTC(),
	}
	s.exams[rec.exam.ID] = rec
	writeJSON(w, http.StatusCreated, rec.exam)
}

func (s *Server) submitExam(w http.ResponseWriter, r *http.Request) {
	var sub domain.ExamSubmission
	if !decode(w, r, &sub) {
		return
	}
	sub.ExamID = pathID(r)
	claims := claimsFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.exams[sub.ExamID]
	if !ok || rec.userID != domain.ID(claims.Subject) {
		writeError(w, http.StatusNotFound, "exam not found")
		return
	}
	if rec.submitted {
		writeError(w, http.StatusConflict, "exam already submitted")
		return
	}

	outcome := examOutcome{subjectID: rec.exam.SubjectID, perTopic: make(map[domain.ID][2]int)}
	result := domain.ExamResult{ExamID: sub.ExamID, Total: len(rec.exam.Questions)}
	for _, q := range rec.exam.Questions {
		stats := outcome.perTopic[q.TopicID]
		if chosen, answered := sub.Answers[q.ID]; answered {
			stats[0]++
			if chosen == rec.key[q.ID] {
				stats[1]++
				result.Correct++
			}
		}
		outcome.perTopic[q.TopicID] = stats
	}
	if result.Total > 0 {
		result.Score = float64(result.Correct) / float64(result.Total) * 10
	}
	outcome.score = result.Score

	rec.submitted = true
	s.exams[sub.ExamID] = rec
	s.results = append(s.results, outcome)
	writeJSON(w, http.StatusOK, result)
}
