package devapi

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"organo/internal/domain"
)

func pathID(r *http.Request) domain.ID { return domain.ID(mux.Vars(r)["id"]) }

func find[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}

// filter always returns a non-nil slice so empty lists encode as [].
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, out any) bool {
	if !decode(w, r, out) {
		return false
	}
	if err := s.validator.Struct(out); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// ==== Subjects ====

func (s *Server) listSubjects(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, append([]domain.Subject{}, s.content.Subjects...))
}

func (s *Server) getSubject(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := find(s.content.Subjects, func(x domain.Subject) bool { return x.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, "subject not found")
		return
	}
	writeJSON(w, http.StatusOK, s.content.Subjects[i])
}

func (s *Server) createSubject(w http.ResponseWriter, r *http.Request) {
	var in domain.Subject
	if !s.decodeValid(w, r, &in) {
		return
	}
	in.ID = newID()
	s.mu.Lock()
	s.content.Subjects = append(s.content.Subjects, in)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) updateSubject(w http.ResponseWriter, r *http.Request) {
	var in domain.Subject
	if !s.decodeValid(w, r, &in) {
		return
	}
	in.ID = pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := find(s.content.Subjects, func(x domain.Subject) bool { return x.ID == in.ID })
	if i < 0 {
		writeError(w, http.StatusNotFound, "subject not found")
		return
	}
	s.content.Subjects[i] = in
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) deleteSubject(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if find(s.content.Subjects, func(x domain.Subject) bool { return x.ID == id }) < 0 {
		writeError(w, http.StatusNotFound, "subject not found")
		return
	}
	s.content.Subjects = filter(s.content.Subjects, func(x domain.Subject) bool { return x.ID != id })
	s.content.Groups = filter(s.content.Groups, func(x domain.Group) bool { return x.SubjectID != id })
	for _, t := range s.content.Topics {
		if t.SubjectID == id {
			s.removeTopicLocked(t.ID)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) subjectExistsLocked(id domain.ID) bool {
	return find(s.content.Subjects, func(x domain.Subject) bool { return x.ID == id }) >= 0
}

// ==== Groups ====

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, filter(s.content.Groups, func(x domain.Group) bool { return x.SubjectID == id }))
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var in domain.Group
	if !s.decodeValid(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.subjectExistsLocked(in.SubjectID) {
		writeError(w, http.StatusUnprocessableEntity, "unknown subject_id")
		return
	}
	in.ID = newID()
	s.content.Groups = append(s.content.Groups, in)
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if find(s.content.Groups, func(x domain.Group) bool { return x.ID == id }) < 0 {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}
	s.content.Groups = filter(s.content.Groups, func(x domain.Group) bool { return x.ID != id })
	w.WriteHeader(http.StatusNoContent)
}

// ==== Topics ====

func (s *Server) listTopics(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.RLock()
	topics := filter(s.content.Topics, func(x domain.Topic) bool { return x.SubjectID == id })
	s.mu.RUnlock()
	sort.SliceStable(topics, func(i, j int) bool { return topics[i].Order < topics[j].Order })
	writeJSON(w, http.StatusOK, topics)
}

func (s *Server) getTopic(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := find(s.content.Topics, func(x domain.Topic) bool { return x.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}
	writeJSON(w, http.StatusOK, s.content.Topics[i])
}

func (s *Server) createTopic(w http.ResponseWriter, r *http.Request) {
	var in domain.Topic
	if !s.decodeValid(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.subjectExistsLocked(in.SubjectID) {
		writeError(w, http.StatusUnprocessableEntity, "unknown subject_id")
		return
	}
	in.ID = newID()
	s.content.Topics = append(s.content.Topics, in)
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) updateTopic(w http.ResponseWriter, r *http.Request) {
	var in domain.Topic
	if !s.decodeValid(w, r, &in) {
		return
	}
	in.ID = pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := find(s.content.Topics, func(x domain.Topic) bool { return x.ID == in.ID })
	if i < 0 {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}
	s.content.Topics[i] = in
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) deleteTopic(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.topicExistsLocked(id) {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}
	s.removeTopicLocked(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) topicExistsLocked(id domain.ID) bool {
	return find(s.content.Topics, func(x domain.Topic) bool { return x.ID == id }) >= 0
}

func (s *Server) removeTopicLocked(id domain.ID) {
	s.content.Topics = filter(s.content.Topics, func(x domain.Topic) bool { return x.ID != id })
	s.content.Epigraphs = filter(s.content.Epigraphs, func(x domain.Epigraph) bool { return x.TopicID != id })
	s.content.Concepts = filter(s.content.Concepts, func(x domain.Concept) bool { return x.TopicID != id })
	for _, q := range s.content.Questions {
		if q.TopicID == id {
			s.removeQuestionLocked(q.ID)
		}
	}
}

// ==== Epigraphs ====

func (s *Server) listEpigraphs(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, filter(s.content.Epigraphs, func(x domain.Epigraph) bool { return x.TopicID == id }))
}

func (s *Server) createEpigraph(w http.ResponseWriter, r *http.Request) {
	var in domain.Epigraph
	if !s.decodeValid(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.topicExistsLocked(in.TopicID) {
		writeError(w, http.StatusUnprocessableEntity, "unknown topic_id")
		return
	}
	in.ID = newID()
	s.content.Epigraphs = append(s.content.Epigraphs, in)
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) deleteEpigraph(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if find(s.content.Epigraphs, func(x domain.Epigraph) bool { return x.ID == id }) < 0 {
		writeError(w, http.StatusNotFound, "epigraph not found")
		return
	}
	s.content.Epigraphs = filter(s.content.Epigraphs, func(x domain.Epigraph) bool { return x.ID != id })
	for i := range s.content.Concepts {
		if s.content.Concepts[i].EpigraphID == id {
			s.content.Concepts[i].EpigraphID = ""
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// ==== Concepts ====

func (s *Server) listConcepts(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, filter(s.content.Concepts, func(x domain.Concept) bool { return x.TopicID == id }))
}

// conceptRefsLocked checks that c points at an existing topic and, when set,
// at an epigraph of that topic.
func (s *Server) conceptRefsLocked(c domain.Concept) string {
	if !s.topicExistsLocked(c.TopicID) {
		return "unknown topic_id"
	}
	if c.EpigraphID == "" {
		return ""
	}
	i := find(s.content.Epigraphs, func(x domain.Epigraph) bool { return x.ID == c.EpigraphID })
	if i < 0 || s.content.Epigraphs[i].TopicID != c.TopicID {
		return "unknown epigraph_id"
	}
	return ""
}

func (s *Server) createConcept(w http.ResponseWriter, r *http.Request) {
	var in domain.Concept
	if !s.decodeValid(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg := s.conceptRefsLocked(in); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	in.ID = newID()
	s.content.Concepts = append(s.content.Concepts, in)
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) updateConcept(w http.ResponseWriter, r *http.Request) {
	var in domain.Concept
	if !s.decodeValid(w, r, &in) {
		return
	}
	in.ID = pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := find(s.content.Concepts, func(x domain.Concept) bool { return x.ID == in.ID })
	if i < 0 {
		writeError(w, http.StatusNotFound, "concept not found")
		return
	}
	if msg := s.conceptRefsLocked(in); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	s.content.Concepts[i] = in
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) deleteConcept(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if find(s.content.Concepts, func(x domain.Concept) bool { return x.ID == id }) < 0 {
		writeError(w, http.StatusNotFound, "concept not found")
		return
	}
	s.content.Concepts = filter(s.content.Concepts, func(x domain.Concept) bool { return x.ID != id })
	w.WriteHeader(http.StatusNoContent)
}

// ==== Questions and answers ====

func (s *Server) withAnswersLocked(q domain.Question) domain.Question {
	q.Answers = filter(s.content.Answers, func(a domain.Answer) bool { return a.QuestionID == q.ID })
	return q
}

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := filter(s.content.Questions, func(x domain.Question) bool { return x.TopicID == id })
	for i := range out {
		out[i] = s.withAnswersLocked(out[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request) {
	var in domain.Question
	if !s.decodeValid(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.topicExistsLocked(in.TopicID) {
		writeError(w, http.StatusUnprocessableEntity, "unknown topic_id")
		return
	}
	in.ID = newID()
	for _, a := range in.Answers {
		a.ID = newID()
		a.QuestionID = in.ID
		s.content.Answers = append(s.content.Answers, a)
	}
	in.Answers = nil
	s.content.Questions = append(s.content.Questions, in)
	writeJSON(w, http.StatusCreated, s.withAnswersLocked(in))
}

func (s *Server) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if find(s.content.Questions, func(x domain.Question) bool { return x.ID == id }) < 0 {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}
	s.removeQuestionLocked(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeQuestionLocked(id domain.ID) {
	s.content.Questions = filter(s.content.Questions, func(x domain.Question) bool { return x.ID != id })
	s.content.Answers = filter(s.content.Answers, func(x domain.Answer) bool { return x.QuestionID != id })
}

func (s *Server) listAnswers(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, filter(s.content.Answers, func(x domain.Answer) bool { return x.QuestionID == id }))
}

func (s *Server) createAnswer(w http.ResponseWriter, r *http.Request) {
	var in domain.Answer
	if !s.decodeValid(w, r, &in) {
		return
	}
	in.QuestionID = pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if find(s.content.Questions, func(x domain.Question) bool { return x.ID == in.QuestionID }) < 0 {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}
	in.ID = newID()
	s.content.Answers = append(s.content.Answers, in)
	writeJSON(w, http.StatusCreated, in)
}
