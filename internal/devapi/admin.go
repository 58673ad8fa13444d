package devapi

import (
	"encoding/json"
	"net/http"

	"organo/internal/domain"
)

type backupSnapshot struct {
	meta domain.Backup
	data content
}

func (s *Server) subjectAnalytics(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.subjectExistsLocked(id) {
		writeError(w, http.StatusNotFound, "subject not found")
		return
	}

	out := domain.SubjectAnalytics{SubjectID: id, PerTopic: []domain.TopicStats{}}
	totals := make(map[domain.ID][2]int)
	var scoreSum float64
	for _, res := range s.results {
		if res.subjectID != id {
			continue
		}
		out.ExamsTaken++
		scoreSum += res.score
		for topic, st := range res.perTopic {
			t := totals[topic]
			t[0] += st[0]
			t[1] += st[1]
			totals[topic] = t
		}
	}
	if out.ExamsTaken > 0 {
		out.AverageScore = scoreSum / float64(out.ExamsTaken)
	}
	for _, t := range s.content.Topics {
		if t.SubjectID != id {
			continue
		}
		st := domain.TopicStats{TopicID: t.ID, Title: t.Title, Answered: totals[t.ID][0]}
		if st.Answered > 0 {
			st.CorrectRatio = float64(totals[t.ID][1]) / float64(st.Answered)
		}
		out.PerTopic = append(out.PerTopic, st)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listBackups(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Backup, 0, len(s.backups))
	for i := len(s.backups) - 1; i >= 0; i-- {
		out = append(out, s.backups[i].meta)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createBackup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Label string `json:"label"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := backupSnapshot{data: s.content.clone()}
	raw, err := json.Marshal(snap.data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	snap.meta = domain.Backup{
		ID:        newID(),
		Label:     in.Label,
		CreatedAt: s.now().UTC(),
		SizeBytes: int64(len(raw)),
	}
	s.backups = append(s.backups, snap)
	writeJSON(w, http.StatusCreated, snap.meta)
}

func (s *Server) restoreBackup(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := find(s.backups, func(b backupSnapshot) bool { return b.meta.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, "backup not found")
		return
	}
	s.content = s.backups[i].data.clone()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) invite(w http.ResponseWriter, r *http.Request) {
	var in domain.Invitation
	if !s.decodeValid(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.SubjectID != "" && !s.subjectExistsLocked(in.SubjectID) {
		writeError(w, http.StatusUnprocessableEntity, "unknown subject_id")
		return
	}
	s.invitations = append(s.invitations, in)
	s.logger.Info("invitation queued", "email", in.Email, "role", in.Role.String())
	w.WriteHeader(http.StatusAccepted)
}

// Invitations returns the invitations received so far.
func (s *Server) Invitations() []domain.Invitation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Invitation(nil), s.invitations...)
}
