package types

// TopicStats aggregates results for a single topic.
type TopicStats struct {
	TopicID      ID      `json:"topic_id"`
	Title        string  `json:"title"`
	Answered     int     `json:"answered"`
	CorrectRatio float64 `json:"correct_ratio"`
}

// SubjectAnalytics is the teacher dashboard for a subject.
type SubjectAnalytics struct {
	SubjectID    ID           `json:"subject_id"`
	ExamsTaken   int          `json:"exams_taken"`
	AverageScore float64      `json:"average_score"`
	PerTopic     []TopicStats `json:"per_topic"`
}
