package types

// Subject is the top of the content hierarchy.
type Subject struct {
	ID          ID     `json:"id,omitempty"`
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description,omitempty"`
}

// Group is a class of students enrolled in a subject.
type Group struct {
	ID        ID     `json:"id,omitempty"`
	SubjectID ID     `json:"subject_id" validate:"required"`
	Name      string `json:"name" validate:"required,notblank"`
}

// Topic belongs to a subject.
type Topic struct {
	ID        ID     `json:"id,omitempty"`
	SubjectID ID     `json:"subject_id" validate:"required"`
	Title     string `json:"title" validate:"required,notblank"`
	Order     int    `json:"order"`
}

// Epigraph is a named subsection of a topic.
type Epigraph struct {
	ID      ID     `json:"id,omitempty"`
	TopicID ID     `json:"topic_id" validate:"required"`
	Name    string `json:"name" validate:"required,notblank"`
	Body    string `json:"body,omitempty"`
}

// Concept is a term with its definition, optionally filed under an epigraph.
type Concept struct {
	ID         ID     `json:"id,omitempty"`
	TopicID    ID     `json:"topic_id" validate:"required"`
	EpigraphID ID     `json:"epigraph_id,omitempty"`
	Term       string `json:"term" validate:"required,notblank"`
	Definition string `json:"definition" validate:"required,notblank"`
}

// TopicOutline is a topic together with its concepts.
type TopicOutline struct {
	Topic    Topic     `json:"topic"`
	Concepts []Concept `json:"concepts"`
}
