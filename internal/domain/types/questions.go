package types

// Question is a multiple-choice item attached to a topic.
type Question struct {
	ID        ID       `json:"id,omitempty"`
	TopicID   ID       `json:"topic_id" validate:"required"`
	Statement string   `json:"statement" validate:"required,notblank"`
	Answers   []Answer `json:"answers,omitempty" validate:"dive"`
}

// Answer is one option of a question.
type Answer struct {
	ID         ID     `json:"id,omitempty"`
	QuestionID ID     `json:"question_id,omitempty"`
	Text       string `json:"text" validate:"required,notblank"`
	Correct    bool   `json:"correct"`
}
