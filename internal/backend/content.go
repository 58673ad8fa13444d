package backend

import (
	"context"
	"net/url"

	"organo/internal/domain"
)

func idPath(prefix string, id domain.ID, suffix ...string) string {
	p := prefix + "/" + url.PathEscape(id.String())
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// ==== Subjects ====

func (c *Client) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	var out []domain.Subject
	err := c.get(ctx, "/subjects", &out)
	return out, err
}

func (c *Client) GetSubject(ctx context.Context, id domain.ID) (domain.Subject, error) {
	var out domain.Subject
	err := c.get(ctx, idPath("/subjects", id), &out)
	return out, err
}

func (c *Client) CreateSubject(ctx context.Context, s domain.Subject) (domain.Subject, error) {
	if err := c.check(s); err != nil {
		return domain.Subject{}, err
	}
	var out domain.Subject
	err := c.post(ctx, "/subjects", s, &out)
	return out, err
}

func (c *Client) UpdateSubject(ctx context.Context, s domain.Subject) (domain.Subject, error) {
	if err := c.check(s); err != nil {
		return domain.Subject{}, err
	}
	if s.ID == "" {
		return domain.Subject{}, errMissingID
	}
	var out domain.Subject
	err := c.put(ctx, idPath("/subjects", s.ID), s, &out)
	return out, err
}

func (c *Client) DeleteSubject(ctx context.Context, id domain.ID) error {
	return c.delete(ctx, idPath("/subjects", id))
}

// ==== Groups ====

func (c *Client) ListGroups(ctx context.Context, subjectID domain.ID) ([]domain.Group, error) {
	var out []domain.Group
	err := c.get(ctx, idPath("/subjects", subjectID, "groups"), &out)
	return out, err
}

func (c *Client) CreateGroup(ctx context.Context, g domain.Group) (domain.Group, error) {
	if err := c.check(g); err != nil {
		return domain.Group{}, err
	}
	var out domain.Group
	err := c.post(ctx, "/groups", g, &out)
	return out, err
}

func (c *Client) DeleteGroup(ctx context.Context, id domain.ID) error {
	return c.delete(ctx, idPath("/groups", id))
}

// ==== Topics ====

func (c *Client) ListTopics(ctx context.Context, subjectID domain.ID) ([]domain.Topic, error) {
	var out []domain.Topic
	err := c.get(ctx, idPath("/subjects", subjectID, "topics"), &out)
	return out, err
}

func (c *Client) GetTopic(ctx context.Context, id domain.ID) (domain.Topic, error) {
	var out domain.Topic
	err := c.get(ctx, idPath("/topics", id), &out)
	return out, err
}

func (c *Client) CreateTopic(ctx context.Context, t domain.Topic) (domain.Topic, error) {
	if err := c.check(t); err != nil {
		return domain.Topic{}, err
	}
	var out domain.Topic
	err := c.post(ctx, "/topics", t, &out)
	return out, err
}

func (c *Client) UpdateTopic(ctx context.Context, t domain.Topic) (domain.Topic, error) {
	if err := c.check(t); err != nil {
		return domain.Topic{}, err
	}
	if t.ID == "" {
		return domain.Topic{}, errMissingID
	}
	var out domain.Topic
	err := c.put(ctx, idPath("/topics", t.ID), t, &out)
	return out, err
}

func (c *Client) DeleteTopic(ctx context.Context, id domain.ID) error {
	return c.delete(ctx, idPath("/topics", id))
}

// ==== Epigraphs ====

func (c *Client) ListEpigraphs(ctx context.Context, topicID domain.ID) ([]domain.Epigraph, error) {
	var out []domain.Epigraph
	err := c.get(ctx, idPath("/topics", topicID, "epigraphs"), &out)
	return out, err
}

func (c *Client) CreateEpigraph(ctx context.Context, e domain.Epigraph) (domain.Epigraph, error) {
	if err := c.check(e); err != nil {
		return domain.Epigraph{}, err
	}
	var out domain.Epigraph
	err := c.post(ctx, "/epigraphs", e, &out)
	return out, err
}

func (c *Client) DeleteEpigraph(ctx context.Context, id domain.ID) error {
	return c.delete(ctx, idPath("/epigraphs", id))
}

// ==== Concepts ====

func (c *Client) ListConcepts(ctx context.Context, topicID domain.ID) ([]domain.Concept, error) {
	var out []domain.Concept
	err := c.get(ctx, idPath("/topics", topicID, "concepts"), &out)
	return out, err
}

func (c *Client) CreateConcept(ctx context.Context, k domain.Concept) (domain.Concept, error) {
	if err := c.check(k); err != nil {
		return domain.Concept{}, err
	}
	var out domain.Concept
	err := c.post(ctx, "/concepts", k, &out)
	return out, err
}

func (c *Client) UpdateConcept(ctx context.Context, k domain.Concept) (domain.Concept, error) {
	if err := c.check(k); err != nil {
		return domain.Concept{}, err
	}
	if k.ID == "" {
		return domain.Concept{}, errMissingID
	}
	var out domain.Concept
	err := c.put(ctx, idPath("/concepts", k.ID), k, &out)
	return out, err
}

func (c *Client) DeleteConcept(ctx context.Context, id domain.ID) error {
	return c.delete(ctx, idPath("/concepts", id))
}

// ==== Questions and answers ====

func (c *Client) ListQuestions(ctx context.Context, topicID domain.ID) ([]domain.Question, error) {
	var out []domain.Question
	err := c.get(ctx, idPath("/topics", topicID, "questions"), &out)
	return out, err
}

func (c *Client) CreateQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	if err := c.check(q); err != nil {
		return domain.Question{}, err
	}
	var out domain.Question
	err := c.post(ctx, "/questions", q, &out)
	return out, err
}

func (c *Client) DeleteQuestion(ctx context.Context, id domain.ID) error {
	return c.delete(ctx, idPath("/questions", id))
}

func (c *Client) ListAnswers(ctx context.Context, questionID domain.ID) ([]domain.Answer, error) {
	var out []domain.Answer
	err := c.get(ctx, idPath("/questions", questionID, "answers"), &out)
	return out, err
}

func (c *Client) CreateAnswer(ctx context.Context, a domain.Answer) (domain.Answer, error) {
	if err := c.check(a); err != nil {
		return domain.Answer{}, err
	}
	if a.QuestionID == "" {
		return domain.Answer{}, errMissingID
	}
	var out domain.Answer
	err := c.post(ctx, idPath("/questions", a.QuestionID, "answers"), a, &out)
	return out, err
}
