package backend

import (
	"context"

	"organo/internal/domain"
)

// SubjectAnalytics returns exam statistics for a subject.
func (c *Client) SubjectAnalytics(ctx context.Context, subjectID domain.ID) (domain.SubjectAnalytics, error) {
	var out domain.SubjectAnalytics
	if err := c.get(ctx, idPath("/subjects", subjectID, "analytics"), &out); err != nil {
		return domain.SubjectAnalytics{}, err
	}
	return out, nil
}

// ListBackups lists the server-side snapshots, newest first.
func (c *Client) ListBackups(ctx context.Context) ([]domain.Backup, error) {
	var out []domain.Backup
	if err := c.get(ctx, "/backups", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBackup takes a snapshot of the content database.
func (c *Client) CreateBackup(ctx context.Context, label string) (domain.Backup, error) {
	in := struct {
		Label string `json:"label,omitempty"`
	}{Label: label}
	var out domain.Backup
	if err := c.post(ctx, "/backups", in, &out); err != nil {
		return domain.Backup{}, err
	}
	return out, nil
}

// RestoreBackup replaces the content database with snapshot id.
func (c *Client) RestoreBackup(ctx context.Context, id domain.ID) error {
	return c.post(ctx, idPath("/backups", id, "restore"), struct{}{}, nil)
}

// InviteUser asks the backend to send a sign-up invitation.
func (c *Client) InviteUser(ctx context.Context, inv domain.Invitation) error {
	if err := c.check(inv); err != nil {
		return err
	}
	return c.post(ctx, "/invitations", inv, nil)
}
