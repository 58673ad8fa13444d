package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"organo/internal/domain"
)

func analyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics <subject-id>",
		Short: "Show exam results for a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appCtx.Backend.SubjectAnalytics(cmd.Context(), idArg(args, 0))
			if err != nil {
				return err
			}
			return render(cmd, a, func(w io.Writer) {
				fmt.Fprintf(w, "Exams taken: %d\nAverage score: %.1f/10\n\n", a.ExamsTaken, a.AverageScore)
				row(w, "TOPIC", "ANSWERED", "CORRECT")
				for _, t := range a.PerTopic {
					row(w, t.Title, t.Answered, fmt.Sprintf("%.0f%%", t.CorrectRatio*100))
				}
			})
		},
	}
}

func backupsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "backups", Short: "List, create and restore content backups"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := appCtx.Backend.ListBackups(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, backups, func(w io.Writer) {
				row(w, "ID", "CREATED", "SIZE", "LABEL")
				for _, b := range backups {
					row(w, b.ID, b.CreatedAt.Local().Format(time.DateTime), b.SizeBytes, b.Label)
				}
			})
		},
	}

	var label string
	create := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the content database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := appCtx.Backend.CreateBackup(cmd.Context(), label)
			if err != nil {
				return err
			}
			return printCreated(cmd, "backup", b.ID, b)
		},
	}
	create.Flags().StringVar(&label, "label", "", "free-form label")

	restore := &cobra.Command{
		Use:   "restore <backup-id>",
		Short: "Replace the content database with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Backend.RestoreBackup(cmd.Context(), idArg(args, 0)); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Restored backup %s\n", idArg(args, 0))
			return nil
		},
	}

	cmd.AddCommand(list, create, restore)
	return cmd
}

func inviteCmd() *cobra.Command {
	var (
		role    string
		subject string
	)
	cmd := &cobra.Command{
		Use:   "invite <email>",
		Short: "Send a sign-up invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv := domain.Invitation{Email: args[0], Role: domain.Role(role), SubjectID: domain.ID(subject)}
			if err := appCtx.Backend.InviteUser(cmd.Context(), inv); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Invitation sent to %s\n", inv.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(domain.RoleStudent), "student or teacher")
	cmd.Flags().StringVar(&subject, "subject", "", "enrol the new user in this subject")
	return cmd
}
