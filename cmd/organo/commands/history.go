package commands

import (
	"io"
	"time"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded voice commands and backend calls",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if appCtx.History == nil {
				return errNoHistory
			}
			return nil
		},
	}
	cmd.PersistentFlags().IntVarP(&limit, "limit", "n", 20, "entries to show, 0 for all")

	commands := &cobra.Command{
		Use:   "commands",
		Short: "Voice commands, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := appCtx.History.ListCommands(limit)
			if err != nil {
				return err
			}
			return render(cmd, cmds, func(w io.Writer) {
				row(w, "AT", "SCREEN", "INTENT", "TRANSCRIPT")
				for _, c := range cmds {
					intent := c.Intent.String()
					if !c.Matched() {
						intent = "-"
					}
					row(w, c.At.Local().Format(time.DateTime), c.Screen, intent, c.Transcript)
				}
			})
		},
	}

	requests := &cobra.Command{
		Use:   "requests",
		Short: "Backend calls, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := appCtx.History.ListRequests(limit)
			if err != nil {
				return err
			}
			return render(cmd, reqs, func(w io.Writer) {
				row(w, "AT", "METHOD", "PATH", "STATUS", "TOOK", "NOTE")
				for _, r := range reqs {
					note := r.Err
					if r.Replayed {
						note = "replayed " + note
					}
					row(w, r.At.Local().Format(time.DateTime), r.Method, r.Path, r.Status, r.Duration.Round(time.Millisecond), note)
				}
			})
		},
	}

	cmd.AddCommand(commands, requests)
	return cmd
}
