package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"organo/internal/app"
)

var (
	home      string
	serverURL string
	logLevel  string
	asJSON    bool
	appCtx    *app.Wire
)

// Execute runs the CLI with the process arguments.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", userMessage(err))
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "organo",
		Short:         "Study client for subjects, topics, concepts and exams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			cfg, err := app.LoadConfig(home)
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			cfg.LogOutput = cmd.ErrOrStderr()

			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			err := appCtx.Close()
			appCtx = nil
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.organo, or $"+app.EnvHome+")")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL (overrides server_url)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		loginCmd(), logoutCmd(), whoamiCmd(),
		subjectsCmd(), groupsCmd(), topicsCmd(), epigraphsCmd(), conceptsCmd(), questionsCmd(),
		outlineCmd(), examCmd(), analyticsCmd(), backupsCmd(), inviteCmd(),
		voiceCmd(), historyCmd(),
	)
	return root
}

// out returns where command results are printed.
func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
