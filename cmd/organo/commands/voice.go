package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"organo/internal/domain"
	navsvc "organo/internal/services/navigation"
	"organo/internal/voice"
)

func voiceCmd() *cobra.Command {
	var (
		file         string
		subject      string
		engine       string
		sessionLines int
	)
	cmd := &cobra.Command{
		Use:   "voice",
		Short: "Navigate with spoken commands",
		Long:  "Listen for voice commands and navigate between screens. Transcripts are read one per line from --file or stdin, as produced by an external speech-to-text engine. Say \"dejar de escuchar\" or press Ctrl-C to stop.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var rec voice.Recognizer
			switch engine {
			case "lines":
				var src io.Reader = cmd.InOrStdin()
				if file != "" {
					f, err := os.Open(file)
					if err != nil {
						return err
					}
					defer f.Close()
					src = f
				}
				lr := voice.NewLineRecognizer(src)
				lr.SessionLimit = sessionLines
				rec = lr
			case "system":
				rec = voice.Unsupported{}
			default:
				return fmt.Errorf("unknown engine %q (lines or system)", engine)
			}

			w := out(cmd)
			nav := appCtx.Navigation(navsvc.NavigatorFunc(func(c domain.Command, screen domain.Screen) {
				switch c.Intent {
				case voice.IntentStop:
					fmt.Fprintln(w, "stopped listening")
				case voice.IntentOpenTopic:
					fmt.Fprintf(w, "-> %s: %s\n", screen, c.Topic)
				default:
					fmt.Fprintf(w, "-> %s\n", screen)
				}
			}))
			if subject != "" {
				titles, err := appCtx.Content.TopicTitles(ctx, domain.ID(subject))
				if err != nil {
					return fmt.Errorf("loading topics: %w", err)
				}
				nav.SetTopics(titles)
			}

			var listener *voice.Listener
			listener = voice.NewListener(rec, func(ctx context.Context, u voice.Utterance) bool {
				c, ok := nav.HandleUtterance(ctx, u)
				if ok && c.Intent == voice.IntentStop {
					_ = listener.Stop()
				}
				return ok
			}, appCtx.Config.Voice.RestartDelay, appCtx.Logger)

			go func() {
				select {
				case <-appCtx.SessionExpired:
					fmt.Fprintln(cmd.ErrOrStderr(), "your session has expired, please log in again")
					stop()
				case <-ctx.Done():
				}
			}()

			fmt.Fprintf(w, "listening on %s\n", nav.Current())
			if err := listener.Run(ctx); err != nil {
				return err
			}
			fmt.Fprintf(w, "screen: %s\n", nav.Current())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read transcripts from this file instead of stdin")
	cmd.Flags().StringVar(&subject, "subject", "", "subject whose topic titles can be opened by voice")
	cmd.Flags().StringVar(&engine, "engine", "lines", "lines (transcripts from a reader) or system (platform speech engine)")
	cmd.Flags().IntVar(&sessionLines, "session-lines", 0, "end a recognition session after this many lines, 0 for never")
	return cmd
}
