package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"organo/internal/domain"
)

func outlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <subject-id>",
		Short: "Print every topic of a subject with its concepts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outline, err := appCtx.Content.Outline(cmd.Context(), idArg(args, 0))
			if err != nil {
				return err
			}
			return render(cmd, outline, func(w io.Writer) {
				for _, t := range outline {
					fmt.Fprintf(w, "%d. %s\n", t.Topic.Order, t.Topic.Title)
					for _, k := range t.Concepts {
						row(w, "   "+k.Term, k.Definition)
					}
				}
			})
		},
	}
}

func examCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "exam", Short: "Generate and take exams"}

	var (
		req    domain.ExamRequest
		topics []string
		tick   time.Duration
	)
	request := func(args []string) domain.ExamRequest {
		r := req
		r.SubjectID = idArg(args, 0)
		r.TopicIDs = nil
		for _, t := range topics {
			r.TopicIDs = append(r.TopicIDs, domain.ID(t))
		}
		return r
	}
	requestFlags := func(c *cobra.Command) {
		c.Flags().IntVar(&req.QuestionCount, "questions", 10, "number of questions")
		c.Flags().IntVar(&req.DurationMinutes, "minutes", 20, "time allowed")
		c.Flags().StringSliceVar(&topics, "topic", nil, "restrict to these topic ids")
	}

	generate := &cobra.Command{
		Use:   "generate <subject-id>",
		Short: "Generate an exam and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exam, err := appCtx.Exams.Generate(cmd.Context(), request(args))
			if err != nil {
				return err
			}
			return render(cmd, exam, func(w io.Writer) {
				fmt.Fprintf(w, "Exam %s (%d minutes)\n", exam.ID, exam.DurationMinutes)
				for i, q := range exam.Questions {
					printQuestion(w, i, len(exam.Questions), q)
				}
			})
		},
	}
	requestFlags(generate)

	take := &cobra.Command{
		Use:   "take <subject-id>",
		Short: "Generate an exam and answer it against the clock",
		Long:  "Generate an exam and answer it question by question. Type the number of an answer, or leave the line blank to skip. The answers are submitted when time runs out.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exam, err := appCtx.Exams.Generate(cmd.Context(), request(args))
			if err != nil {
				return err
			}
			appCtx.Exams.TickInterval = tick

			w := out(cmd)
			fmt.Fprintf(w, "Exam %s: %d questions, %d minutes\n", exam.ID, len(exam.Questions), exam.DurationMinutes)
			lines := scanLines(cmd.InOrStdin())
			answer := func(ctx context.Context, q domain.Question, i int) (domain.ID, error) {
				printQuestion(w, i, len(exam.Questions), q)
				for {
					fmt.Fprint(w, "> ")
					var line string
					var ok bool
					select {
					case <-ctx.Done():
						return "", ctx.Err()
					case line, ok = <-lines:
					}
					if !ok {
						return "", nil
					}
					id, valid := pickAnswer(q, line)
					if valid {
						return id, nil
					}
					fmt.Fprintf(w, "choose 1-%d, or leave blank to skip\n", len(q.Answers))
				}
			}
			onTick := func(remaining time.Duration) {
				if remaining == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), "\ntime is up")
					return
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "\n[%s left]\n", remaining.Round(time.Second))
			}

			res, err := appCtx.Exams.Take(cmd.Context(), exam, answer, onTick)
			if err != nil {
				return err
			}
			return render(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Score: %.1f/10 (%d of %d correct)\n", res.Score, res.Correct, res.Total)
			})
		},
	}
	requestFlags(take)
	take.Flags().DurationVar(&tick, "tick", time.Minute, "how often to show the remaining time")

	cmd.AddCommand(generate, take)
	return cmd
}

func printQuestion(w io.Writer, i, total int, q domain.Question) {
	fmt.Fprintf(w, "\n%d/%d  %s\n", i+1, total, q.Statement)
	for j, a := range q.Answers {
		fmt.Fprintf(w, "  %d) %s\n", j+1, a.Text)
	}
}

// pickAnswer maps a typed line to an answer id. A blank line skips the
// question.
func pickAnswer(q domain.Question, line string) (domain.ID, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", true
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(q.Answers) {
		return "", false
	}
	return q.Answers[n-1].ID, true
}

// scanLines feeds the lines of r into a channel that is closed at EOF.
func scanLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return lines
}
