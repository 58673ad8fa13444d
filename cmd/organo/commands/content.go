package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"organo/internal/domain"
)

func idArg(args []string, i int) domain.ID { return domain.ID(args[i]) }

func deleted(cmd *cobra.Command, kind string, id domain.ID) {
	fmt.Fprintf(out(cmd), "Deleted %s %s\n", kind, id)
}

func subjectsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "subjects", Short: "List and manage subjects"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := appCtx.Content.ListSubjects(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, subjects, func(w io.Writer) {
				row(w, "ID", "NAME", "DESCRIPTION")
				for _, s := range subjects {
					row(w, s.ID, s.Name, s.Description)
				}
			})
		},
	}

	var s domain.Subject
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := appCtx.Content.CreateSubject(cmd.Context(), s)
			if err != nil {
				return err
			}
			return printCreated(cmd, "subject", created.ID, created)
		},
	}
	create.Flags().StringVar(&s.Name, "name", "", "subject name")
	create.Flags().StringVar(&s.Description, "description", "", "short description")

	var upd domain.Subject
	update := &cobra.Command{
		Use:   "update <subject-id>",
		Short: "Rename or describe a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := appCtx.Content.GetSubject(cmd.Context(), idArg(args, 0))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				cur.Name = upd.Name
			}
			if cmd.Flags().Changed("description") {
				cur.Description = upd.Description
			}
			saved, err := appCtx.Content.UpdateSubject(cmd.Context(), cur)
			if err != nil {
				return err
			}
			return printCreated(cmd, "subject", saved.ID, saved)
		},
	}
	update.Flags().StringVar(&upd.Name, "name", "", "new name")
	update.Flags().StringVar(&upd.Description, "description", "", "new description")

	del := &cobra.Command{
		Use:   "delete <subject-id>",
		Short: "Delete a subject with its groups and topics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Content.DeleteSubject(cmd.Context(), idArg(args, 0)); err != nil {
				return err
			}
			deleted(cmd, "subject", idArg(args, 0))
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func groupsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "groups", Short: "List and manage the groups of a subject"}

	list := &cobra.Command{
		Use:   "list <subject-id>",
		Short: "List the groups of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := appCtx.Content.ListGroups(cmd.Context(), idArg(args, 0))
			if err != nil {
				return err
			}
			return render(cmd, groups, func(w io.Writer) {
				row(w, "ID", "NAME")
				for _, g := range groups {
					row(w, g.ID, g.Name)
				}
			})
		},
	}

	var name string
	create := &cobra.Command{
		Use:   "create <subject-id>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := appCtx.Content.CreateGroup(cmd.Context(), domain.Group{SubjectID: idArg(args, 0), Name: name})
			if err != nil {
				return err
			}
			return printCreated(cmd, "group", g.ID, g)
		},
	}
	create.Flags().StringVar(&name, "name", "", "group name")

	del := &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Content.DeleteGroup(cmd.Context(), idArg(args, 0)); err != nil {
				return err
			}
			deleted(cmd, "group", idArg(args, 0))
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func topicsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "topics", Short: "List and manage the topics of a subject"}

	list := &cobra.Command{
		Use:   "list <subject-id>",
		Short: "List the topics of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, err := appCtx.Content.ListTopics(cmd.Context(), idArg(args, 0))
			if err != nil {
				return err
			}
			return render(cmd, topics, func(w io.Writer) {
				row(w, "ID", "ORDER", "TITLE")
				for _, t := range topics {
					row(w, t.ID, t.Order, t.Title)
				}
			})
		},
	}

	var t domain.Topic
	create := &cobra.Command{
		Use:   "create <subject-id>",
		Short: "Create a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t.SubjectID = idArg(args, 0)
			created, err := appCtx.Content.CreateTopic(cmd.Context(), t)
			if err != nil {
				return err
			}
			return printCreated(cmd, "topic", created.ID, created)
		},
	}
	create.Flags().StringVar(&t.Title, "title", "", "topic title")
	create.Flags().IntVar(&t.Order, "order", 0, "position within the subject")

	var upd domain.Topic
	update := &cobra.Command{
		Use:   "update <topic-id>",
		Short: "Retitle or reorder a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := appCtx.Content.GetTopic(cmd.Context(), idArg(args, 0))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				cur.Title = upd.Title
			}
			if cmd.Flags().Changed("order") {
				cur.Order = upd.Order
			}
			saved, err := appCtx.Content.UpdateTopic(cmd.Context(), cur)
			if err != nil {
				return err
			}
			return printCreated(cmd, "topic", saved.ID, saved)
		},
	}
	update.Flags().StringVar(&upd.Title, "title", "", "new title")
	update.Flags().IntVar(&upd.Order, "order", 0, "new position")

	del := &cobra.Command{
		Use:   "delete <topic-id>",
		Short: "Delete a topic with its epigraphs, concepts and questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Content.DeleteTopic(cmd.Context(), idArg(args, 0)); err != nil {
				return err
			}
			deleted(cmd, "topic", idArg(args, 0))
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func epigraphsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "epigraphs", Short: "List and manage the epigraphs of a topic"}

	list := &cobra.Command{
		Use:   "list <topic-id>",
		Short: "List the epigraphs of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			epigraphs, err := appCtx.Content.ListEpigraphs(cmd.Context(), idArg(args, 0))
			if err != nil {
				return err
			}
			return render(cmd, epigraphs, func(w io.Writer) {
				row(w, "ID", "NAME")
				for _, e := range epigraphs {
					row(w, e.ID, e.Name)
				}
			})
		},
	}

	var e domain.Epigraph
	create := &cobra.Command{
		Use:   "create <topic-id>",
		Short: "Create an epigraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.TopicID = idArg(args, 0)
			created, err := appCtx.Content.CreateEpigraph(cmd.Context(), e)
			if err != nil {
				return err
			}
			return printCreated(cmd, "epigraph", created.ID, created)
		},
	}
	create.Flags().StringVar(&e.Name, "name", "", "epigraph name")
	create.Flags().StringVar(&e.Body, "body", "", "epigraph text")

	del := &cobra.Command{
		Use:   "delete <epigraph-id>",
		Short: "Delete an epigraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Content.DeleteEpigraph(cmd.Context(), idArg(args, 0)); err != nil {
				return err
			}
			deleted(cmd, "epigraph", idArg(args, 0))
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func conceptsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "concepts", Short: "List and manage the concepts of a topic"}

	list := &cobra.Command{
		Use:   "list <topic-id>",
		Short: "List the concepts of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			concepts, err := appCtx.Content.ListConcepts(cmd.Context(), idArg(args, 0))
			if err != nil {
				return err
			}
			return render(cmd, concepts, func(w io.Writer) {
				row(w, "ID", "TERM", "DEFINITION")
				for _, k := range concepts {
					row(w, k.ID, k.Term, k.Definition)
				}
			})
		},
	}

	var k domain.Concept
	var epigraph string
	create := &cobra.Command{
		Use:   "create <topic-id>",
		Short: "Create a concept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k.TopicID = idArg(args, 0)
			k.EpigraphID = domain.ID(epigraph)
			created, err := appCtx.Content.CreateConcept(cmd.Context(), k)
			if err != nil {
				return err
			}
			return printCreated(cmd, "concept", created.ID, created)
		},
	}
	create.Flags().StringVar(&k.Term, "term", "", "the term being defined")
	create.Flags().StringVar(&k.Definition, "definition", "", "its definition")
	create.Flags().StringVar(&epigraph, "epigraph", "", "file the concept under this epigraph id")

	del := &cobra.Command{
		Use:   "delete <concept-id>",
		Short: "Delete a concept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Content.DeleteConcept(cmd.Context(), idArg(args, 0)); err != nil {
				return err
			}
			deleted(cmd, "concept", idArg(args, 0))
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func questionsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "questions", Short: "List and manage the questions of a topic"}

	list := &cobra.Command{
		Use:   "list <topic-id>",
		Short: "List the questions of a topic with their answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := appCtx.Content.ListQuestions(cmd.Context(), idArg(args, 0))
			if err != nil {
				return err
			}
			return render(cmd, questions, func(w io.Writer) {
				for _, q := range questions {
					row(w, q.ID, q.Statement)
					for _, a := range q.Answers {
						mark := " "
						if a.Correct {
							mark = "*"
						}
						row(w, "", mark+" "+a.Text)
					}
				}
			})
		},
	}

	var (
		statement string
		answers   []string
		correct   int
	)
	create := &cobra.Command{
		Use:   "create <topic-id>",
		Short: "Create a multiple-choice question (--answer once per option)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if correct < 1 || correct > len(answers) {
				return fmt.Errorf("--correct must point at one of the %d answers", len(answers))
			}
			q := domain.Question{TopicID: idArg(args, 0), Statement: statement}
			for i, text := range answers {
				q.Answers = append(q.Answers, domain.Answer{Text: text, Correct: i+1 == correct})
			}
			created, err := appCtx.Content.CreateQuestion(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printCreated(cmd, "question", created.ID, created)
		},
	}
	create.Flags().StringVar(&statement, "statement", "", "question text")
	create.Flags().StringArrayVar(&answers, "answer", nil, "an answer option (repeat for each)")
	create.Flags().IntVar(&correct, "correct", 0, "1-based position of the correct answer")

	var answer domain.Answer
	addAnswer := &cobra.Command{
		Use:   "add-answer <question-id>",
		Short: "Add an answer option to a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer.QuestionID = idArg(args, 0)
			created, err := appCtx.Content.CreateAnswer(cmd.Context(), answer)
			if err != nil {
				return err
			}
			return printCreated(cmd, "answer", created.ID, created)
		},
	}
	addAnswer.Flags().StringVar(&answer.Text, "text", "", "answer text")
	addAnswer.Flags().BoolVar(&answer.Correct, "correct", false, "mark as the correct answer")

	del := &cobra.Command{
		Use:   "delete <question-id>",
		Short: "Delete a question and its answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Content.DeleteQuestion(cmd.Context(), idArg(args, 0)); err != nil {
				return err
			}
			deleted(cmd, "question", idArg(args, 0))
			return nil
		},
	}

	cmd.AddCommand(list, create, addAnswer, del)
	return cmd
}

// printCreated prints v with --json and a one-line confirmation otherwise.
func printCreated(cmd *cobra.Command, kind string, id domain.ID, v any) error {
	return render(cmd, v, func(w io.Writer) {
		fmt.Fprintf(w, "Saved %s %s\n", kind, id)
	})
}
