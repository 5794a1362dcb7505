package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subha54820/Scam-Shield/internal/model"
)

// errNoAnswers is returned when a quiz is submitted without a single answer.
var errNoAnswers = errors.New("no answers given")

// NewQuizCmd creates the quiz command.
func NewQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take the scam awareness quiz",
	}

	questions := &cobra.Command{
		Use:   "questions",
		Short: "List the quiz questions",
		Args:  cobra.NoArgs,
		RunE: runE(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			qs, err := a.client.QuizQuestions(ctx)
			if err != nil {
				return err
			}
			return a.out.WriteQuizQuestions(qs)
		}),
	}

	take := &cobra.Command{
		Use:   "take",
		Short: "Answer the quiz and get a score",
		Long: `Take asks each question in turn and submits the chosen options.
Answer with the option number, or leave the line empty to skip a question.

With --answers the quiz is submitted without prompting. Each answer pairs a
question ID with an option ID, as listed by "scamshield quiz questions".

Examples:
  scamshield quiz take
  scamshield quiz take --answers 1=3,2=7,3=10`,
		Args: cobra.NoArgs,
		RunE: runE(runQuizTakeCmd),
	}
	take.Flags().String("answers", "", "Answers as question=option pairs separated by commas")

	history := &cobra.Command{
		Use:   "history",
		Short: "Show past quiz attempts",
		Args:  cobra.NoArgs,
		RunE: runE(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			page, limit, err := pageFlags(cmd)
			if err != nil {
				return err
			}
			h, err := a.client.QuizHistory(ctx, page, limit)
			if err != nil {
				return err
			}
			return a.out.WriteQuizHistory(h)
		}),
	}
	addPageFlags(history)

	cmd.AddCommand(questions, take, history)
	return cmd
}

func runQuizTakeCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	raw, err := cmd.Flags().GetString("answers")
	if err != nil {
		return err
	}

	var answers map[string]int64
	if cmd.Flags().Changed("answers") {
		answers, err = parseAnswers(raw)
	} else {
		answers, err = askQuiz(ctx, a)
	}
	if err != nil {
		return err
	}
	if len(answers) == 0 {
		return errNoAnswers
	}

	result, err := a.client.SubmitQuiz(ctx, answers)
	if err != nil {
		return err
	}
	return a.out.WriteQuizResult(result)
}

// parseAnswers parses "q=a,q=a". Both sides must be integers.
func parseAnswers(raw string) (map[string]int64, error) {
	answers := make(map[string]int64)
	for pair := range strings.SplitSeq(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		q, o, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid answer %q: expected question=option", pair)
		}
		q = strings.TrimSpace(q)
		if _, err := strconv.ParseInt(q, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid question ID %q", q)
		}
		option, err := strconv.ParseInt(strings.TrimSpace(o), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid option ID %q for question %s", strings.TrimSpace(o), q)
		}
		answers[q] = option
	}
	return answers, nil
}

// askQuiz walks through the questions and maps each chosen option number to
// its option ID.
func askQuiz(ctx context.Context, a *app) (map[string]int64, error) {
	questions, err := a.client.QuizQuestions(ctx)
	if err != nil {
		return nil, err
	}

	answers := make(map[string]int64, len(questions))
	for i, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.prompt.terminal != nil {
			printQuestion(a, i+1, len(questions), q)
		}
		for {
			line, err := a.prompt.line("Answer: ")
			if err != nil {
				return nil, err
			}
			option, skip, err := chooseOption(q, line)
			if err != nil {
				if a.prompt.terminal == nil {
					return nil, fmt.Errorf("question %d: %w", q.ID, err)
				}
				a.warnf("%v", err)
				continue
			}
			if !skip {
				answers[strconv.FormatInt(q.ID, 10)] = option
			}
			break
		}
	}
	return answers, nil
}

func printQuestion(a *app, n, total int, q model.QuizQuestion) {
	fmt.Fprintf(a.prompt.out, "\nQuestion %d of %d: %s\n", n, total, q.Question)
	for i, o := range q.Options {
		fmt.Fprintf(a.prompt.out, "  %d) %s\n", i+1, o.Text)
	}
}

// chooseOption maps a 1-based option number to the option ID. An empty
// answer skips the question.
func chooseOption(q model.QuizQuestion, answer string) (int64, bool, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 0, true, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(q.Options) {
		return 0, false, fmt.Errorf("choose an option between 1 and %d", len(q.Options))
	}
	return q.Options[n-1].ID, false, nil
}
