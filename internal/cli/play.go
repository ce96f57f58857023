package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

// loadWait bounds how long play waits for the word list.
const loadWait = time.Minute

const terminalSession = "terminal"

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		rounds, _ := cmd.Flags().GetInt("rounds")
		if rounds < 0 {
			return fmt.Errorf("--rounds must not be negative")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		loader, err := newLoader(cfg, log)
		if err != nil {
			return err
		}

		catalog := service.NewCatalog(loader, log)
		catalog.Start(ctx)

		fmt.Fprintln(cmd.OutOrStdout(), "Loading words...")
		waitCtx, cancel := context.WithTimeout(ctx, loadWait)
		defer cancel()
		if _, err := catalog.Wait(waitCtx); err != nil {
			return fmt.Errorf("load words: %w", err)
		}

		quiz := service.NewQuizService(catalog, storage.NewSessionStorage(), log)
		return play(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), quiz, rounds, cfg.Quiz.FeedbackDelay)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Int("rounds", 0, "number of questions to ask (0 plays until q or end of input)")
}

type terminalQuiz interface {
	StartSession(ctx context.Context, key string) (entities.Question, error)
	AnswerIndex(ctx context.Context, key string, questionID uint64, index int) (entities.AnswerResult, error)
	Next(ctx context.Context, key string) (entities.Question, error)
	End(ctx context.Context, key string)
}

// play runs a quiz on a line-oriented terminal. After each answer it pauses for
// delay before opening the next question.
func play(ctx context.Context, in io.Reader, out io.Writer, quiz terminalQuiz, rounds int, delay time.Duration) error {
	q, err := quiz.StartSession(ctx, terminalSession)
	if err != nil {
		return err
	}
	defer quiz.End(ctx, terminalSession)

	scanner := bufio.NewScanner(in)

	for round := 1; rounds == 0 || round <= rounds; round++ {
		printQuestion(out, q)

		index, ok := readChoice(scanner, out, len(q.Options))
		if !ok {
			fmt.Fprintln(out, "Bye!")
			return nil
		}

		res, err := quiz.AnswerIndex(ctx, terminalSession, q.ID, index)
		if err != nil {
			return err
		}
		if res.IsCorrect {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Incorrect. The answer was %s.\n", res.CorrectAnswer.Word)
		}

		if rounds != 0 && round == rounds {
			break
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}

		q, err = quiz.Next(ctx, terminalSession)
		if err != nil {
			return err
		}
	}

	return nil
}

func printQuestion(out io.Writer, q entities.Question) {
	fmt.Fprintf(out, "\nWhich word means: %s\n", q.Meaning())
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Word)
	}
}

// readChoice reads lines until one holds an option number. It returns false on
// end of input or when the player types q.
func readChoice(scanner *bufio.Scanner, out io.Writer, n int) (int, bool) {
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return 0, false
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "q") {
			return 0, false
		}

		choice, err := strconv.Atoi(line)
		if err == nil && choice >= 1 && choice <= n {
			return choice - 1, true
		}
		fmt.Fprintf(out, "Enter a number from 1 to %d, or q to quit.\n", n)
	}
}
