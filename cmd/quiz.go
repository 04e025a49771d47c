package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/replay"
	"github.com/abhisek/lugat/internal/vocab"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run a test in line mode",
	Long: "Run a test over words start..end (inclusive) of your list. " +
		"Type each translation and press Enter; type :q (or send EOF) to finish early.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dirFlag, _ := cmd.Flags().GetString("direction")
		start, _ := cmd.Flags().GetInt("start")
		end, _ := cmd.Flags().GetInt("end")
		noReplay, _ := cmd.Flags().GetBool("no-replay")

		dir, err := vocab.ParseDirection(dirFlag)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if _, err := e.signedIn(ctx); err != nil {
			return err
		}
		cache, err := e.ws.Words(ctx)
		if err == nil {
			err = cache.Reload(ctx)
		}
		if err != nil {
			return userError(err, api.OpListWords)
		}
		count := cache.Len()
		if end < 0 {
			end = count - 1
		}

		o, err := e.ws.NewOrchestrator(ctx)
		if err != nil {
			return userError(err, api.OpStartTest)
		}
		req := quiz.StartRequest{Direction: dir, Start: start, End: end}
		if err := o.Start(ctx, req, count); err != nil {
			return userError(err, api.OpStartTest)
		}
		e.ws.SetSettings(req)

		var cue quiz.Cue
		if b := e.ws.Bell(); b != nil {
			cue = b
		}

		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		res, err := runLineQuiz(ctx, o, p)
		if err != nil {
			replayUnfinished(p, o, cue, !noReplay)
			return err
		}
		printResult(cmd.OutOrStdout(), res)

		if !noReplay && len(res.Mistakes) > 0 && p.confirm("\nReplay your mistakes?") {
			runLineReplay(p, res.Mistakes, cue)
		}
		return nil
	},
}

func init() {
	quizCmd.Flags().StringP("direction", "d", string(vocab.Forward), "en_to_uz (forward) or uz_to_en (reverse)")
	quizCmd.Flags().Int("start", 0, "First word index")
	quizCmd.Flags().Int("end", -1, "Last word index, inclusive (default: last word)")
	quizCmd.Flags().Bool("no-replay", false, "Do not offer to replay mistakes")
}

// quitWord typed as an answer finishes the session early.
const quitWord = ":q"

// runLineQuiz drives a started session from p until it finishes. A failed
// step offers a retry; declining it finishes the session early.
func runLineQuiz(ctx context.Context, o *quiz.Orchestrator, p *prompter) (vocab.SessionResult, error) {
	finishing := false
	for {
		snap := o.Snapshot()
		switch snap.State {
		case quiz.Finished:
			res, _ := o.Result()
			return res, nil

		case quiz.AwaitingQuestion:
			_ = o.LoadQuestion(ctx)

		case quiz.AwaitingAnswer:
			ans, err := p.ask(fmt.Sprintf("[%d/%d] %s - ? ", snap.Progress, snap.Total, snap.Prompt))
			if errors.Is(err, io.EOF) || (err == nil && strings.TrimSpace(ans) == quitWord) {
				finishing = true
				_ = o.Finish(ctx)
				continue
			}
			if err != nil {
				return vocab.SessionResult{}, err
			}
			a, err := o.SubmitAnswer(ctx, ans)
			if err == nil || o.Snapshot().FailedStep != quiz.AwaitingAnswer {
				printVerdict(p.out, a.Correct, a.Expected)
			}

		case quiz.Errored:
			if snap.SessionID.IsZero() {
				return vocab.SessionResult{}, userError(snap.Err, api.OpStartTest)
			}
			fmt.Fprintln(p.out, api.Message(snap.Err, stepFallback(snap.FailedStep)))
			if p.confirm("Retry?") {
				_ = o.Retry(ctx)
				continue
			}
			if finishing {
				return vocab.SessionResult{}, userError(snap.Err, api.OpFinish)
			}
			finishing = true
			_ = o.Finish(ctx)

		default:
			return vocab.SessionResult{}, fmt.Errorf("unexpected quiz state %s", snap.State)
		}
	}
}

// replayUnfinished lists the wrong answers of a session whose result could
// not be fetched and, if offer is set, asks to replay them.
func replayUnfinished(p *prompter, o *quiz.Orchestrator, cue quiz.Cue, offer bool) {
	snap := o.Snapshot()
	ms := o.Mistakes()
	if snap.State != quiz.Errored || snap.FailedStep != quiz.Finishing || len(ms) == 0 {
		return
	}
	fmt.Fprintln(p.out, "\nNo result from the server. Wrong answers this session:")
	printMistakes(p.out, ms)
	if offer && p.confirm("\nReplay your mistakes?") {
		runLineReplay(p, ms, cue)
	}
}

// stepFallback names the failed request for the generic error line.
func stepFallback(step quiz.State) string {
	switch step {
	case quiz.Starting:
		return api.OpStartTest.Fallback()
	case quiz.AwaitingQuestion:
		return api.OpQuestion.Fallback()
	case quiz.AwaitingAnswer:
		return api.OpAnswer.Fallback()
	case quiz.Transitioning:
		return api.OpNext.Fallback()
	case quiz.Finishing:
		return api.OpFinish.Fallback()
	}
	return api.DefaultFallback
}

func printVerdict(out io.Writer, correct bool, expected string) {
	if correct {
		fmt.Fprintln(out, "  Correct")
		return
	}
	fmt.Fprintf(out, "  Wrong. Correct answer: %s\n", expected)
}

func printResult(out io.Writer, res vocab.SessionResult) {
	fmt.Fprintf(out, "\nScore: %d%%  (%d correct, %d wrong, %d questions)\n",
		res.Percentage, res.Correct, res.Wrong, res.TotalQuestions)
	printMistakes(out, res.Mistakes)
}

func printMistakes(out io.Writer, ms []vocab.Mistake) {
	if len(ms) == 0 {
		fmt.Fprintln(out, "No mistakes. Well done!")
		return
	}
	fmt.Fprintf(out, "\n%-24s  %-24s  %s\n", "Prompt", "Expected", "Your answer")
	fmt.Fprintln(out, strings.Repeat("─", 70))
	for _, m := range ms {
		given := m.Provided
		if given == "" {
			given = "(blank)"
		}
		fmt.Fprintf(out, "%-24s  %-24s  %s\n", truncate(m.Prompt, 24), truncate(m.Expected, 24), given)
	}
}

// runLineReplay asks every mistake again, checked locally.
func runLineReplay(p *prompter, ms []vocab.Mistake, cue quiz.Cue) replay.Summary {
	eng := replay.FromMistakes(ms)
	for !eng.Done() {
		item, _ := eng.Current()
		ans, err := p.ask(fmt.Sprintf("[%d/%d] %s - ? ", eng.Position(), eng.Len(), item.Prompt))
		if err != nil {
			break
		}
		v, err := eng.Submit(ans)
		if err != nil {
			break
		}
		if cue != nil {
			cue.Play(v.Correct)
		}
		printVerdict(p.out, v.Correct, v.Item.Expected)
	}
	sum := eng.Summary()
	fmt.Fprintf(p.out, "\nReplay: %d / %d correct (%d%%)\n", sum.Correct, sum.Total, sum.Percentage)
	return sum
}
