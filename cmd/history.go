package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse finished tests kept on this machine",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent test results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		recs, err := e.store.ResultRepo().List(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		printHistory(cmd.OutOrStdout(), recs)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one result and its mistakes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rec, err := resolveRecord(cmd, e, args[0])
		if err != nil {
			return err
		}
		printRecord(cmd.OutOrStdout(), rec)
		return nil
	},
}

var historyReplayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Practise the mistakes of a past test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rec, err := resolveRecord(cmd, e, args[0])
		if err != nil {
			return err
		}
		if len(rec.Result.Mistakes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "That test had no mistakes.")
			return nil
		}
		var cue quiz.Cue
		if b := e.ws.Bell(); b != nil {
			cue = b
		}
		runLineReplay(newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), rec.Result.Mistakes, cue)
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Number of results to show (0 for all)")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyReplayCmd)
}

func resolveRecord(cmd *cobra.Command, e *env, id string) (*store.ResultRecord, error) {
	rec, err := e.store.ResultRepo().Resolve(cmd.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("no result with id %q", id)
	case errors.Is(err, store.ErrAmbiguous):
		return nil, fmt.Errorf("id %q matches more than one result; use more characters", id)
	case err != nil:
		return nil, fmt.Errorf("query result: %w", err)
	}
	return rec, nil
}

func printHistory(out io.Writer, recs []store.ResultRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(out, "No tests yet.")
		return
	}
	fmt.Fprintf(out, "%-8s  %-16s  %-15s  %-9s  %-7s  %s\n",
		"ID", "Finished", "Direction", "Range", "Score", "Mistakes")
	fmt.Fprintln(out, strings.Repeat("─", 75))
	for _, r := range recs {
		fmt.Fprintf(out, "%-8s  %-16s  %-15s  %-9s  %-7s  %d\n",
			r.ID.String()[:8],
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			r.Direction.Label(),
			fmt.Sprintf("%d-%d", r.Start, r.End),
			fmt.Sprintf("%d%%", r.Result.Percentage),
			len(r.Result.Mistakes),
		)
	}
}

func printRecord(out io.Writer, r *store.ResultRecord) {
	fmt.Fprintf(out, "ID:        %s\n", r.ID)
	fmt.Fprintf(out, "Session:   %s\n", r.SessionID)
	fmt.Fprintf(out, "Direction: %s\n", r.Direction.Label())
	fmt.Fprintf(out, "Range:     %d-%d\n", r.Start, r.End)
	fmt.Fprintf(out, "Started:   %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Finished:  %s\n", r.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	printResult(out, r.Result)
}
