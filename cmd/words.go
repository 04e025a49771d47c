package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/corpus"
	"github.com/abhisek/lugat/internal/vocab"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List and edit your word list",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List words, optionally filtered by a search term",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		page, _ := cmd.Flags().GetInt("page")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if _, err := e.signedIn(cmd.Context()); err != nil {
			return err
		}

		cache, err := e.ws.Words(cmd.Context())
		if err == nil {
			err = cache.Reload(cmd.Context())
		}
		if err != nil {
			return userError(err, api.OpListWords)
		}
		printWordPage(cmd.OutOrStdout(), cache.Apply(search, page), cache.Len())
		return nil
	},
}

var wordsAddCmd = &cobra.Command{
	Use:   "add <english> <uzbek>",
	Short: "Add a word pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if _, err := e.signedIn(cmd.Context()); err != nil {
			return err
		}

		cache, err := e.ws.Words(cmd.Context())
		if err != nil {
			return userError(err, api.OpCreateWord)
		}
		w, err := cache.Add(cmd.Context(), vocab.WordInput{English: args[0], Uzbek: args[1]})
		if err != nil && !corpus.IsStale(err) {
			return userError(err, api.OpCreateWord)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s = %s\n", w.ID, w.English, w.Uzbek)
		warnStale(cmd.ErrOrStderr(), err)
		return nil
	},
}

var wordsEditCmd = &cobra.Command{
	Use:   "edit <id> <english> <uzbek>",
	Short: "Replace both sides of a word pair",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if _, err := e.signedIn(cmd.Context()); err != nil {
			return err
		}

		cache, err := e.ws.Words(cmd.Context())
		if err != nil {
			return userError(err, api.OpUpdateWord)
		}
		w, err := cache.Update(cmd.Context(), vocab.ID(args[0]), vocab.WordInput{English: args[1], Uzbek: args[2]})
		if err != nil && !corpus.IsStale(err) {
			return userError(err, api.OpUpdateWord)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s = %s\n", w.ID, w.English, w.Uzbek)
		warnStale(cmd.ErrOrStderr(), err)
		return nil
	},
}

var wordsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a word pair",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		if _, err := e.signedIn(cmd.Context()); err != nil {
			return err
		}

		id := vocab.ID(args[0])
		if !yes {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if !p.confirm(fmt.Sprintf("Delete word %s?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}
		cache, err := e.ws.Words(cmd.Context())
		if err == nil {
			err = cache.Remove(cmd.Context(), id)
		}
		if err != nil && !corpus.IsStale(err) {
			return userError(err, api.OpDeleteWord)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", id)
		warnStale(cmd.ErrOrStderr(), err)
		return nil
	},
}

// warnStale notes a change that was saved but could not be re-listed.
func warnStale(w io.Writer, err error) {
	if !corpus.IsStale(err) {
		return
	}
	fmt.Fprintf(w, "warning: change saved, but the word list could not be refreshed: %s\n",
		api.Message(err, api.OpListWords.Fallback()))
}

func init() {
	wordsListCmd.Flags().String("search", "", "Case-insensitive substring of either side")
	wordsListCmd.Flags().Int("page", 1, "Page number")
	wordsRmCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	wordsCmd.AddCommand(wordsListCmd, wordsAddCmd, wordsEditCmd, wordsRmCmd)
}

// printWordPage prints one page of a filtered word list.
func printWordPage(out io.Writer, v corpus.View, total int) {
	if total == 0 {
		fmt.Fprintln(out, "No words yet. Add one with `lugat words add <english> <uzbek>`.")
		return
	}
	if v.TotalMatching == 0 {
		fmt.Fprintf(out, "No words match %q.\n", v.Query)
		return
	}

	fmt.Fprintf(out, "%-8s  %-30s  %s\n", "ID", "English", "Uzbek")
	fmt.Fprintln(out, strings.Repeat("─", 70))
	for _, w := range v.Items {
		fmt.Fprintf(out, "%-8s  %-30s  %s\n", w.ID, truncate(w.English, 30), w.Uzbek)
	}
	fmt.Fprintf(out, "\nPage %d of %d · %d matching · %d total\n", v.PageIndex, v.PageCount, v.TotalMatching, total)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
