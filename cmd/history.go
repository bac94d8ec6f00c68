/*
Copyright © 2025 NoteWell Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notewell/notewell/internal/resultstore"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past evaluation runs from a history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("history")
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := resultstore.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
			return nil
		}

		for _, run := range runs {
			verdict := "pass"
			if !run.GatePassed {
				verdict = "fail"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  gate=%s  results=%d\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"), run.ID, verdict, run.Results)
			for _, f := range run.Failures {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", f)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("history", ".notewell/history.db", "path to the history database")
	historyCmd.Flags().Int("limit", 20, "maximum runs to show")
}
