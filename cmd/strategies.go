/*
Copyright © 2025 NoteWell Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notewell/notewell/internal/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the available matching strategies",
	Run: func(cmd *cobra.Command, args []string) {
		for _, kind := range strategy.Kinds() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", kind, kind.Description())
		}
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
