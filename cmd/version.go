/*
Copyright © 2025 NoteWell Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "notewell-eval "+version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
