/*
Copyright © 2025 NoteWell Authors
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notewell/notewell/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the builtin evaluation scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarios, err := scenario.Builtin()
		if err != nil {
			return err
		}
		for _, s := range scenarios {
			desc := strings.TrimSpace(s.Description)
			if i := strings.IndexByte(desc, '\n'); i >= 0 {
				desc = desc[:i]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d docs, %d seed notes  %s\n",
				s.Name, len(s.Documents), len(s.ExistingNotes), desc)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
