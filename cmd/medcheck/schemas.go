package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyeh/medcost/internal/schema"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the available schemas and their checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for i, name := range schema.Names() {
			s, _ := schema.Lookup(name)
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s (drop invalid rows: %t)\n", s.Name, s.DropInvalidRows)
			for _, line := range schema.Describe(s) {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}
