package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backlinksCmd = &cobra.Command{
	Use:   "backlinks <note>",
	Short: "List every wiki-link pointing at a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hits, err := engine.SearchBacklinksFor(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("No backlinks found")
			return nil
		}
		for _, hit := range hits {
			fmt.Printf("%s:%d:%d\n", hit.Path, hit.Range.Start.Line+1, hit.Range.Start.Character+1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backlinksCmd)
}
