package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every distinct tag in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := engine.DistinctTags(cmd.Context())
		if err != nil {
			return err
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
