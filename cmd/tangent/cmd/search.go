package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tangent/internal/note"
)

var searchKind string

var searchCmd = &cobra.Command{
	Use:   "search <word>",
	Short: "Find every occurrence of a tag or note reference",
	Long: `Search the workspace for a reference.

Examples:
  tangent search project            # occurrences of #project
  tangent search --kind wikilink Idea   # wiki-links to the note "Idea"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		word := note.ContextWord{Word: args[0]}
		switch searchKind {
		case "tag":
			word.Kind = note.KindTag
		case "wikilink":
			word.Kind = note.KindWikiLink
		default:
			return fmt.Errorf("unknown kind %q (want tag or wikilink)", searchKind)
		}
		word.HasExtension = strings.Contains(args[0], ".")

		hits, err := engine.Search(cmd.Context(), word)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, hit := range hits {
			fmt.Printf("%s:%d:%d\n", hit.Path, hit.Range.Start.Line+1, hit.Range.Start.Character+1)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "tag", "reference kind: tag or wikilink")
	rootCmd.AddCommand(searchCmd)
}
