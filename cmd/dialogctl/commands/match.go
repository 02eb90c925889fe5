package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskvoice/internal/nlp"
)

// NewMatchCmd creates the match command
func NewMatchCmd() *cobra.Command {
	var (
		threshold int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "match <query> <candidate>...",
		Short: "Score a spoken name against candidate titles",
		Long:  "Run the fuzzy title resolution against a candidate list and print every accepted match",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			candidates := args[1:]

			matches := nlp.FindMatches(query, candidates, threshold, limit)
			if len(matches) == 0 {
				fmt.Printf("No candidate scored %d or above for %q\n", threshold, query)
				return nil
			}

			for _, m := range matches {
				fmt.Printf("  %3d  %s\n", m.Score, m.Title)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", nlp.DefaultMatchThreshold, "Minimum similarity score (0-100)")
	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of matches to print")

	return cmd
}
