package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

var (
	searchFlags filterFlags
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search and print the matches",
	Long: `Runs the full search-and-filter pipeline once and prints every match.
Remote-expressible filters (query, length, difficulty) are pushed to the
index; object counts, required object ids and exact duration are checked
locally against each level's detail record.`,
	RunE: runSearch,
}

func init() {
	searchFlags.register(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output matches as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	filters, err := searchFlags.toSpec()
	if err != nil {
		return err
	}

	matches, err := searchService.Run(cmd.Context(), filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputMatchesJSON(cmd, matches)
	}
	return outputMatchesTable(cmd, matches)
}

func outputMatchesJSON(cmd *cobra.Command, matches []domain.Match) error {
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputMatchesTable(cmd *cobra.Command, matches []domain.Match) error {
	if len(matches) == 0 {
		cmd.Println("No levels matched.")
		return nil
	}

	cmd.Printf("Matches (%d):\n\n", len(matches))
	for i, m := range matches {
		cmd.Printf("  [%d] %s (id %s)\n", i+1, m.DisplayName, m.LevelID)
		cmd.Printf("      by %s, objects %s, length %s\n\n",
			displayOr(m.Author, "unknown"), displayCount(m.ObjectCount), displaySeconds(m.LengthSeconds))
	}
	return nil
}

func displayOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func displayCount(n int) string {
	if n < 0 {
		return "?"
	}
	return fmt.Sprintf("%d", n)
}

func displaySeconds(s float64) string {
	if s < 0 {
		return "?"
	}
	return fmt.Sprintf("%.1fs", s)
}
