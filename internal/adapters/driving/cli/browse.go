package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyform-labs/levelscout/internal/adapters/driving/tui"
)

var browseFlags filterFlags

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Run one search and browse the matches interactively",
	Long: `Runs the search-and-filter pipeline once, then opens an interactive
pager over the matches. Left/right (or h/l) turn pages, q quits.`,
	RunE: runBrowse,
}

func init() {
	browseFlags.register(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	filters, err := browseFlags.toSpec()
	if err != nil {
		return err
	}

	matches, err := searchService.Run(cmd.Context(), filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(matches) == 0 {
		cmd.Println("No levels matched.")
		return nil
	}

	return tui.Browse(matches, cfg.Pagination.PageSize)
}
