// Package cli provides the levelscout command-line interface.
// It wires the adapters to the core services once per process and exposes
// one-shot and interactive search commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/skyform-labs/levelscout/internal/adapters/driven/config/file"
	"github.com/skyform-labs/levelscout/internal/adapters/driven/gdapi"
	"github.com/skyform-labs/levelscout/internal/core/domain"
	"github.com/skyform-labs/levelscout/internal/core/ports/driving"
	"github.com/skyform-labs/levelscout/internal/core/services"
	"github.com/skyform-labs/levelscout/internal/logger"
)

var (
	cfgPath string
	verbose bool

	cfg           file.Config
	searchService driving.LevelSearchService
)

var rootCmd = &cobra.Command{
	Use:   "levelscout",
	Short: "Search a remote level index with local filters",
	Long: `levelscout queries a remote game-level index, re-filters the hits
locally against criteria the remote search cannot express (object counts,
required object ids, exact duration, difficulty) and presents the
survivors as a browsable result set.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.levelscout/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose pipeline logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and wires the core services.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	var err error
	cfg, err = file.Load(cfgPath)
	if err != nil {
		return err
	}

	if cfg.Difficulty.DemonThreshold > 0 {
		domain.DemonCodeThreshold = cfg.Difficulty.DemonThreshold
	}

	index := gdapi.NewClient(cfg.API.BaseURL, cfg.Timeout(), cfg.API.RequestsPerSecond)
	searchService = services.NewSearchPipeline(index, cfg.Search.MaxCheck, cfg.Search.Concurrency)
	return nil
}
