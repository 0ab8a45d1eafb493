package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

// filterFlags holds the shared search filter flags. Each command that
// searches registers its own copy.
type filterFlags struct {
	query          string
	length         string
	difficulty     string
	requireObjects string
	minObjects     int
	maxObjects     int
	exactObjects   int
	exactSeconds   float64
	limit          int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "free-text search term")
	cmd.Flags().StringVar(&f.length, "length", "", "length bucket: short, normal, long, xl")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "auto", "difficulty: auto, easy, normal, hard, harder, insane, demon")
	cmd.Flags().StringVar(&f.requireObjects, "require-objects", "", "comma-separated object ids that must all appear")
	cmd.Flags().IntVar(&f.minObjects, "min-objects", 0, "lower bound on object count")
	cmd.Flags().IntVar(&f.maxObjects, "max-objects", domain.Unset, "upper bound on object count")
	cmd.Flags().IntVar(&f.exactObjects, "exact-objects", domain.Unset, "exact object count, overrides min/max")
	cmd.Flags().Float64Var(&f.exactSeconds, "exact-seconds", domain.Unset, "exact duration in seconds (0.3s tolerance)")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 30, "candidates to examine")
}

// toSpec converts the flags into a validated FilterSpec.
func (f *filterFlags) toSpec() (domain.FilterSpec, error) {
	spec := domain.NewFilterSpec()
	spec.Query = f.query
	spec.MinObjects = f.minObjects
	spec.MaxObjects = f.maxObjects
	spec.ExactObjects = f.exactObjects
	spec.ExactLengthSeconds = f.exactSeconds
	spec.CheckLimit = f.limit

	var err error
	if spec.Length, err = domain.ParseLengthCategory(f.length); err != nil {
		return domain.FilterSpec{}, err
	}
	if spec.Difficulty, err = domain.ParseDifficulty(f.difficulty); err != nil {
		return domain.FilterSpec{}, err
	}

	if f.requireObjects != "" {
		for _, part := range strings.Split(f.requireObjects, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id < 0 {
				return domain.FilterSpec{}, fmt.Errorf("%w: --require-objects takes comma-separated non-negative integers", domain.ErrInvalidInput)
			}
			spec.RequiredObjectIDs = append(spec.RequiredObjectIDs, id)
		}
	}

	if err := spec.Validate(); err != nil {
		return domain.FilterSpec{}, err
	}
	return spec, nil
}
