// Package chat is the chat-platform driving adapter: it turns one
// structured search command into a pipeline run and a pagination session,
// and translates navigation events back onto that session.
//
// The platform gateway (connection, command registration, event decoding)
// lives outside this repo. The adapter receives already-decoded option
// maps and navigation events, and replies through the driven.Messenger
// port.
package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

// Option names as registered on the platform command. All are optional.
const (
	OptQuery              = "query"
	OptLengthCategory     = "lengthcategory"
	OptExactLengthSeconds = "exactlengthseconds"
	OptMinObjects         = "minobjects"
	OptMaxObjects         = "maxobjects"
	OptExactObjects       = "exactobjects"
	OptRequiredObjectIDs  = "requiredobjectids"
	OptDifficulty         = "difficulty"
	OptLimit              = "limit"
)

// ParseOptions builds a FilterSpec from the decoded command options.
// Unknown option names are rejected so typos surface instead of silently
// searching unfiltered.
func ParseOptions(options map[string]string) (domain.FilterSpec, error) {
	filters := domain.NewFilterSpec()

	for name, value := range options {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		var err error
		switch name {
		case OptQuery:
			filters.Query = value
		case OptLengthCategory:
			filters.Length, err = domain.ParseLengthCategory(value)
		case OptExactLengthSeconds:
			filters.ExactLengthSeconds, err = parseNonNegativeFloat(name, value)
		case OptMinObjects:
			filters.MinObjects, err = parseNonNegativeInt(name, value)
		case OptMaxObjects:
			filters.MaxObjects, err = parseNonNegativeInt(name, value)
		case OptExactObjects:
			filters.ExactObjects, err = parseNonNegativeInt(name, value)
		case OptRequiredObjectIDs:
			filters.RequiredObjectIDs, err = parseIDList(value)
		case OptDifficulty:
			filters.Difficulty, err = domain.ParseDifficulty(value)
		case OptLimit:
			filters.CheckLimit, err = parseNonNegativeInt(name, value)
		default:
			err = fmt.Errorf("%w: unknown option %q", domain.ErrInvalidInput, name)
		}
		if err != nil {
			return domain.FilterSpec{}, err
		}
	}

	if err := filters.Validate(); err != nil {
		return domain.FilterSpec{}, err
	}
	return filters, nil
}

func parseNonNegativeInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, name)
	}
	return n, nil
}

func parseNonNegativeFloat(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, name)
	}
	return f, nil
}

// parseIDList parses a comma-separated list of object type ids.
func parseIDList(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("%w: requiredobjectids must be comma-separated non-negative integers", domain.ErrInvalidInput)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
