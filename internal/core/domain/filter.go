package domain

import (
	"fmt"
	"strings"
)

// Unset marks an optional numeric filter field that was not provided.
const Unset = -1

// MaxCheckDefault is the default upper bound on candidates examined per
// search. The command's limit option is clamped into [1, MaxCheck].
const MaxCheckDefault = 150

// LengthCategory is the remote index's length bucket for a level.
type LengthCategory string

// Length buckets understood by the remote search endpoint.
const (
	LengthAny    LengthCategory = ""
	LengthShort  LengthCategory = "short"
	LengthNormal LengthCategory = "normal"
	LengthLong   LengthCategory = "long"
	LengthXL     LengthCategory = "xl"
)

// remote numeric codes for the length buckets.
var lengthCodes = map[LengthCategory]int{
	LengthShort:  1,
	LengthNormal: 2,
	LengthLong:   3,
	LengthXL:     4,
}

// ParseLengthCategory parses a user-supplied length bucket name.
// Empty input means "any length".
func ParseLengthCategory(s string) (LengthCategory, error) {
	c := LengthCategory(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case LengthAny, LengthShort, LengthNormal, LengthLong, LengthXL:
		return c, nil
	}
	return LengthAny, fmt.Errorf("%w: unknown length category %q", ErrInvalidInput, s)
}

// RemoteCode returns the remote search parameter value for the bucket.
// The second return is false for LengthAny.
func (c LengthCategory) RemoteCode() (int, bool) {
	code, ok := lengthCodes[c]
	return code, ok
}

// Difficulty is a requested difficulty filter label.
type Difficulty string

// Difficulty labels. Auto disables the filter.
const (
	DifficultyAuto   Difficulty = "auto"
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyHarder Difficulty = "harder"
	DifficultyInsane Difficulty = "insane"
	DifficultyDemon  Difficulty = "demon"
)

// The numeric difficulty scale used by the remote index. Demon is a tier,
// not a single code: anything at or above DemonCodeThreshold counts.
// Treated as configuration pending confirmation against the remote API's
// documented scale.
var (
	DifficultyCodes = map[Difficulty]int{
		DifficultyEasy:   1,
		DifficultyNormal: 2,
		DifficultyHard:   3,
		DifficultyHarder: 4,
		DifficultyInsane: 5,
	}

	// DemonCodeThreshold is the lowest numeric code considered demon tier.
	DemonCodeThreshold = 6

	// DemonTextMarker matches textual difficulty values when no numeric
	// code is available.
	DemonTextMarker = "demon"
)

// ParseDifficulty parses a user-supplied difficulty label.
// Empty input means auto.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return DifficultyAuto, nil
	}
	switch d {
	case DifficultyAuto, DifficultyEasy, DifficultyNormal, DifficultyHard,
		DifficultyHarder, DifficultyInsane, DifficultyDemon:
		return d, nil
	}
	return DifficultyAuto, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, s)
}

// Code returns the single numeric code for the label, if it has one.
// Auto and demon have no single code.
func (d Difficulty) Code() (int, bool) {
	code, ok := DifficultyCodes[d]
	return code, ok
}

// FilterSpec is the parsed, validated input of one search command.
// Optional numeric fields use Unset (-1) when not provided.
type FilterSpec struct {
	// Query is the free-text search term sent to the remote index.
	Query string

	// Length is the remote-side length bucket, LengthAny when absent.
	Length LengthCategory

	// MinObjects is the local lower bound on object count.
	MinObjects int

	// MaxObjects is the local upper bound on object count.
	// Unset means unbounded.
	MaxObjects int

	// ExactObjects overrides MinObjects/MaxObjects when set.
	ExactObjects int

	// RequiredObjectIDs must all appear among a level's constituent
	// object type ids for the level to match.
	RequiredObjectIDs []int

	// ExactLengthSeconds is the exact-duration filter, matched with a
	// fixed tolerance. Unset disables it.
	ExactLengthSeconds float64

	// Difficulty filters on the remote difficulty scale.
	// DifficultyAuto disables the filter.
	Difficulty Difficulty

	// CheckLimit is how many candidates to examine, clamped to
	// [1, MaxCheck] before use.
	CheckLimit int
}

// NewFilterSpec returns a FilterSpec with every optional field unset.
func NewFilterSpec() FilterSpec {
	return FilterSpec{
		MinObjects:         0,
		MaxObjects:         Unset,
		ExactObjects:       Unset,
		ExactLengthSeconds: Unset,
		Difficulty:         DifficultyAuto,
		CheckLimit:         Unset,
	}
}

// HasExactObjects reports whether an exact object count was requested.
func (f FilterSpec) HasExactObjects() bool { return f.ExactObjects >= 0 }

// HasMaxObjects reports whether an upper object-count bound was requested.
func (f FilterSpec) HasMaxObjects() bool { return f.MaxObjects >= 0 }

// HasExactLength reports whether an exact duration was requested.
func (f FilterSpec) HasExactLength() bool { return f.ExactLengthSeconds >= 0 }

// Validate checks field ranges. It does not clamp; see ClampLimit.
func (f FilterSpec) Validate() error {
	if f.MinObjects < 0 {
		return fmt.Errorf("%w: minobjects must be >= 0", ErrInvalidInput)
	}
	if f.HasMaxObjects() && f.MaxObjects < f.MinObjects {
		return fmt.Errorf("%w: maxobjects below minobjects", ErrInvalidInput)
	}
	for _, id := range f.RequiredObjectIDs {
		if id < 0 {
			return fmt.Errorf("%w: object id must be >= 0", ErrInvalidInput)
		}
	}
	return nil
}

// ClampLimit returns the effective candidate limit, clamped into
// [1, maxCheck]. An unset limit clamps to maxCheck.
func (f FilterSpec) ClampLimit(maxCheck int) int {
	if maxCheck < 1 {
		maxCheck = MaxCheckDefault
	}
	limit := f.CheckLimit
	if limit <= 0 || limit > maxCheck {
		limit = maxCheck
	}
	return limit
}
