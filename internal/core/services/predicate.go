package services

import (
	"math"
	"strings"

	"github.com/skyform-labs/levelscout/internal/core/domain"
	"github.com/skyform-labs/levelscout/internal/logger"
)

// LengthTolerance absorbs float/rounding mismatch in the upstream timing
// metadata when matching an exact duration.
const LengthTolerance = 0.3

// Accepts decides whether one detail record survives the active filters.
// Pure conjunction, short-circuit on the first failing check.
//
// Missing-data policy per check:
//   - object count: permissive (cannot verify, do not reject)
//   - required object ids: strict (no list at all means reject)
//   - exact length: strict (unknown duration cannot match a duration)
//   - difficulty: permissive when neither code nor text is available
func Accepts(f domain.FilterSpec, d domain.DetailRecord) bool {
	return acceptsObjectCount(f, d) &&
		acceptsRequiredObjects(f, d) &&
		acceptsExactLength(f, d) &&
		acceptsDifficulty(f, d)
}

// acceptsObjectCount checks exact or min/max object-count bounds.
// An unknown count passes: absence of count data must not silently
// exclude otherwise-matching levels.
func acceptsObjectCount(f domain.FilterSpec, d domain.DetailRecord) bool {
	if !d.ObjectCountKnown() {
		return true
	}
	if f.HasExactObjects() {
		return d.ObjectCount == f.ExactObjects
	}
	if d.ObjectCount < f.MinObjects {
		return false
	}
	if f.HasMaxObjects() && d.ObjectCount > f.MaxObjects {
		return false
	}
	return true
}

// acceptsRequiredObjects requires every requested object type id to appear
// in the level's constituent-object list. A record exposing no such list
// is rejected outright: there is no way to verify the requirement, and
// this check favours precision over recall.
func acceptsRequiredObjects(f domain.FilterSpec, d domain.DetailRecord) bool {
	if len(f.RequiredObjectIDs) == 0 {
		return true
	}
	if d.ObjectIDs == nil {
		return false
	}

	present := make(map[int]bool, len(d.ObjectIDs))
	for _, id := range d.ObjectIDs {
		present[id] = true
	}
	for _, required := range f.RequiredObjectIDs {
		if !present[required] {
			return false
		}
	}
	return true
}

// acceptsExactLength requires a known duration within LengthTolerance of
// the requested one. Unknown duration rejects.
func acceptsExactLength(f domain.FilterSpec, d domain.DetailRecord) bool {
	if !f.HasExactLength() {
		return true
	}
	if !d.LengthKnown() {
		return false
	}
	return math.Abs(d.LengthSeconds-f.ExactLengthSeconds) <= LengthTolerance
}

// acceptsDifficulty maps the requested label onto the remote numeric
// scale. Demon is a tier: any code at or above the threshold matches, and
// when no code is available a textual difficulty containing the demon
// marker matches. When neither code nor text is available the check
// passes permissively.
func acceptsDifficulty(f domain.FilterSpec, d domain.DetailRecord) bool {
	if f.Difficulty == "" || f.Difficulty == domain.DifficultyAuto {
		return true
	}

	if f.Difficulty == domain.DifficultyDemon {
		if d.DifficultyKnown() {
			return d.DifficultyCode >= domain.DemonCodeThreshold
		}
		if d.DifficultyText != "" {
			return strings.Contains(strings.ToLower(d.DifficultyText), domain.DemonTextMarker)
		}
		return true
	}

	want, ok := f.Difficulty.Code()
	if !ok {
		logger.Warn("difficulty %q has no numeric code, passing permissively", f.Difficulty)
		return true
	}
	if d.DifficultyKnown() {
		return d.DifficultyCode == want
	}
	if d.DifficultyText != "" {
		return strings.EqualFold(strings.TrimSpace(d.DifficultyText), string(f.Difficulty))
	}
	return true
}
