package domain

// CandidateRef is a lightweight remote search hit: the level id plus
// whatever partial display fields the search endpoint happened to return.
// Detail is fetched separately before filtering.
type CandidateRef struct {
	// LevelID is the opaque remote identifier.
	LevelID string

	// Name is a display-name hint, possibly empty.
	Name string

	// Author is a creator hint, possibly empty.
	Author string
}

// DetailRecord is the normalized result of fetching one level's full
// detail. Numeric fields use Unset (-1) when the upstream payload did not
// expose them in any known shape; Raw keeps the decoded payload so filters
// can fall back to direct extraction.
type DetailRecord struct {
	LevelID string
	Name    string
	Author  string

	// ObjectCount is the level's object count, Unset when unknown.
	ObjectCount int

	// LengthSeconds is the level duration, Unset when unknown.
	LengthSeconds float64

	// DifficultyCode is the remote numeric difficulty, Unset when unknown.
	DifficultyCode int

	// DifficultyText is a textual difficulty hint, empty when unknown.
	DifficultyText string

	// ObjectIDs lists the level's constituent object type ids.
	// Nil means the payload exposed no such list at all.
	ObjectIDs []int

	// Raw is the decoded upstream payload, retained for extraction
	// fallback by the presentation layer.
	Raw map[string]any
}

// ObjectCountKnown reports whether the object count could be determined.
func (d DetailRecord) ObjectCountKnown() bool { return d.ObjectCount >= 0 }

// LengthKnown reports whether the duration could be determined.
func (d DetailRecord) LengthKnown() bool { return d.LengthSeconds >= 0 }

// DifficultyKnown reports whether a numeric difficulty code is present.
func (d DetailRecord) DifficultyKnown() bool { return d.DifficultyCode >= 0 }

// Match is a DetailRecord that passed all active filters.
// Immutable once placed into a result list.
type Match struct {
	LevelID       string
	DisplayName   string
	Author        string
	ObjectCount   int
	LengthSeconds float64
	Raw           map[string]any
}

// MatchFromDetail builds a Match from an accepted detail record.
func MatchFromDetail(d DetailRecord) Match {
	name := d.Name
	if name == "" {
		name = d.LevelID
	}
	return Match{
		LevelID:       d.LevelID,
		DisplayName:   name,
		Author:        d.Author,
		ObjectCount:   d.ObjectCount,
		LengthSeconds: d.LengthSeconds,
		Raw:           d.Raw,
	}
}
