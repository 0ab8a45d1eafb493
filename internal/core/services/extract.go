package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

// LogicalField identifies a value the extractor can resolve out of an
// upstream payload.
type LogicalField string

// Logical fields with known key-path tables.
const (
	FieldLevelID        LogicalField = "level_id"
	FieldName           LogicalField = "name"
	FieldAuthor         LogicalField = "author"
	FieldObjectCount    LogicalField = "object_count"
	FieldLengthSeconds  LogicalField = "length_seconds"
	FieldDifficultyCode LogicalField = "difficulty_code"
	FieldDifficultyText LogicalField = "difficulty_text"
	FieldObjectIDs      LogicalField = "object_ids"
)

// fieldPaths is the extraction policy: for each logical field, an ordered
// list of candidate key-paths (dotted for nesting) reflecting the shapes
// the upstream API has been seen to return. First present, non-null value
// wins. Tolerating a new field name variant is an entry here, not a code
// change.
var fieldPaths = map[LogicalField][]string{
	FieldLevelID: {
		"id", "levelId", "levelID", "level_id", "level.id",
	},
	FieldName: {
		"name", "levelName", "level_name", "title", "level.name",
	},
	FieldAuthor: {
		"author", "creator", "username", "accountName",
		"level.author", "level.creator",
	},
	FieldObjectCount: {
		"objects", "objectCount", "object_count", "objectsCount",
		"stats.objects", "level.objects", "meta.objectCount",
	},
	FieldLengthSeconds: {
		"seconds", "lengthSeconds", "length_seconds", "duration",
		"durationSeconds", "stats.seconds", "level.seconds",
		"meta.lengthSeconds",
	},
	FieldDifficultyCode: {
		"difficulty", "difficultyCode", "difficulty_code",
		"level.difficulty", "meta.difficulty",
	},
	FieldDifficultyText: {
		"difficultyName", "difficulty_name", "difficultyText",
		"difficulty", "level.difficultyName",
	},
	FieldObjectIDs: {
		"objectIds", "objectIDs", "object_ids", "objectTypes",
		"blocks", "level.objectIds", "meta.objectIds",
	},
}

// numberPattern matches the first decimal number inside a string, so
// values like "1m 62.5s" or "~4000 objects" still coerce.
var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Extract resolves a logical field out of a raw payload. It walks the
// field's key-paths in order and returns the first present, non-null
// value. It never panics; any traversal failure yields (nil, false).
func Extract(raw map[string]any, field LogicalField) (any, bool) {
	for _, path := range fieldPaths[field] {
		if v, ok := lookupPath(raw, path); ok {
			return v, true
		}
	}
	return nil, false
}

// ExtractString resolves a logical field as a string.
func ExtractString(raw map[string]any, field LogicalField) (string, bool) {
	v, ok := Extract(raw, field)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		if s == "" {
			return "", false
		}
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}

// ExtractNumber resolves a logical field as a real number. Raw numbers
// pass through; strings yield the first decimal number found inside them;
// anything else is unknown.
func ExtractNumber(raw map[string]any, field LogicalField) (float64, bool) {
	v, ok := Extract(raw, field)
	if !ok {
		return 0, false
	}
	return coerceNumber(v)
}

// ExtractIntList resolves a logical field as a list of integers. Accepted
// shapes: an array of numbers or numeric strings, or one comma-separated
// string. The second return is false when no list is present at all.
func ExtractIntList(raw map[string]any, field LogicalField) ([]int, bool) {
	v, ok := Extract(raw, field)
	if !ok {
		return nil, false
	}

	switch list := v.(type) {
	case []any:
		out := make([]int, 0, len(list))
		for _, item := range list {
			if n, ok := coerceNumber(item); ok {
				out = append(out, int(n))
			}
		}
		return out, true
	case []int:
		return list, true
	case string:
		parts := strings.Split(list, ",")
		out := make([]int, 0, len(parts))
		for _, part := range parts {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				out = append(out, n)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

// coerceNumber applies the numeric coercion rules to one raw value.
func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if m := numberPattern.FindString(n); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// lookupPath walks one dotted key-path through nested maps. Every step
// short of the last must be a map; a nil leaf counts as absent.
func lookupPath(raw map[string]any, path string) (any, bool) {
	if raw == nil {
		return nil, false
	}

	current := raw
	keys := strings.Split(path, ".")
	for i, key := range keys {
		v, ok := current[key]
		if !ok || v == nil {
			return nil, false
		}
		if i == len(keys)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// NormalizeDetail builds a DetailRecord from a decoded upstream payload,
// resolving every logical field through the extraction table. Fields the
// payload does not expose in any known shape stay unknown.
func NormalizeDetail(levelID string, raw map[string]any) domain.DetailRecord {
	d := domain.DetailRecord{
		LevelID:        levelID,
		ObjectCount:    domain.Unset,
		LengthSeconds:  domain.Unset,
		DifficultyCode: domain.Unset,
		Raw:            raw,
	}

	if id, ok := ExtractString(raw, FieldLevelID); ok && d.LevelID == "" {
		d.LevelID = id
	}
	if name, ok := ExtractString(raw, FieldName); ok {
		d.Name = name
	}
	if author, ok := ExtractString(raw, FieldAuthor); ok {
		d.Author = author
	}
	if n, ok := ExtractNumber(raw, FieldObjectCount); ok && n >= 0 {
		d.ObjectCount = int(n)
	}
	if n, ok := ExtractNumber(raw, FieldLengthSeconds); ok && n >= 0 {
		d.LengthSeconds = n
	}
	if n, ok := ExtractNumber(raw, FieldDifficultyCode); ok && n >= 0 {
		d.DifficultyCode = int(n)
	}
	if text, ok := ExtractString(raw, FieldDifficultyText); ok {
		d.DifficultyText = text
	}
	if ids, ok := ExtractIntList(raw, FieldObjectIDs); ok {
		if ids == nil {
			ids = []int{}
		}
		d.ObjectIDs = ids
	}

	return d
}
