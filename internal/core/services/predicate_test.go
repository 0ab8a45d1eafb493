package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

func detailWith(objects int, ids []int) domain.DetailRecord {
	return domain.DetailRecord{
		LevelID:        "1",
		ObjectCount:    objects,
		LengthSeconds:  domain.Unset,
		DifficultyCode: domain.Unset,
		ObjectIDs:      ids,
	}
}

func TestAcceptsObjectCount(t *testing.T) {
	tests := []struct {
		name    string
		filters func() domain.FilterSpec
		detail  domain.DetailRecord
		want    bool
	}{
		{
			name: "within min max",
			filters: func() domain.FilterSpec {
				f := domain.NewFilterSpec()
				f.MinObjects = 100
				f.MaxObjects = 2000
				return f
			},
			detail: detailWith(1200, nil),
			want:   true,
		},
		{
			name: "below min",
			filters: func() domain.FilterSpec {
				f := domain.NewFilterSpec()
				f.MinObjects = 1500
				return f
			},
			detail: detailWith(1200, nil),
			want:   false,
		},
		{
			name: "above max",
			filters: func() domain.FilterSpec {
				f := domain.NewFilterSpec()
				f.MaxObjects = 1000
				return f
			},
			detail: detailWith(1200, nil),
			want:   false,
		},
		{
			name: "exact match",
			filters: func() domain.FilterSpec {
				f := domain.NewFilterSpec()
				f.ExactObjects = 1200
				return f
			},
			detail: detailWith(1200, nil),
			want:   true,
		},
		{
			name: "exact mismatch rejects even inside min max",
			filters: func() domain.FilterSpec {
				f := domain.NewFilterSpec()
				f.MinObjects = 0
				f.MaxObjects = 5000
				f.ExactObjects = 1000
				return f
			},
			detail: detailWith(1200, nil),
			want:   false,
		},
		{
			name: "unknown count passes permissively",
			filters: func() domain.FilterSpec {
				f := domain.NewFilterSpec()
				f.MinObjects = 1000
				return f
			},
			detail: detailWith(domain.Unset, nil),
			want:   true,
		},
		{
			name: "unknown count passes even with exact set",
			filters: func() domain.FilterSpec {
				f := domain.NewFilterSpec()
				f.ExactObjects = 1000
				return f
			},
			detail: detailWith(domain.Unset, nil),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Accepts(tt.filters(), tt.detail))
		})
	}
}

func TestAcceptsRequiredObjectIDs(t *testing.T) {
	filters := domain.NewFilterSpec()
	filters.MinObjects = 1000
	filters.RequiredObjectIDs = []int{1, 2, 57}

	t.Run("superset accepted", func(t *testing.T) {
		assert.True(t, Accepts(filters, detailWith(1200, []int{1, 2, 57, 99})))
	})

	t.Run("missing id rejected", func(t *testing.T) {
		assert.False(t, Accepts(filters, detailWith(1200, []int{1, 2})))
	})

	t.Run("no list at all rejected", func(t *testing.T) {
		// Strict, not permissive: absence of the list is not evidence the
		// required objects are present.
		assert.False(t, Accepts(filters, detailWith(1200, nil)))
	})

	t.Run("empty list rejected", func(t *testing.T) {
		assert.False(t, Accepts(filters, detailWith(1200, []int{})))
	})

	t.Run("no requirement ignores list", func(t *testing.T) {
		f := domain.NewFilterSpec()
		assert.True(t, Accepts(f, detailWith(1200, nil)))
	})
}

func TestAcceptsExactLength(t *testing.T) {
	filters := domain.NewFilterSpec()
	filters.ExactLengthSeconds = 62

	within := detailWith(domain.Unset, nil)
	within.LengthSeconds = 62.2
	assert.True(t, Accepts(filters, within), "62.2 is within the 0.3s tolerance")

	outside := detailWith(domain.Unset, nil)
	outside.LengthSeconds = 62.5
	assert.False(t, Accepts(filters, outside), "62.5 exceeds the 0.3s tolerance")

	unknown := detailWith(domain.Unset, nil)
	assert.False(t, Accepts(filters, unknown), "unknown length cannot match an exact duration")
}

func TestAcceptsDifficulty(t *testing.T) {
	withCode := func(code int) domain.DetailRecord {
		d := detailWith(domain.Unset, nil)
		d.DifficultyCode = code
		return d
	}
	withText := func(text string) domain.DetailRecord {
		d := detailWith(domain.Unset, nil)
		d.DifficultyText = text
		return d
	}
	want := func(d domain.Difficulty) domain.FilterSpec {
		f := domain.NewFilterSpec()
		f.Difficulty = d
		return f
	}

	t.Run("auto disables the filter", func(t *testing.T) {
		assert.True(t, Accepts(want(domain.DifficultyAuto), withCode(1)))
	})

	t.Run("code equality", func(t *testing.T) {
		assert.True(t, Accepts(want(domain.DifficultyInsane), withCode(5)))
		assert.False(t, Accepts(want(domain.DifficultyInsane), withCode(3)))
	})

	t.Run("demon is a tier not a code", func(t *testing.T) {
		assert.True(t, Accepts(want(domain.DifficultyDemon), withCode(domain.DemonCodeThreshold)))
		assert.True(t, Accepts(want(domain.DifficultyDemon), withCode(domain.DemonCodeThreshold+4)))
		assert.False(t, Accepts(want(domain.DifficultyDemon), withCode(5)))
	})

	t.Run("demon via text marker when no code", func(t *testing.T) {
		assert.True(t, Accepts(want(domain.DifficultyDemon), withText("Extreme Demon")))
		assert.False(t, Accepts(want(domain.DifficultyDemon), withText("Harder")))
	})

	t.Run("text equality for plain labels", func(t *testing.T) {
		assert.True(t, Accepts(want(domain.DifficultyHard), withText("Hard")))
		assert.False(t, Accepts(want(domain.DifficultyHard), withText("Easy")))
	})

	t.Run("neither code nor text passes permissively", func(t *testing.T) {
		assert.True(t, Accepts(want(domain.DifficultyDemon), detailWith(domain.Unset, nil)))
		assert.True(t, Accepts(want(domain.DifficultyHard), detailWith(domain.Unset, nil)))
	})
}

func TestAcceptsIsPureConjunction(t *testing.T) {
	// One failing check rejects regardless of the others passing.
	filters := domain.NewFilterSpec()
	filters.MinObjects = 1000
	filters.ExactLengthSeconds = 62

	d := detailWith(1200, nil)
	d.LengthSeconds = 90
	assert.False(t, Accepts(filters, d))
}
