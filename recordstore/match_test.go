package recordstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/intellib/recordstore"
)

func Test_MatchAll_SanitizesPredicates(t *testing.T) {
	tests := []struct {
		name     string
		build    func() recordstore.Match
		expected []recordstore.Predicate
	}{
		{
			name: "empty_match_selects_everything",
			build: func() recordstore.Match {
				return recordstore.MatchAll()
			},
			expected: []recordstore.Predicate{},
		},
		{
			name: "predicates_are_sorted_by_key",
			build: func() recordstore.Match {
				return recordstore.MatchAll(
					recordstore.P("enrollment_no", "E001"),
					recordstore.P("book_issued", "B1"),
				)
			},
			expected: []recordstore.Predicate{
				recordstore.P("book_issued", "B1"),
				recordstore.P("enrollment_no", "E001"),
			},
		},
		{
			name: "duplicates_and_empty_keys_are_dropped",
			build: func() recordstore.Match {
				return recordstore.MatchAll(
					recordstore.P("enrollment_no", "E001"),
					recordstore.P("", "ignored"),
					recordstore.P("enrollment_no", "E001"),
				)
			},
			expected: []recordstore.Predicate{
				recordstore.P("enrollment_no", "E001"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := tt.build()

			assert.Equal(t, tt.expected, match.Predicates())
			assert.Equal(t, len(tt.expected) == 0, match.IsEmpty())
		})
	}
}

func Test_Match_Matches(t *testing.T) {
	// arrange
	match := recordstore.MatchAll(
		recordstore.P("book_issued", "B1"),
		recordstore.P("enrollment_no", "E001"),
	)

	// act & assert
	assert.True(t, match.Matches(map[string]any{"book_issued": "B1", "enrollment_no": "E001", "fine": 0.0}))
	assert.False(t, match.Matches(map[string]any{"book_issued": "B2", "enrollment_no": "E001"}))
	assert.False(t, match.Matches(map[string]any{"enrollment_no": "E001"}))
	assert.False(t, match.Matches(map[string]any{"book_issued": 1, "enrollment_no": "E001"}))
	assert.True(t, recordstore.MatchAny().Matches(map[string]any{"anything": true}))
}

func Test_Match_Fields(t *testing.T) {
	// arrange
	match := recordstore.MatchAll(recordstore.P("enrollment_no", "E001"))

	// act
	fields := match.Fields()

	// assert
	assert.Equal(t, map[string]string{"enrollment_no": "E001"}, fields)
}
