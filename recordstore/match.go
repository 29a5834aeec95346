package recordstore

import (
	"slices"
)

type MatchKeyString = string
type MatchValString = string

/***** Predicate *****/

// Predicate requires a top-level document field to equal a string value.
type Predicate struct {
	key MatchKeyString
	val MatchValString
}

func P(key MatchKeyString, val MatchValString) Predicate {
	return Predicate{key: key, val: val}
}

func (p Predicate) Key() MatchKeyString {
	return p.key
}

func (p Predicate) Val() MatchValString {
	return p.val
}

/***** Match *****/

// Match selects the documents of a collection for which all predicates hold.
type Match struct {
	predicates []Predicate
}

func (m Match) Predicates() []Predicate {
	return m.predicates
}

// IsEmpty reports whether the Match selects every document.
func (m Match) IsEmpty() bool {
	return len(m.predicates) == 0
}

// Fields returns the predicates as a field -> value map.
func (m Match) Fields() map[MatchKeyString]MatchValString {
	fields := make(map[MatchKeyString]MatchValString, len(m.predicates))
	for _, p := range m.predicates {
		fields[p.key] = p.val
	}

	return fields
}

// Matches reports whether a decoded document satisfies all predicates.
// Non-string field values never match.
func (m Match) Matches(document map[string]any) bool {
	for _, p := range m.predicates {
		val, ok := document[p.key].(string)
		if !ok || val != p.val {
			return false
		}
	}

	return true
}

// MatchAll builds a Match from the given predicates.
//
// Predicates with an empty key are dropped, exact duplicates are removed, and the result is sorted by key
// so that equal criteria always build equal queries. For two predicates on the same key with different
// values the Match can never be satisfied, which is kept as is.
func MatchAll(predicates ...Predicate) Match {
	sanitized := make([]Predicate, 0, len(predicates))

	for _, p := range predicates {
		if p.key == "" {
			continue
		}

		if slices.Contains(sanitized, p) {
			continue
		}

		sanitized = append(sanitized, p)
	}

	slices.SortStableFunc(sanitized, func(a, b Predicate) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		default:
			return 0
		}
	})

	return Match{predicates: sanitized}
}

// MatchAny returns the empty Match, which selects every document.
func MatchAny() Match {
	return Match{}
}
