// Package kmp provides Knuth-Morris-Pratt exact matching for textpack.
//
// A Matcher is built once per pattern and can then search any number of
// texts in time linear in the text length. The element type is generic so the
// same code serves rune slices (the textpack symbol type) and byte slices.
package kmp

import "errors"

// NotFound is returned by the search functions when the pattern does not occur.
const NotFound = -1

// ErrInvalidPattern indicates an empty pattern was supplied where one is required.
var ErrInvalidPattern = errors.New("kmp: empty pattern")

// FailureTable computes the KMP failure function for pattern.
//
// table[0] is -1. For i >= 1, table[i] is the length of the longest proper
// prefix of pattern[:i] that is also a suffix of pattern[:i].
func FailureTable[T comparable](pattern []T) []int {
	if len(pattern) == 0 {
		return nil
	}

	table := make([]int, len(pattern))
	table[0] = -1
	if len(pattern) == 1 {
		return table
	}

	table[1] = 0
	idx := 0
	pos := 2
	for pos < len(pattern) {
		switch {
		case pattern[pos-1] == pattern[idx]:
			idx++
			table[pos] = idx
			pos++
		case idx > 0:
			idx = table[idx]
		default:
			table[pos] = 0
			pos++
		}
	}
	return table
}

// Matcher searches for a single fixed pattern.
//
// A Matcher is immutable after New returns and is safe for concurrent use.
type Matcher[T comparable] struct {
	pattern []T
	table   []int
}

// New builds a Matcher for pattern. The pattern is copied.
func New[T comparable](pattern []T) (*Matcher[T], error) {
	if len(pattern) == 0 {
		return nil, ErrInvalidPattern
	}
	p := append([]T(nil), pattern...)
	return &Matcher[T]{pattern: p, table: FailureTable(p)}, nil
}

// Pattern returns a copy of the pattern.
func (m *Matcher[T]) Pattern() []T {
	return append([]T(nil), m.pattern...)
}

// Table returns a copy of the failure table.
func (m *Matcher[T]) Table() []int {
	return append([]int(nil), m.table...)
}

// Len returns the pattern length.
func (m *Matcher[T]) Len() int {
	return len(m.pattern)
}

// Search returns the index of the first occurrence of the pattern in text, or
// NotFound.
func (m *Matcher[T]) Search(text []T) int {
	idx, _ := m.search(text)
	return idx
}

// search also reports the number of element comparisons performed.
func (m *Matcher[T]) search(text []T) (int, int) {
	patLen := len(m.pattern)
	if patLen == 0 || len(text) < patLen {
		return NotFound, 0
	}

	comparisons := 0
	patIndex := 0
	textIndex := 0 // position in text aligned with pattern[0]
	for textIndex+patIndex < len(text) {
		comparisons++
		if m.pattern[patIndex] == text[textIndex+patIndex] {
			patIndex++
			if patIndex == patLen {
				return textIndex, comparisons
			}
			continue
		}
		if patIndex == 0 {
			textIndex++
			continue
		}
		// Shift the alignment so that the longest border of the matched
		// prefix lines up with the text already consumed.
		textIndex += patIndex - m.table[patIndex]
		patIndex = m.table[patIndex]
	}
	return NotFound, comparisons
}

// Search returns the index of the first occurrence of pattern in text, or
// NotFound when either is empty or there is no occurrence.
func Search[T comparable](pattern, text []T) int {
	m, err := New(pattern)
	if err != nil {
		return NotFound
	}
	return m.Search(text)
}

// BruteForceSearch is the quadratic reference implementation of Search.
func BruteForceSearch[T comparable](pattern, text []T) int {
	m, n := len(pattern), len(text)
	if m == 0 || n == 0 {
		return NotFound
	}
	for k := 0; k+m <= n; k++ {
		found := true
		for i := 0; i < m; i++ {
			if pattern[i] != text[k+i] {
				found = false
				break
			}
		}
		if found {
			return k
		}
	}
	return NotFound
}
