package huffman

import "fmt"

// FrequencyTable maps each distinct symbol of a text to its occurrence count.
// It is immutable once built.
type FrequencyTable struct {
	counts map[rune]int
	order  []rune // first-seen order, used as the tree tie-break
	total  int
}

// Count builds the frequency table of text. An empty text gives an empty table.
func Count(text string) *FrequencyTable {
	ft := &FrequencyTable{counts: make(map[rune]int)}
	for _, r := range text {
		if _, ok := ft.counts[r]; !ok {
			ft.order = append(ft.order, r)
		}
		ft.counts[r]++
		ft.total++
	}
	return ft
}

// NewFrequencyTable builds a table from parallel symbol and count slices. The
// slice order is taken as first-seen order. Symbols with a zero count are
// dropped.
func NewFrequencyTable(symbols []rune, counts []int) (*FrequencyTable, error) {
	if len(symbols) != len(counts) {
		return nil, fmt.Errorf("huffman: %d symbols but %d counts", len(symbols), len(counts))
	}
	ft := &FrequencyTable{counts: make(map[rune]int, len(symbols))}
	seen := make(map[rune]struct{}, len(symbols))
	for i, r := range symbols {
		if _, dup := seen[r]; dup {
			return nil, fmt.Errorf("huffman: duplicate symbol %q", r)
		}
		seen[r] = struct{}{}
		n := counts[i]
		if n < 0 {
			return nil, fmt.Errorf("huffman: negative count %d for symbol %q", n, r)
		}
		if n == 0 {
			continue
		}
		ft.counts[r] = n
		ft.order = append(ft.order, r)
		ft.total += n
	}
	return ft, nil
}

// Len returns the number of distinct symbols.
func (ft *FrequencyTable) Len() int {
	return len(ft.order)
}

// Count returns the number of occurrences of r.
func (ft *FrequencyTable) Count(r rune) int {
	return ft.counts[r]
}

// Total returns the number of symbols counted.
func (ft *FrequencyTable) Total() int {
	return ft.total
}

// Symbols returns the distinct symbols in first-seen order.
func (ft *FrequencyTable) Symbols() []rune {
	return append([]rune(nil), ft.order...)
}

// Each calls fn for every symbol in first-seen order.
func (ft *FrequencyTable) Each(fn func(r rune, n int)) {
	for _, r := range ft.order {
		fn(r, ft.counts[r])
	}
}
