package kmp

// NewString builds a rune Matcher for pattern.
func NewString(pattern string) (*Matcher[rune], error) {
	return New([]rune(pattern))
}

// SearchString returns the rune index of the first occurrence of pattern in
// text, or NotFound.
func SearchString(pattern, text string) int {
	return Search([]rune(pattern), []rune(text))
}

// BruteForceSearchString is the rune-indexed form of BruteForceSearch.
func BruteForceSearchString(pattern, text string) int {
	return BruteForceSearch([]rune(pattern), []rune(text))
}
