package huffman

import "strings"

// CodeTable maps each symbol to its codeword, a string of '0' and '1'.
type CodeTable map[rune]string

// GenerateCodes assigns a codeword to every leaf of t: '0' for each left
// descent and '1' for each right descent. A tree whose root is a leaf gives
// that symbol the one-bit code "0".
func GenerateCodes(t *Tree) CodeTable {
	codes := make(CodeTable, t.Leaves())
	if t.root == nil {
		return codes
	}
	if t.root.leaf() {
		codes[t.root.symbol] = "0"
		return codes
	}

	type frame struct {
		n      *node
		prefix string
	}
	stack := []frame{{t.root, ""}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.leaf() {
			codes[f.n.symbol] = f.prefix
			continue
		}
		stack = append(stack,
			frame{f.n.right, f.prefix + "1"},
			frame{f.n.left, f.prefix + "0"},
		)
	}
	return codes
}

// PrefixFree reports whether no codeword is a prefix of another.
func (ct CodeTable) PrefixFree() bool {
	for a, ca := range ct {
		for b, cb := range ct {
			if a != b && strings.HasPrefix(cb, ca) {
				return false
			}
		}
	}
	return true
}

// Clone returns a copy of ct.
func (ct CodeTable) Clone() CodeTable {
	out := make(CodeTable, len(ct))
	for r, c := range ct {
		out[r] = c
	}
	return out
}
