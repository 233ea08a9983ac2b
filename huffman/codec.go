// Package huffman implements a static Huffman codec over text symbols.
//
// A Codec learns symbol frequencies from one text, builds a deterministic
// Huffman tree and code table, and then encodes texts over the same alphabet
// into bit strings of '0' and '1' and decodes them back.
package huffman

import (
	"errors"
	"fmt"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("textpack/huffman")

var (
	// ErrEmptyInput indicates an operation that needs at least one symbol on a
	// codec built from empty text.
	ErrEmptyInput = errors.New("huffman: codec has no symbols")
	// ErrUnknownSymbol indicates a symbol that was not present when the codec
	// was built.
	ErrUnknownSymbol = errors.New("huffman: unknown symbol")
	// ErrMalformedEncoding indicates a bit string that cannot be walked
	// through the tree.
	ErrMalformedEncoding = errors.New("huffman: malformed encoding")
)

// Codec encodes and decodes with a fixed Huffman code. It is immutable after
// New returns and is safe for concurrent use.
type Codec struct {
	freq  *FrequencyTable
	tree  *Tree
	codes CodeTable
}

// New builds a Codec from the symbol frequencies of text. An empty text gives
// a codec with an empty code table.
func New(text string) *Codec {
	return NewFromFrequencies(Count(text))
}

// NewFromFrequencies builds a Codec from an existing frequency table.
func NewFromFrequencies(freq *FrequencyTable) *Codec {
	tree := BuildTree(freq)
	codes := GenerateCodes(tree)
	log.Debugf("built code table: %d symbols, %d occurrences, depth %d",
		tree.Leaves(), tree.Weight(), tree.Depth())
	return &Codec{freq: freq, tree: tree, codes: codes}
}

// Encode returns the concatenated codewords of the symbols of text.
func (c *Codec) Encode(text string) (string, error) {
	var sb strings.Builder
	pos := 0
	for _, r := range text {
		code, ok := c.codes[r]
		if !ok {
			return "", fmt.Errorf("%w %q at position %d", ErrUnknownSymbol, r, pos)
		}
		sb.WriteString(code)
		pos++
	}
	return sb.String(), nil
}

// EncodedLen returns the number of bits Encode would produce for text.
func (c *Codec) EncodedLen(text string) (int, error) {
	n := 0
	pos := 0
	for _, r := range text {
		code, ok := c.codes[r]
		if !ok {
			return 0, fmt.Errorf("%w %q at position %d", ErrUnknownSymbol, r, pos)
		}
		n += len(code)
		pos++
	}
	return n, nil
}

// Decode walks bits through the tree and returns the decoded symbols.
//
// Bits left over after the last complete codeword are discarded. A single
// symbol codec accepts only '0' bits, each decoding to that symbol.
func (c *Codec) Decode(bits string) (string, error) {
	if len(bits) == 0 {
		return "", nil
	}
	root := c.tree.root
	if root == nil {
		return "", ErrEmptyInput
	}

	var sb strings.Builder
	if root.leaf() {
		for i := 0; i < len(bits); i++ {
			switch bits[i] {
			case '0':
				sb.WriteRune(root.symbol)
			case '1':
				return "", fmt.Errorf("%w: bit 1 at position %d descends from a leaf", ErrMalformedEncoding, i)
			default:
				return "", fmt.Errorf("%w: invalid bit %q at position %d", ErrMalformedEncoding, bits[i], i)
			}
		}
		return sb.String(), nil
	}

	cur := root
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			cur = cur.left
		case '1':
			cur = cur.right
		default:
			return "", fmt.Errorf("%w: invalid bit %q at position %d", ErrMalformedEncoding, bits[i], i)
		}
		if cur.leaf() {
			sb.WriteRune(cur.symbol)
			cur = root
		}
	}
	if cur != root && log.IsEnabledFor(logging.DEBUG) {
		log.Debugf("discarding partial codeword at end of %d bits", len(bits))
	}
	return sb.String(), nil
}

// Codes returns a copy of the code table.
func (c *Codec) Codes() CodeTable {
	return c.codes.Clone()
}

// Frequencies returns the frequency table the codec was built from.
func (c *Codec) Frequencies() *FrequencyTable {
	return c.freq
}

// Tree returns the codec's Huffman tree.
func (c *Codec) Tree() *Tree {
	return c.tree
}

// String lists symbol, frequency and codeword for each symbol in first-seen
// order.
func (c *Codec) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "huffman: %d symbols, %d occurrences\n", c.freq.Len(), c.freq.Total())
	c.freq.Each(func(r rune, n int) {
		fmt.Fprintf(&sb, "%q\t%d\t%s\n", r, n, c.codes[r])
	})
	return sb.String()
}
