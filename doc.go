// Package textpack is a small text compression and exact matching toolkit.
//
// # Overview
//
// The module has three parts:
//
//   - Package kmp: Knuth-Morris-Pratt exact string matching with a reusable,
//     immutable Matcher and a brute-force reference search.
//   - Package huffman: a static Huffman codec learned from one text, encoding
//     to and decoding from strings of '0' and '1'.
//   - This package: a sliding-window dictionary compressor that emits
//     (offset, length, next symbol) tokens, using kmp to find the longest
//     earlier occurrence of the upcoming text, plus a collision-free binary
//     wire format for token streams.
//
// All positions, offsets and lengths count symbols (Unicode code points), not
// bytes.
//
// # Basic Usage
//
//	c, err := textpack.NewCompressor(textpack.WithWindowSize(64))
//	if err != nil {
//	    return err
//	}
//	tokens := c.Compress("abracadabra")
//	text, err := c.Decompress(tokens)
//
//	// Persist the stream
//	var buf bytes.Buffer
//	_, err = c.Archive("abracadabra").WriteTo(&buf)
//
//	var a textpack.Archive
//	_, err = a.ReadFrom(&buf)
//	text, err = a.Text()
//
// # Performance Characteristics
//
// Compress: O(n × w × m) worst case for n symbols, window w and match length
// m, since each extension of a candidate match runs one linear KMP search over
// the window. Built matchers are cached per compressor.
// Decompress: O(n) in the output size.
//
// # Logging
//
// Packages log through github.com/op/go-logging under the module names
// "textpack" and "textpack/huffman". Only debug-level summaries are emitted;
// configure a leveled backend to silence them.
package textpack
