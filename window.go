package textpack

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/op/go-logging"

	"github.com/seiflotfy/textpack/kmp"
)

var log = logging.MustGetLogger("textpack")

const (
	defaultWindowSize       = 100 // defaultWindowSize is the backward reach of a reference, in symbols
	defaultMatcherCacheSize = 256 // defaultMatcherCacheSize bounds the per-compressor matcher cache
)

var (
	// ErrInvalidWindowSize indicates a negative window size.
	ErrInvalidWindowSize = errors.New("textpack: invalid window size")
	// ErrMalformedToken indicates a token that cannot be decoded.
	ErrMalformedToken = errors.New("textpack: malformed token")
)

// Config holds configuration for the compressor.
type Config struct {
	WindowSize       int // Maximum backward distance of a match (0 = default 100)
	MatcherCacheSize int // Built matchers kept for reuse (0 = default 256, <0 disables)
}

// Option is a functional option for configuring the compressor.
type Option func(*Config)

// WithWindowSize sets the sliding window size in symbols.
func WithWindowSize(n int) Option {
	return func(c *Config) {
		c.WindowSize = n
	}
}

// WithMatcherCacheSize sets how many KMP matchers are cached between match
// attempts. A negative size disables the cache.
func WithMatcherCacheSize(n int) Option {
	return func(c *Config) {
		c.MatcherCacheSize = n
	}
}

func resolveWindowSize(cfg Config) (int, error) {
	switch {
	case cfg.WindowSize < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWindowSize, cfg.WindowSize)
	case cfg.WindowSize == 0:
		return defaultWindowSize, nil
	default:
		return cfg.WindowSize, nil
	}
}

func resolveMatcherCacheSize(cfg Config) int {
	switch {
	case cfg.MatcherCacheSize < 0:
		return 0
	case cfg.MatcherCacheSize == 0:
		return defaultMatcherCacheSize
	default:
		return cfg.MatcherCacheSize
	}
}

// Compressor is a sliding-window dictionary compressor.
//
// Compress and Decompress are safe for concurrent use.
type Compressor struct {
	windowSize int
	matchers   *lru.Cache[string, *kmp.Matcher[rune]] // nil when caching is disabled
}

// NewCompressor creates a compressor with the given options.
func NewCompressor(opts ...Option) (*Compressor, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	windowSize, err := resolveWindowSize(cfg)
	if err != nil {
		return nil, err
	}

	c := &Compressor{windowSize: windowSize}
	if size := resolveMatcherCacheSize(cfg); size > 0 {
		c.matchers, err = lru.New[string, *kmp.Matcher[rune]](size)
		if err != nil {
			return nil, err
		}
	}
	log.Debugf("compressor: window %d, matcher cache %d", windowSize, resolveMatcherCacheSize(cfg))
	return c, nil
}

// WindowSize returns the configured window size.
func (c *Compressor) WindowSize() int {
	return c.windowSize
}

// Compress parses text into a token stream.
//
// At each cursor position the longest prefix of the remaining text that
// occurs entirely inside the trailing window is found, and a token carrying
// its offset, its length and the symbol after it is emitted. The cursor then
// moves past the match and that symbol.
func (c *Compressor) Compress(text string) []Token {
	symbols := []rune(text)
	tokens := make([]Token, 0, len(symbols)/2+1)

	cursor := 0
	for cursor < len(symbols) {
		window := symbols[max(0, cursor-c.windowSize):cursor]
		length, offset := c.longestMatch(symbols, cursor, window)

		tok := Token{Offset: offset, Length: length}
		if cursor+length < len(symbols) {
			tok.Char = symbols[cursor+length]
			tok.HasChar = true
		}
		tokens = append(tokens, tok)
		cursor += length + 1
	}

	if log.IsEnabledFor(logging.DEBUG) {
		log.Debugf("compressed %d symbols into %d tokens", len(symbols), len(tokens))
	}
	return tokens
}

// longestMatch greedily grows the candidate symbols[cursor:cursor+length+1]
// while it still occurs in window. offset is measured from the end of the
// window to the start of the last occurrence found.
func (c *Compressor) longestMatch(symbols []rune, cursor int, window []rune) (length, offset int) {
	for length < len(window) && cursor+length < len(symbols) {
		idx := c.matcher(symbols[cursor : cursor+length+1]).Search(window)
		if idx == kmp.NotFound {
			break
		}
		offset = len(window) - idx
		length++
	}
	return length, offset
}

// matcher returns a KMP matcher for the non-empty pattern, reusing a cached
// one when possible.
func (c *Compressor) matcher(pattern []rune) *kmp.Matcher[rune] {
	var key string
	if c.matchers != nil {
		key = string(pattern)
		if m, ok := c.matchers.Get(key); ok {
			return m
		}
	}

	m, err := kmp.New(pattern)
	if err != nil {
		// Callers never pass an empty pattern.
		panic(err)
	}
	if c.matchers != nil {
		c.matchers.Add(key, m)
	}
	return m
}

// Decompress rebuilds the text from a token stream.
func (c *Compressor) Decompress(tokens []Token) (string, error) {
	return Decompress(tokens)
}

// Decompress rebuilds the text from a token stream.
//
// References are copied one symbol at a time so that a reference whose offset
// is shorter than its length repeats the symbols it has just produced.
func Decompress(tokens []Token) (string, error) {
	out := make([]rune, 0, len(tokens)*2)
	for i, tok := range tokens {
		if err := tok.validate(); err != nil {
			return "", fmt.Errorf("token %d: %w", i, err)
		}
		if tok.Length > 0 {
			if tok.Offset > len(out) {
				return "", fmt.Errorf("%w: token %d reaches back %d symbols, only %d decoded",
					ErrMalformedToken, i, tok.Offset, len(out))
			}
			start := len(out) - tok.Offset
			for j := 0; j < tok.Length; j++ {
				out = append(out, out[start+j])
			}
		}
		if tok.HasChar {
			out = append(out, tok.Char)
		}
	}
	return string(out), nil
}
