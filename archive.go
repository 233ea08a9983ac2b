package textpack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

const (
	archiveMagic   = "TPLZ"
	archiveVersion = uint16(1)

	tokenKindLiteral   = uint8(0)
	tokenKindReference = uint8(1)

	archiveHeaderSize = 4 + 2 + 4 + 4 // magic, version, window, count
	tokenFixedSize    = 1 + 1 + 4 + 4 // kind, hasChar, offset, length
	tokenSymbolSize   = 4

	maxArchiveTokens = 1 << 28
)

// ErrInvalidArchive indicates a token stream that does not follow the wire format.
var ErrInvalidArchive = errors.New("textpack: invalid archive")

// Wire format (version 1), all integers little-endian:
//
//	magic[4] = "TPLZ"
//	version  = uint16
//	window   = uint32 window size the stream was produced with
//	count    = uint32 number of tokens
//	repeat count times:
//	  kind    = uint8  (0 literal, 1 reference)
//	  hasChar = uint8  (0 or 1)
//	  offset  = uint32
//	  length  = uint32
//	  symbol  = uint32 code point, present only when hasChar == 1
//
// A literal has offset and length zero and always carries a symbol. A
// reference has 0 < offset <= window and 0 < length <= window.

// Archive is a token stream together with the window size that produced it.
type Archive struct {
	WindowSize int
	Tokens     []Token
}

// Archive compresses text into an Archive.
func (c *Compressor) Archive(text string) *Archive {
	return &Archive{WindowSize: c.windowSize, Tokens: c.Compress(text)}
}

// Text decompresses the archive.
func (a *Archive) Text() (string, error) {
	return Decompress(a.Tokens)
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

func checkWindow(window int) error {
	if window < 1 || uint64(window) > math.MaxUint32 {
		return fmt.Errorf("%w: window size %d", ErrInvalidArchive, window)
	}
	return nil
}

// checkToken applies the wire-format rules to a single token.
func checkToken(window int, t Token) error {
	if err := t.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	if t.Length > 0 && (t.Offset > window || t.Length > window) {
		return fmt.Errorf("%w: reference %v exceeds window %d", ErrInvalidArchive, t, window)
	}
	return nil
}

func appendToken(dst []byte, t Token) []byte {
	kind := tokenKindReference
	if t.Length == 0 {
		kind = tokenKindLiteral
	}
	var hasChar uint8
	if t.HasChar {
		hasChar = 1
	}
	dst = append(dst, kind, hasChar)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(t.Offset))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(t.Length))
	if t.HasChar {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(t.Char))
	}
	return dst
}

// WriteTokens writes the token stream in wire format and returns the number of
// bytes written.
func WriteTokens(w io.Writer, window int, tokens []Token) (int64, error) {
	if err := checkWindow(window); err != nil {
		return 0, err
	}
	if len(tokens) > maxArchiveTokens {
		return 0, fmt.Errorf("%w: %d tokens", ErrInvalidArchive, len(tokens))
	}

	header := make([]byte, 0, archiveHeaderSize)
	header = append(header, archiveMagic...)
	header = binary.LittleEndian.AppendUint16(header, archiveVersion)
	header = binary.LittleEndian.AppendUint32(header, uint32(window))
	header = binary.LittleEndian.AppendUint32(header, uint32(len(tokens)))

	total, err := writeBytes(w, header)
	if err != nil {
		return total, err
	}

	buf := make([]byte, 0, tokenFixedSize+tokenSymbolSize)
	for i, t := range tokens {
		if err := checkToken(window, t); err != nil {
			return total, fmt.Errorf("token %d: %w", i, err)
		}
		n, err := writeBytes(w, appendToken(buf[:0], t))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadTokens reads one token stream and returns its window size, its tokens
// and the number of bytes consumed.
func ReadTokens(r io.Reader) (int, []Token, int64, error) {
	var total int64
	header := make([]byte, archiveHeaderSize)
	n, err := io.ReadFull(r, header)
	total += int64(n)
	if err != nil {
		return 0, nil, total, err
	}
	if string(header[:4]) != archiveMagic {
		return 0, nil, total, fmt.Errorf("%w: bad magic %q", ErrInvalidArchive, header[:4])
	}
	if v := binary.LittleEndian.Uint16(header[4:6]); v != archiveVersion {
		return 0, nil, total, fmt.Errorf("%w: unsupported version %d", ErrInvalidArchive, v)
	}
	window := int(binary.LittleEndian.Uint32(header[6:10]))
	if err := checkWindow(window); err != nil {
		return 0, nil, total, err
	}
	count := binary.LittleEndian.Uint32(header[10:14])
	if count > maxArchiveTokens {
		return 0, nil, total, fmt.Errorf("%w: token count %d too large", ErrInvalidArchive, count)
	}

	tokens := make([]Token, 0, min(int(count), 1<<16))
	fixed := make([]byte, tokenFixedSize)
	symbol := make([]byte, tokenSymbolSize)
	for i := uint32(0); i < count; i++ {
		n, err := io.ReadFull(r, fixed)
		total += int64(n)
		if err != nil {
			return 0, nil, total, fmt.Errorf("token %d: %w", i, noEOF(err))
		}

		kind, hasChar := fixed[0], fixed[1]
		if kind != tokenKindLiteral && kind != tokenKindReference {
			return 0, nil, total, fmt.Errorf("%w: token %d has unknown kind %d", ErrInvalidArchive, i, kind)
		}
		if hasChar > 1 {
			return 0, nil, total, fmt.Errorf("%w: token %d has invalid symbol flag %d", ErrInvalidArchive, i, hasChar)
		}

		offset := binary.LittleEndian.Uint32(fixed[2:6])
		length := binary.LittleEndian.Uint32(fixed[6:10])
		if uint64(offset) > uint64(window) || uint64(length) > uint64(window) {
			return 0, nil, total, fmt.Errorf("%w: token %d exceeds window %d", ErrInvalidArchive, i, window)
		}
		t := Token{Offset: int(offset), Length: int(length), HasChar: hasChar == 1}
		if kind == tokenKindLiteral && (t.Length != 0 || t.Offset != 0 || !t.HasChar) {
			return 0, nil, total, fmt.Errorf("%w: token %d is not a valid literal", ErrInvalidArchive, i)
		}
		if kind == tokenKindReference && t.Length == 0 {
			return 0, nil, total, fmt.Errorf("%w: token %d is a reference without length", ErrInvalidArchive, i)
		}

		if t.HasChar {
			n, err := io.ReadFull(r, symbol)
			total += int64(n)
			if err != nil {
				return 0, nil, total, fmt.Errorf("token %d: %w", i, noEOF(err))
			}
			cp := binary.LittleEndian.Uint32(symbol)
			if cp > utf8.MaxRune {
				return 0, nil, total, fmt.Errorf("%w: token %d has invalid symbol %#x", ErrInvalidArchive, i, cp)
			}
			t.Char = rune(cp)
		}

		if err := checkToken(window, t); err != nil {
			return 0, nil, total, fmt.Errorf("token %d: %w", i, err)
		}
		tokens = append(tokens, t)
	}
	return window, tokens, total, nil
}

// noEOF reports a stream that ends inside a token as truncated.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// MarshalTokens encodes a token stream in wire format.
func MarshalTokens(window int, tokens []Token) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(archiveHeaderSize + len(tokens)*(tokenFixedSize+tokenSymbolSize))
	if _, err := WriteTokens(&buf, window, tokens); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalTokens decodes a token stream. Trailing bytes are an error.
func UnmarshalTokens(b []byte) (int, []Token, error) {
	r := bytes.NewReader(b)
	window, tokens, _, err := ReadTokens(r)
	if err != nil {
		return 0, nil, err
	}
	if r.Len() != 0 {
		return 0, nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidArchive, r.Len())
	}
	return window, tokens, nil
}

// WriteTo writes the archive in wire format.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	return WriteTokens(w, a.WindowSize, a.Tokens)
}

// ReadFrom replaces the archive with one read from r.
func (a *Archive) ReadFrom(r io.Reader) (int64, error) {
	window, tokens, n, err := ReadTokens(r)
	if err != nil {
		return n, err
	}
	a.WindowSize = window
	a.Tokens = tokens
	return n, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *Archive) MarshalBinary() ([]byte, error) {
	return MarshalTokens(a.WindowSize, a.Tokens)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *Archive) UnmarshalBinary(b []byte) error {
	window, tokens, err := UnmarshalTokens(b)
	if err != nil {
		return err
	}
	a.WindowSize = window
	a.Tokens = tokens
	return nil
}
