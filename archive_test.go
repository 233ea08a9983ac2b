package textpack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
)

func TestArchiveRoundTrip(t *testing.T) {
	c := mustCompressor(t, WithWindowSize(12))
	// Delimiter characters from older text formats must survive untouched.
	text := "a|b]c[d|0|0|]]]|| 世界 a|b]c[d"
	a := c.Archive(text)

	var buf bytes.Buffer
	n, err := a.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo reported %d bytes, buffer has %d", n, buf.Len())
	}

	var loaded Archive
	read, err := loaded.ReadFrom(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if read != n {
		t.Fatalf("ReadFrom consumed %d bytes, want %d", read, n)
	}
	if loaded.WindowSize != 12 || !slices.Equal(loaded.Tokens, a.Tokens) {
		t.Fatalf("loaded archive differs: window %d tokens %v", loaded.WindowSize, loaded.Tokens)
	}
	got, err := loaded.Text()
	if err != nil {
		t.Fatal(err)
	}
	if got != text {
		t.Fatalf("Text() = %q, want %q", got, text)
	}
}

func TestArchiveBinaryMarshaler(t *testing.T) {
	c := mustCompressor(t)
	a := c.Archive("to be or not to be")
	data, err := a.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	var b Archive
	if err := b.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Tokens, b.Tokens) || a.WindowSize != b.WindowSize {
		t.Fatal("UnmarshalBinary did not restore the archive")
	}

	if err := b.UnmarshalBinary(append(data, 0)); !errors.Is(err, ErrInvalidArchive) {
		t.Fatalf("trailing byte: got %v, want ErrInvalidArchive", err)
	}
}

func TestMarshalTokensLayout(t *testing.T) {
	tokens := []Token{Literal('a'), Reference(1, 3, 'b'), {Offset: 2, Length: 2}}
	data, err := MarshalTokens(4, tokens)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte("TPLZ")
	want = binary.LittleEndian.AppendUint16(want, 1)
	want = binary.LittleEndian.AppendUint32(want, 4)
	want = binary.LittleEndian.AppendUint32(want, 3)
	// literal 'a'
	want = append(want, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 'a', 0, 0, 0)
	// reference (1, 3, 'b')
	want = append(want, 1, 1, 1, 0, 0, 0, 3, 0, 0, 0, 'b', 0, 0, 0)
	// reference (2, 2) without trailing symbol
	want = append(want, 1, 0, 2, 0, 0, 0, 2, 0, 0, 0)

	if !bytes.Equal(data, want) {
		t.Fatalf("MarshalTokens:\n got %v\nwant %v", data, want)
	}

	window, got, err := UnmarshalTokens(data)
	if err != nil {
		t.Fatal(err)
	}
	if window != 4 || !slices.Equal(got, tokens) {
		t.Fatalf("UnmarshalTokens = %d, %v", window, got)
	}
}

func TestWriteTokensRejectsInvalid(t *testing.T) {
	cases := []struct {
		name   string
		window int
		tokens []Token
	}{
		{"zero window", 0, nil},
		{"offset beyond window", 2, []Token{Literal('a'), Literal('b'), Literal('c'), Reference(3, 1, 'd')}},
		{"length beyond window", 2, []Token{Literal('a'), Reference(1, 3, 'd')}},
		{"empty token", 2, []Token{{}}},
		{"invalid rune", 2, []Token{Literal(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MarshalTokens(tc.window, tc.tokens); !errors.Is(err, ErrInvalidArchive) {
				t.Fatalf("got %v, want ErrInvalidArchive", err)
			}
		})
	}
}

func TestReadTokensRejectsCorruption(t *testing.T) {
	valid, err := MarshalTokens(4, []Token{Literal('a'), Reference(1, 2, 'b')})
	if err != nil {
		t.Fatal(err)
	}
	const firstToken = archiveHeaderSize
	const secondToken = firstToken + tokenFixedSize + tokenSymbolSize

	mutate := func(fn func(b []byte)) []byte {
		b := append([]byte(nil), valid...)
		fn(b)
		return b
	}

	cases := []struct {
		name string
		data []byte
	}{
		{"bad magic", mutate(func(b []byte) { b[0] = 'X' })},
		{"bad version", mutate(func(b []byte) { b[4] = 9 })},
		{"zero window", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[6:], 0) })},
		{"huge count", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[10:], maxArchiveTokens+1) })},
		{"unknown kind", mutate(func(b []byte) { b[firstToken] = 7 })},
		{"bad symbol flag", mutate(func(b []byte) { b[firstToken+1] = 2 })},
		{"literal with offset", mutate(func(b []byte) { b[firstToken+2] = 1 })},
		{"reference beyond window", mutate(func(b []byte) { b[secondToken+2] = 5 })},
		{"reference without length", mutate(func(b []byte) { b[secondToken+6] = 0 })},
		{"symbol out of range", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[firstToken+10:], 0x110000) })},
		{"surrogate symbol", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[firstToken+10:], 0xD800) })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := UnmarshalTokens(tc.data); !errors.Is(err, ErrInvalidArchive) {
				t.Fatalf("got %v, want ErrInvalidArchive", err)
			}
		})
	}
}

func TestReadTokensTruncated(t *testing.T) {
	valid, err := MarshalTokens(4, []Token{Literal('a'), Reference(1, 2, 'b')})
	if err != nil {
		t.Fatal(err)
	}
	for cut := 1; cut < len(valid); cut++ {
		_, _, err := UnmarshalTokens(valid[:cut])
		if err == nil {
			t.Fatalf("cut at %d: expected error", cut)
		}
		if cut >= archiveHeaderSize && !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("cut at %d: got %v, want io.ErrUnexpectedEOF", cut, err)
		}
	}
}

func TestReadTokensConsecutiveStreams(t *testing.T) {
	c := mustCompressor(t, WithWindowSize(8))
	texts := []string{"first stream first", "second", strings.Repeat("xy", 9)}

	var buf bytes.Buffer
	for _, text := range texts {
		if _, err := c.Archive(text).WriteTo(&buf); err != nil {
			t.Fatal(err)
		}
	}
	for _, want := range texts {
		var a Archive
		if _, err := a.ReadFrom(&buf); err != nil {
			t.Fatal(err)
		}
		got, err := a.Text()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("%d unread bytes", buf.Len())
	}
}
