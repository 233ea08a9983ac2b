package textpack

import (
	"fmt"
	"unicode/utf8"
)

// Token is one unit of a compressed token stream.
//
// A reference copies Length symbols starting Offset symbols back from the end
// of the output decoded so far, then appends Char when HasChar is set. A
// literal is the degenerate reference (0, 0, Char).
type Token struct {
	Offset  int
	Length  int
	Char    rune
	HasChar bool
}

// Literal returns the token that appends r.
func Literal(r rune) Token {
	return Token{Char: r, HasChar: true}
}

// Reference returns a back-reference followed by the symbol r.
func Reference(offset, length int, r rune) Token {
	return Token{Offset: offset, Length: length, Char: r, HasChar: true}
}

// IsLiteral reports whether t appends a single symbol and copies nothing.
func (t Token) IsLiteral() bool {
	return t.Length == 0 && t.Offset == 0 && t.HasChar
}

func (t Token) String() string {
	if !t.HasChar {
		return fmt.Sprintf("(%d,%d)", t.Offset, t.Length)
	}
	return fmt.Sprintf("(%d,%d,%q)", t.Offset, t.Length, t.Char)
}

// validate checks the token on its own, without the decoded output.
func (t Token) validate() error {
	switch {
	case t.Offset < 0 || t.Length < 0:
		return fmt.Errorf("%w: negative field in %v", ErrMalformedToken, t)
	case t.Length == 0 && t.Offset != 0:
		return fmt.Errorf("%w: offset without length in %v", ErrMalformedToken, t)
	case t.Length > 0 && t.Offset == 0:
		return fmt.Errorf("%w: zero offset in %v", ErrMalformedToken, t)
	case t.Length == 0 && !t.HasChar:
		return fmt.Errorf("%w: empty token", ErrMalformedToken)
	case t.HasChar && !utf8.ValidRune(t.Char):
		return fmt.Errorf("%w: invalid symbol %U", ErrMalformedToken, t.Char)
	}
	return nil
}
