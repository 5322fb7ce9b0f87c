// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Parse bracketed literals ("{1,2,{3,4}}") into freshly allocated arrays.
//
// Grammar (whitespace allowed between tokens):
//
//	value := number | '{' [ value { ',' value } ] '}'
//
// Policy:
//   - Parse checks element counts against the declared shape; ParseAuto
//     infers the shape and rejects ragged literals.
//   - Any failure returns a nil array: there are no partial results.

package ndarray

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	opParse     = "Parse"
	opParseAuto = "ParseAuto"
)

// node is one parsed value: a leaf token or a bracketed list.
type node struct {
	pos  int    // byte offset of the token or opening brace
	tok  string // leaf text; empty for lists
	kids []*node
	list bool
}

// parser is a recursive-descent reader over the literal text.
type parser struct {
	s   string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) && isSpace(p.s[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s: %w", p.pos, fmt.Sprintf(format, args...), ErrFormat)
}

// value parses one value at the current position.
func (p *parser) value() (*node, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return nil, p.errorf("unexpected end of input")
	}
	switch c := p.s[p.pos]; c {
	case _fmtOpen:
		return p.list()
	case _fmtClose, _fmtSep:
		return nil, p.errorf("unexpected %q", c)
	}
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == _fmtOpen || c == _fmtClose || c == _fmtSep || isSpace(c) {
			break
		}
		p.pos++
	}

	return &node{pos: start, tok: p.s[start:p.pos]}, nil
}

// list parses '{' [value {',' value}] '}'.
func (p *parser) list() (*node, error) {
	n := &node{pos: p.pos, list: true}
	p.pos++ // consume '{'
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == _fmtClose {
		p.pos++
		return n, nil
	}
	for {
		kid, err := p.value()
		if err != nil {
			return nil, err
		}
		n.kids = append(n.kids, kid)
		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, p.errorf("unclosed %q opened at offset %d", _fmtOpen, n.pos)
		}
		switch p.s[p.pos] {
		case _fmtSep:
			p.pos++
		case _fmtClose:
			p.pos++
			return n, nil
		default:
			return nil, p.errorf("expected %q or %q", _fmtSep, _fmtClose)
		}
	}
}

// parseTree parses the whole literal; trailing non-space text is an error.
func parseTree(s string) (*node, error) {
	p := &parser{s: s}
	root, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, p.errorf("trailing text %q", p.s[p.pos:])
	}

	return root, nil
}

// Parse reads a literal into a new array of the declared shape. Every list
// at depth d must hold exactly shape[d] entries and leaves must sit at depth
// len(shape). An empty shape expects a bare number.
//
// Errors:
//   - ErrBadShape for negative extents.
//   - ErrFormat for malformed brackets, count mismatches and non-numeric or
//     out-of-range tokens; the array is not returned on failure.
func Parse[T Numeric](s string, shape ...int) (*Array[T], error) {
	if err := validateShape(shape); err != nil {
		return nil, ndErrorf(opParse, err)
	}
	root, err := parseTree(s)
	if err != nil {
		return nil, ndErrorf(opParse, err)
	}
	out := newUnchecked[T](shape)
	if err = fill(root, out, 0, new(int)); err != nil {
		return nil, ndErrorf(opParse, err)
	}

	return out, nil
}

// ParseAuto reads a literal whose shape is inferred from the first entry at
// each depth.
//
// Errors:
//   - ErrFormat for malformed text or bad tokens.
//   - ErrRagged when sibling lists differ in length or depth.
func ParseAuto[T Numeric](s string) (*Array[T], error) {
	root, err := parseTree(s)
	if err != nil {
		return nil, ndErrorf(opParseAuto, err)
	}
	var shape []int
	for n := root; n.list; n = n.kids[0] {
		shape = append(shape, len(n.kids))
		if len(n.kids) == 0 {
			break
		}
	}
	if err = checkRect(root, shape, 0); err != nil {
		return nil, ndErrorf(opParseAuto, err)
	}
	out := newUnchecked[T](shape)
	if err = fill(root, out, 0, new(int)); err != nil {
		return nil, ndErrorf(opParseAuto, err)
	}

	return out, nil
}

// checkRect verifies that every list at depth d has shape[d] entries and
// that leaves appear only at depth len(shape).
func checkRect(n *node, shape []int, d int) error {
	if d == len(shape) {
		if n.list {
			return fmt.Errorf("offset %d: list below leaf depth %d: %w", n.pos, d, ErrRagged)
		}
		return nil
	}
	if !n.list || len(n.kids) != shape[d] {
		return fmt.Errorf("offset %d: axis %d: %w", n.pos, d, ErrRagged)
	}
	for _, k := range n.kids {
		if err := checkRect(k, shape, d+1); err != nil {
			return err
		}
	}

	return nil
}

// fill writes the leaves of n into out in row-major order, checking counts
// against out's shape.
func fill[T Numeric](n *node, out *Array[T], d int, pos *int) error {
	if d == len(out.shape) {
		if n.list {
			return fmt.Errorf("offset %d: list where a number is expected: %w", n.pos, ErrFormat)
		}
		v, err := parseScalar[T](n.tok, out.Kind())
		if err != nil {
			return fmt.Errorf("offset %d: %w", n.pos, err)
		}
		out.data[*pos] = v
		*pos++
		return nil
	}
	if !n.list {
		return fmt.Errorf("offset %d: number where a list of %d is expected: %w", n.pos, out.shape[d], ErrFormat)
	}
	if len(n.kids) != out.shape[d] {
		return fmt.Errorf("offset %d: axis %d has %d entries, want %d: %w", n.pos, d, len(n.kids), out.shape[d], ErrFormat)
	}
	for _, k := range n.kids {
		if err := fill(k, out, d+1, pos); err != nil {
			return err
		}
	}

	return nil
}

// parseScalar converts one token into the element kind.
func parseScalar[T Numeric](tok string, kind Kind) (T, error) {
	var zero T
	switch {
	case kind.IsFloat():
		f, err := strconv.ParseFloat(tok, kind.Bits())
		if err != nil {
			return zero, fmt.Errorf("%q: %v: %w", tok, numErr(err), ErrFormat)
		}
		return T(f), nil
	case kind.IsSigned():
		i, err := strconv.ParseInt(tok, 10, kind.Bits())
		if err != nil {
			return zero, fmt.Errorf("%q: %v: %w", tok, numErr(err), ErrFormat)
		}
		return T(i), nil
	default:
		u, err := strconv.ParseUint(tok, 10, kind.Bits())
		if err != nil {
			return zero, fmt.Errorf("%q: %v: %w", tok, numErr(err), ErrFormat)
		}
		return T(u), nil
	}
}

// numErr reduces a *strconv.NumError to its reason.
func numErr(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}

	return err
}

// Literal strips insignificant whitespace from a literal so it compares
// equal to Format output.
func Literal(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && isSpace(byte(r)) {
			return -1
		}
		return r
	}, s)
}
