// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Render arrays as bracketed, comma-separated literals: "{1,2,{3,4}}"
//     style, one brace level per axis, no whitespace. Parse reads the same
//     grammar back.

package ndarray

import (
	"strconv"
	"strings"
)

// ---------- Formatting literals ----------
const (
	_fmtOpen  = '{'
	_fmtClose = '}'
	_fmtSep   = ','
)

// Format renders a as a bracketed literal. A scalar renders as its bare
// value; a nil array renders as the empty string.
// WithPrecision(n) prints floats with n decimals; the default prints the
// shortest representation that parses back to the same value.
// Complexity: O(n).
func Format[T Numeric](a *Array[T], opts ...Option) string {
	if a == nil {
		return ""
	}
	o := gatherOptions(opts...)
	kind := a.Kind()
	var b strings.Builder
	if len(a.shape) == 0 {
		appendValue(&b, a.data[0], kind, o.precision)
		return b.String()
	}
	formatAxis(&b, a, 0, 0, kind, o.precision)

	return b.String()
}

// formatAxis writes axis d of a starting at flat offset off.
func formatAxis[T Numeric](b *strings.Builder, a *Array[T], d, off int, kind Kind, prec int) {
	b.WriteByte(_fmtOpen)
	last := d == len(a.shape)-1
	for i := 0; i < a.shape[d]; i++ {
		if i > 0 {
			b.WriteByte(_fmtSep)
		}
		if last {
			appendValue(b, a.data[off+i], kind, prec)
			continue
		}
		formatAxis(b, a, d+1, off+i*a.strides[d], kind, prec)
	}
	b.WriteByte(_fmtClose)
}

// appendValue writes one element in the formatting of its kind.
func appendValue[T Numeric](b *strings.Builder, v T, kind Kind, prec int) {
	var buf [64]byte
	switch {
	case kind.IsFloat() && prec < 0:
		b.Write(strconv.AppendFloat(buf[:0], float64(v), 'g', -1, kind.Bits()))
	case kind.IsFloat():
		b.Write(strconv.AppendFloat(buf[:0], float64(v), 'f', prec, kind.Bits()))
	case kind.IsSigned():
		b.Write(strconv.AppendInt(buf[:0], int64(v), 10))
	default:
		b.Write(strconv.AppendUint(buf[:0], uint64(v), 10))
	}
}
