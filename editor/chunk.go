package editor

import "strings"

// TrimOperators removes all trailing operators from expr.
func TrimOperators(expr string) string {
	return strings.TrimRight(expr, Operators)
}

// digitChunk returns the part of expr after the last + - * or /. Powers and
// parentheses do not split digit chunks, so "2^0" is a single chunk.
func digitChunk(expr string) string {
	return expr[strings.LastIndexAny(expr, "+-*/")+1:]
}

// pointChunk returns the part of expr after the last operator or parenthesis.
func pointChunk(expr string) string {
	return expr[strings.LastIndexAny(expr, "+-*/^()")+1:]
}

// wantsImplicitMul returns whether a value appended to expr must be preceded
// by a multiplication, i.e. whether expr ends in a digit, a close
// parenthesis, or a letter.
func wantsImplicitMul(expr string) bool {
	if expr == "" {
		return false
	}
	c := expr[len(expr)-1]
	switch {
	case '0' <= c && c <= '9', c == ')':
		return true
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		return true
	}
	return false
}

// implicitMul returns expr followed by * if wantsImplicitMul(expr).
func implicitMul(expr string) string {
	if wantsImplicitMul(expr) {
		return expr + "*"
	}
	return expr
}
