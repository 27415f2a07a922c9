// Package editor implements the expression editor of a calculator.
//
// An editor State holds the expression being typed, the label of the last
// result, a bounded history of evaluations, and a memory register. Apply
// takes a State and one input Token and returns the next State. Input that
// cannot apply, such as a second decimal point in one number or evaluating
// an incomplete expression, returns the State unchanged.
//
// The editor keeps expressions well-formed as they are typed: it inserts
// multiplication between a value and a following parenthesis, constant, or
// function; it replaces a trailing operator with a new one; and it replaces a
// lone leading zero with the next digit.
package editor
