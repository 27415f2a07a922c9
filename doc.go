// Package bigcalc implements the arbitrary-precision evaluator behind a
// keypad calculator.
//
// Expressions are what a calculator display shows: numbers, the operators
// + - * / ^, parentheses, the constants pi and e, and the functions sin, cos,
// tan, log, ln and sqrt applied to a parenthesized argument. Trigonometric
// functions take degrees. "2(3)" and "2 pi" are multiplications, "-2^2" is
// "-(2^2)", and "2^3^2" is "2^(3^2)".
//
// Evaluator is the entry point for calculators: it sanitizes its input,
// evaluates it with a generous working precision, and reports either a
// decimal string rounded to a fixed number of significant digits or no
// result at all. Parse and Context expose the lower level pieces.
package bigcalc
