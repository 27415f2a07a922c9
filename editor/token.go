package editor

import "strings"

// Kind is the class of an input token.
type Kind int

const (
	// None is an unrecognized token. Applying it changes nothing.
	None Kind = iota
	// Digit is one of 0 through 9.
	Digit
	// Operator is one of + - * / ^.
	Operator
	// Point is the decimal point.
	Point
	// Open is an open parenthesis.
	Open
	// Close is a close parenthesis.
	Close
	// Constant is pi or e.
	Constant
	// Func is a function name. Applying it appends the name and an open
	// parenthesis.
	Func
	// Back removes the last character.
	Back
	// Clear empties the expression and the last result.
	Clear
	// Equals evaluates the expression.
	Equals
	// MemClear empties the memory register.
	MemClear
	// MemRecall inserts the memory register into the expression.
	MemRecall
	// MemAdd adds the current value to the memory register.
	MemAdd
	// MemSub subtracts the current value from the memory register.
	MemSub
)

//go:generate stringer -type=Kind -output=kind_string.go

// Token is a single input to the editor.
type Token struct {
	Kind Kind
	// Text is the text the token appends, if any.
	Text string
}

// Operators are the characters that are operator tokens.
const Operators = "+-*/^"

// Functions are the names of the functions the editor accepts.
var Functions = []string{"sin", "cos", "tan", "log", "ln", "sqrt"}

// IsOperator returns whether s is a single operator character.
func IsOperator(s string) bool {
	return len(s) == 1 && strings.Contains(Operators, s)
}

// IsFunction returns whether name is one of Functions.
func IsFunction(name string) bool {
	for _, f := range Functions {
		if f == name {
			return true
		}
	}
	return false
}

// Value classifies a literal value from an on-screen control.
func Value(v string) Token {
	switch {
	case len(v) == 1 && '0' <= v[0] && v[0] <= '9':
		return Token{Kind: Digit, Text: v}
	case IsOperator(v):
		return Token{Kind: Operator, Text: v}
	}
	switch v {
	case ".":
		return Token{Kind: Point, Text: v}
	case "(":
		return Token{Kind: Open, Text: v}
	case ")":
		return Token{Kind: Close, Text: v}
	case "pi", "e":
		return Token{Kind: Constant, Text: v}
	}
	return Token{}
}

// Action classifies a named action. fn is the function name for the func
// action and is ignored otherwise.
func Action(action, fn string) Token {
	switch action {
	case "clear":
		return Token{Kind: Clear}
	case "back":
		return Token{Kind: Back}
	case "equals":
		return Token{Kind: Equals}
	case "func":
		if !IsFunction(fn) {
			return Token{}
		}
		return Token{Kind: Func, Text: fn}
	case "mc":
		return Token{Kind: MemClear}
	case "mr":
		return Token{Kind: MemRecall}
	case "mplus":
		return Token{Kind: MemAdd}
	case "mminus":
		return Token{Kind: MemSub}
	}
	return Token{}
}

// Key classifies the name of a physical key.
func Key(name string) Token {
	switch name {
	case "Enter", "=":
		return Token{Kind: Equals}
	case "Backspace":
		return Token{Kind: Back}
	case "c", "C":
		return Token{Kind: Clear}
	case "pi", "e":
		// Letters other than c are not keys.
		return Token{}
	}
	return Value(name)
}
