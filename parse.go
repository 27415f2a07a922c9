package bigcalc

import (
	"io"
	"strings"
)

// Expr = num | const | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | Terms | '(' Expr ')'
// Call = funcname '(' Expr ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr
// Terms = Expr Expr

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(*parsectx)
}

// parsectx holds general data for parsing.
type parsectx struct {
	// funcs is the set of names that parse as functions or constants. It is
	// globalfuncs until an option changes it, after which it is a copy.
	funcs map[string]Func
	// owned indicates funcs is a copy that options may modify.
	owned bool
}

func (p *parsectx) set(name string, fn Func) {
	if !p.owned {
		m := make(map[string]Func, len(p.funcs)+1)
		for k, v := range p.funcs {
			m[k] = v
		}
		p.funcs = m
		p.owned = true
	}
	if fn == nil {
		delete(p.funcs, name)
		return
	}
	p.funcs[name] = fn
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
)

// ParseFunc sets a function for parsing. To disable parsing a function, pass
// nil for fn; its name is then undefined.
func ParseFunc(name string, fn Func) ParseOption {
	return &funcopt{name, fn}
}

func (o *funcopt) parseOption(p *parsectx) {
	p.set(o.name, o.fn)
}

// ParseFuncs sets a group of functions for parsing. To disable parsing any
// function, set it to nil.
func ParseFuncs(fns map[string]Func) ParseOption {
	return funcsopt(fns)
}

func (o funcsopt) parseOption(p *parsectx) {
	for k, v := range o {
		p.set(k, v)
	}
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	p := parsectx{funcs: globalfuncs}
	for _, opt := range opts {
		opt.parseOption(&p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent:
			// (parsed) x -> (parsed) * (x)
			// (parsed) x^(expr) -> (parsed) * (x^(expr))
			// a^(parsed) x -> (a^(parsed)) * (x)
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, missingOperand(scan)
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenOpen:
			// 2 (expr) -> (2) * (expr).
			prec := termprec
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			scan.push(tok)
			rhs, err := parseparens(scan, p)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("bigcalc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, name: tok.text}, nil
	case tokenIdent:
		fn := p.funcs[tok.text]
		if fn == nil {
			return nil, &NameError{Col: tok.pos, Name: tok.text}
		}
		return parsecall(scan, p, fn, tok)
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, missingOperand(scan)
		}
		return &node{kind: prec.op, left: rhs}, nil
	case tokenOpen:
		scan.push(tok)
		return parseparens(scan, p)
	case tokenClose:
		// Let the caller decide what an empty subexpression means.
		scan.push(tok)
		return nil, nil
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("bigcalc: unknown token: " + tok.String())
	}
}

// parsecall parses a use of a function name. Niladic functions are constants
// and take no argument list; others require a parenthesized argument.
func parsecall(scan *lexer, p *parsectx, fn Func, name lexToken) (*node, error) {
	if fn.CanCall(0) {
		return &node{kind: nodeCall, name: name.text, fn: fn}, nil
	}
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOpen {
		return nil, &CallError{Col: tok.pos, Func: name.text}
	}
	if !fn.CanCall(1) {
		return nil, &CallError{Col: tok.pos, Func: name.text, Len: 1}
	}
	scan.push(tok)
	arg, err := parseparens(scan, p)
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeCall, name: name.text, fn: fn, left: arg}, nil
}

// parseparens parses a parenthesized, non-empty subexpression. The next token
// must be the open parenthesis.
func parseparens(scan *lexer, p *parsectx) (*node, error) {
	open, err := scan.next()
	if err != nil {
		return nil, err
	}
	if open.kind != tokenOpen {
		panic("bigcalc: parseparens on " + open.String())
	}
	n, err := parseterm(scan, p, exprprec)
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.kind != tokenClose {
		return nil, itShouldNotHaveEndedThisWay(end, true)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	return n, nil
}

// missingOperand creates the error for an operator with nothing after it.
// The token that ended the operand is pushed.
func missingOperand(scan *lexer) error {
	end := scan.must()
	scan.push(end)
	return &EmptyExpressionError{Col: end.pos, End: end.text}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is whether the subexpression
// started with an open parenthesis.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	left := ""
	if open {
		left = "("
	}
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: left, Right: ""}
	case tokenClose:
		return &BracketError{Col: tok.pos, Left: left, Right: tok.text}
	default:
		panic("bigcalc: it really should not have ended this way: " + tok.String())
	}
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Lower is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the default precedence for parsing terms. Its prec
	// should match that of multiplication.
	termprec = operator{5, true, nodeMul}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
