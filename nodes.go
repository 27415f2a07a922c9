package bigcalc

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	name string
	fn   Func

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push num
	nodeCall // name is Func to call, left is the argument unless niladic

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
	nodeNop // evaluate left
)

//go:generate stringer -type=nodeKind -trimprefix=node -output=nodekind_string.go

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes n fully bracketed, alternating round and square brackets with
// depth so that the grouping is visible.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, !square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, !square)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		if n.left != nil {
			n.left.fmt(b, !square)
		}
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b, !square)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(opsyms[n.kind])
		b.WriteByte(' ')
		n.right.fmt(b, !square)
	default:
		panic("bigcalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

var opsyms = [...]string{
	nodeAdd: "+",
	nodeSub: "-",
	nodeMul: "*",
	nodeDiv: "/",
	nodePow: "^",
}
