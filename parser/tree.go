// Package parser implements the LALR(1) shift/reduce/goto/accept driver
// (§4.G) and its observer hooks (§4.H).
package parser

import (
	"fmt"
	"io"

	"github.com/cgtkit/goldrun/grammar"
	"github.com/cgtkit/goldrun/lexer"
)

// Tree is a parse tree node (§3, "Parse tree node"). A leaf carries the
// token it was shifted from; an inner node carries its children. Start/End
// are byte offsets; an inner node's span equals
// [Children[0].Start, Children[len(Children)-1].End], except for a node
// reduced from an epsilon rule, which has no children and an empty span at
// the End of the frame below it.
type Tree struct {
	Symbol   *grammar.Symbol
	Token    *lexer.Token // non-nil iff this is a leaf
	Children []*Tree
	Start    int
	End      int
}

// IsLeaf reports whether this node was shifted directly from a token.
func (t *Tree) IsLeaf() bool {
	return t.Token != nil
}

// PrintTree renders t as an indented ASCII tree, one symbol per line.
func PrintTree(w io.Writer, t *Tree) {
	printTree(w, t, "", "")
}

func printTree(w io.Writer, node *Tree, ruledLine, childPrefix string) {
	if node == nil {
		return
	}
	if node.IsLeaf() {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.Symbol.Mangled(), node.Token.Value)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.Symbol.Mangled())
	}

	num := len(node.Children)
	for i, child := range node.Children {
		line := "├─ "
		prefix := "│  "
		if i == num-1 {
			line = "└─ "
			prefix = "   "
		}
		printTree(w, child, childPrefix+line, childPrefix+prefix)
	}
}
