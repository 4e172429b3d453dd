package tribles

import "io"
import "fmt"
import "bufio"

// Graph exports the tree as a graphviz dot file to understand any issues.
// Branches are labelled with their depth and key count, leaves with their key.
func (t *Tree) Graph(out io.Writer) (err error) {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "digraph patch_graph { \n")
	t.graph(t.root, w)
	fmt.Fprintf(w, " \n}\n")
	return w.Flush()
}

func (t *Tree) graph(cnode node, w *bufio.Writer) {
	switch node := cnode.(type) {
	case nil:
		return
	case *branch:
		hash := node.hash()
		fmt.Fprintf(w, "node [ fontsize=12 style=filled ]\n{\n")
		fmt.Fprintf(w, "L%x  [ fillcolor=%s label = \"depth %d count %d\"  ];\n", hash, "red", node.depth, node.cnt)
		fmt.Fprintf(w, "}\n")

		rest := node.childset
		for b, ok := rest.Drain(); ok; b, ok = rest.Drain() {
			child := node.children[b]
			fmt.Fprintf(w, "L%x -> L%x [ label = \"%02x\" ];\n", hash, child.hash(), b)
			t.graph(child, w) // descend further
		}
	case *leaf:
		fmt.Fprintf(w, "node [ fontsize=12 style=filled ]\n{\n")
		fmt.Fprintf(w, "L%x  [ fillcolor=%s label = \"%x\"  ];\n", node.h, "green", node.key)
		fmt.Fprintf(w, "}\n")
	default:
		panic("unknown node type, corruption")
	}
}
