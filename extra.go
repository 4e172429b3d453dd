package tribles

import "math/rand/v2"

// Random returns a uniformly chosen key,value from the tree, provided the tree
// has keys. Every branch knows how many keys are below each child, so a single
// descent is enough.
func (t *Tree) Random() (k, v []byte, err error) {
	return t.random(rand.Uint64N)
}

func (t *Tree) random(pick func(uint64) uint64) (k, v []byte, err error) {
	if t.root == nil {
		err = ErrNoMoreKeys
		return
	}
	cnode := t.root
	target := pick(t.root.count())
	for {
		switch node := cnode.(type) {
		case *branch:
			rest := node.childset
			for b, ok := rest.Drain(); ok; b, ok = rest.Drain() {
				child := node.children[b]
				if c := child.count(); target >= c {
					target -= c
					continue
				}
				cnode = child
				break
			}
		case *leaf:
			return node.key, node.value, nil
		default:
			panic("unknown node type, corruption")
		}
	}
}
