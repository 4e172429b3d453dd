package tribles

// Iterator traverses all key/value pairs of a tree in tree order, which is the
// lexicographic order of the keys read through the layout's ordering.
// Iterators can be obtained from a tree and stay valid as long as the tree
// does, which is forever. Keys and values returned must not be modified.
type Iterator struct {
	tree *Tree

	node_path []*branch
	index     []byte // child taken at each branch of node_path
}

// Iterator returns an iterator which is used to traverse over all key/value pairs in a tree.
func (t *Tree) Iterator() Iterator {
	return Iterator{tree: t}
}

// First moves the iterator to the first item in the tree and returns its key and value. If the tree is empty then an error is returned.
func (c *Iterator) First() (k, v []byte, err error) {
	c.node_path, c.index = c.node_path[:0], c.index[:0]
	return c.descend(c.tree.root, false)
}

// Last moves the iterator to the last item in the tree and returns its key and value. If the tree is empty then an error is returned.
func (c *Iterator) Last() (k, v []byte, err error) {
	c.node_path, c.index = c.node_path[:0], c.index[:0]
	return c.descend(c.tree.root, true)
}

// this function will descend and reach the first or last leaf below loop_node
func (c *Iterator) descend(loop_node node, reverse bool) (k, v []byte, err error) {
	for {
		switch node := loop_node.(type) {
		case nil: // only an empty tree has a nil root
			err = ErrNoMoreKeys
			return
		case *branch:
			var b byte
			if reverse {
				b, _ = node.childset.Prev(255)
			} else {
				b, _ = node.childset.Next(0)
			}
			c.node_path = append(c.node_path, node)
			c.index = append(c.index, b)
			loop_node = node.children[b]
		case *leaf:
			return node.key, node.value, nil
		default:
			panic("unknown node type")
		}
	}
}

// Next moves the iterator to the next item in the tree and returns its key and value. If the iterator is at the end of the tree, then an error is returned.
func (c *Iterator) Next() (k, v []byte, err error) {
	for len(c.node_path) > 0 {
		cur_node_index := len(c.node_path) - 1
		br := c.node_path[cur_node_index]
		if b, ok := br.childset.Next(int(c.index[cur_node_index]) + 1); ok {
			c.index[cur_node_index] = b
			return c.descend(br.children[b], false)
		}
		// all children visited, back track one node
		c.node_path, c.index = c.node_path[:cur_node_index], c.index[:cur_node_index]
	}
	err = ErrNoMoreKeys
	return
}

// Prev moves the iterator to the previous item in the tree and returns its key and value. If the iterator is at the start of the tree, then an error is returned.
func (c *Iterator) Prev() (k, v []byte, err error) {
	for len(c.node_path) > 0 {
		cur_node_index := len(c.node_path) - 1
		br := c.node_path[cur_node_index]
		if b, ok := br.childset.Prev(int(c.index[cur_node_index]) - 1); ok {
			c.index[cur_node_index] = b
			return c.descend(br.children[b], true)
		}
		c.node_path, c.index = c.node_path[:cur_node_index], c.index[:cur_node_index]
	}
	err = ErrNoMoreKeys
	return
}

// Entries calls fn for every key/value pair in tree order until fn returns false.
func (t *Tree) Entries(fn func(k, v []byte) bool) {
	walkEntries(t.root, fn)
}

func walkEntries(n node, fn func(k, v []byte) bool) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *leaf:
		return fn(v.key, v.value)
	case *branch:
		rest := v.childset
		for b, ok := rest.Drain(); ok; b, ok = rest.Drain() {
			if !walkEntries(v.children[b], fn) {
				return false
			}
		}
		return true
	default:
		panic("unknown node type")
	}
}

// Keys lists all keys in tree order.
func (t *Tree) Keys() [][]byte {
	keys := make([][]byte, 0, t.Count())
	t.Entries(func(k, _ []byte) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values lists all values in tree order.
func (t *Tree) Values() [][]byte {
	values := make([][]byte, 0, t.Count())
	t.Entries(func(_, v []byte) bool {
		values = append(values, v)
		return true
	})
	return values
}
