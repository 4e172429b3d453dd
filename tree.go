package tribles

import "bytes"
import "golang.org/x/xerrors"

// Tree is a persistent adaptive trie (PATCH) over fixed length keys.
//
// A Tree value never changes. Put, Delete and the set operations return new
// trees which share every untouched node with their inputs, so keeping old
// versions around is cheap and they stay valid forever. Bulk changes should go
// through a Batch, which mutates the nodes it created in place.
type Tree struct {
	layout *Layout
	root   node
}

// NewTree returns an empty tree.
func NewTree(layout *Layout) *Tree {
	return &Tree{layout: layout}
}

// Layout of the tree.
func (t *Tree) Layout() *Layout { return t.layout }

func (t *Tree) checkKey(key []byte) error {
	if len(key) != t.layout.keylen {
		return xerrors.Errorf("%w: %d bytes, expected %d", ErrKeyLength, len(key), t.layout.keylen)
	}
	return nil
}

// Put returns a tree which maps key to value. If the key exists its value is
// replaced, the receiver is left untouched either way.
func (t *Tree) Put(key, value []byte) (*Tree, error) {
	if err := t.checkKey(key); err != nil {
		return nil, err
	}
	root := t.layout.put(nil, t.root, 0, newLeaf(t.layout, key, value))
	if root == t.root {
		return t, nil
	}
	return &Tree{layout: t.layout, root: root}, nil
}

// Delete returns a tree without key.
func (t *Tree) Delete(key []byte) (*Tree, error) {
	if err := t.checkKey(key); err != nil {
		return nil, err
	}
	root := t.layout.remove(nil, t.root, 0, key)
	if root == t.root {
		return t, nil
	}
	return &Tree{layout: t.layout, root: root}, nil
}

// Get a specific value associated with a key.
func (t *Tree) Get(key []byte) ([]byte, error) {
	if err := t.checkKey(key); err != nil {
		return nil, err
	}
	if l := t.lookup(key); l != nil {
		return l.value, nil
	}
	return nil, xerrors.Errorf("%w: key %x", ErrNotFound, key)
}

// Has reports whether key is in the tree, keys of the wrong length never are.
func (t *Tree) Has(key []byte) bool {
	return len(key) == t.layout.keylen && t.lookup(key) != nil
}

func (t *Tree) lookup(key []byte) *leaf {
	n, depth := t.root, 0
	for n != nil {
		end := n.branchDepth(t.layout)
		rep := n.peekLeaf()
		for ; depth < end; depth++ {
			if o := t.layout.order[depth]; rep.key[o] != key[o] {
				return nil
			}
		}
		switch v := n.(type) {
		case *leaf:
			return v
		case *branch:
			n = v.children[key[t.layout.order[depth]]]
			depth++
		}
	}
	return nil
}

// Count is the number of keys in the tree.
func (t *Tree) Count() uint64 { return nodeCount(t.root) }

// IsEmpty reports whether the tree holds no keys.
func (t *Tree) IsEmpty() bool { return t.root == nil }

// Hash summarises the key set, trees holding the same keys have equal hashes.
func (t *Tree) Hash() Hash { return nodeHash(t.root) }

// SegmentCount is the number of distinct values the tree holds for the
// segment containing depth. It is exact as long as no key differs from the
// others above depth, which always holds for depth 0; use a Cursor to count
// below a longer prefix.
func (t *Tree) SegmentCount(depth int) uint64 {
	return t.layout.segmentCount(t.root, depth)
}

func (l *Layout) put(o *owner, n node, depth int, nl *leaf) node {
	if n == nil {
		return nl
	}
	end := n.branchDepth(l)
	rep := n.peekLeaf()
	for ; depth < end; depth++ {
		off := l.order[depth]
		if nb, ob := nl.key[off], rep.key[off]; nb != ob {
			return l.newBranch2(o, depth, n, ob, nl, nb)
		}
	}

	switch v := n.(type) {
	case *leaf: // same key, only the value may change
		if bytes.Equal(v.value, nl.value) {
			return v
		}
		return nl
	case *branch:
		b := nl.key[l.order[depth]]
		old := l.childState(v, b)
		child := l.put(o, old.node, depth+1, nl)
		return l.replaceChild(o, v, b, old, child)
	default:
		panic("unknown node type")
	}
}

func (l *Layout) remove(o *owner, n node, depth int, key []byte) node {
	if n == nil {
		return nil
	}
	end := n.branchDepth(l)
	rep := n.peekLeaf()
	for ; depth < end; depth++ {
		if off := l.order[depth]; key[off] != rep.key[off] {
			return n
		}
	}

	switch v := n.(type) {
	case *leaf:
		return nil
	case *branch:
		b := key[l.order[depth]]
		old := l.childState(v, b)
		child := l.remove(o, old.node, depth+1, key)
		return l.replaceChild(o, v, b, old, child)
	default:
		panic("unknown node type")
	}
}
