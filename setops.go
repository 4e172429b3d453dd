package tribles

import "golang.org/x/xerrors"

// Set operations work on pairs of nodes which cover the same depth. Equal
// hashes mean equal key sets, which lets every operation skip identical
// subtrees without visiting them. Otherwise the compressed prefixes are
// compared up to the shallower branch depth: a divergence decides the result
// immediately, at a shared branch depth only children present on both sides
// are recursed into.
//
// Values always come from the receiver when a key is present on both sides.

func (t *Tree) derive(root node) *Tree {
	if root == t.root {
		return t
	}
	return &Tree{layout: t.layout, root: root}
}

func (t *Tree) checkLayout(o *Tree) error {
	if !t.layout.compatible(o.layout) {
		return xerrors.Errorf("%w: key length %d and %d", ErrLayoutMismatch, t.layout.keylen, o.layout.keylen)
	}
	return nil
}

// Union returns the keys present in either tree.
func (t *Tree) Union(o *Tree) (*Tree, error) {
	if err := t.checkLayout(o); err != nil {
		return nil, err
	}
	return t.derive(t.layout.union(t.root, o.root, 0)), nil
}

// Intersect returns the keys present in both trees.
func (t *Tree) Intersect(o *Tree) (*Tree, error) {
	if err := t.checkLayout(o); err != nil {
		return nil, err
	}
	return t.derive(t.layout.intersect(t.root, o.root, 0)), nil
}

// Subtract returns the keys of t which are not in o.
func (t *Tree) Subtract(o *Tree) (*Tree, error) {
	if err := t.checkLayout(o); err != nil {
		return nil, err
	}
	return t.derive(t.layout.subtract(t.root, o.root, 0)), nil
}

// Difference returns the keys present in exactly one of the trees.
func (t *Tree) Difference(o *Tree) (*Tree, error) {
	if err := t.checkLayout(o); err != nil {
		return nil, err
	}
	return t.derive(t.layout.difference(t.root, o.root, 0)), nil
}

// IsEqual reports whether both trees hold the same keys.
func (t *Tree) IsEqual(o *Tree) bool {
	return t.layout.compatible(o.layout) && t.layout.hasher.Equal(t.Hash(), o.Hash())
}

// IsSubsetOf reports whether every key of t is in o.
func (t *Tree) IsSubsetOf(o *Tree) bool {
	return t.layout.compatible(o.layout) && t.layout.isSubset(t.root, o.root, 0)
}

// IsIntersecting reports whether the trees share at least one key.
func (t *Tree) IsIntersecting(o *Tree) bool {
	return t.layout.compatible(o.layout) && t.layout.isIntersecting(t.root, o.root, 0)
}

// keep reuses a when the freshly built result holds the same keys
func (l *Layout) keep(result node, a node) node {
	if result != nil && a != nil && l.hasher.Equal(result.hash(), a.hash()) {
		return a
	}
	return result
}

func (l *Layout) union(a, b node, depth int) node {
	if a == nil {
		return b
	}
	if b == nil || l.hasher.Equal(a.hash(), b.hash()) {
		return a
	}
	d, diverged := l.walk(a, b, depth)
	if diverged {
		return l.newBranch2(nil, d, a, l.peek(a, d), b, l.peek(b, d))
	}

	ea, eb := a.branchDepth(l), b.branchDepth(l)
	switch {
	case ea == eb:
		if ea == l.keylen { // same key
			return a
		}
		ba, bb := a.(*branch), b.(*branch)
		nb := newBranch(nil, d)
		all := ba.childset
		all.Union(&bb.childset)
		for x, ok := all.Drain(); ok; x, ok = all.Drain() {
			ca, cb := ba.children[x], bb.children[x]
			switch {
			case ca == nil:
				l.attach(nb, x, cb)
			case cb == nil:
				l.attach(nb, x, ca)
			default:
				l.attach(nb, x, l.union(ca, cb, d+1))
			}
		}
		return l.keep(nb.finish(), a)
	case ea < eb: // b sits below one child of a
		ba := a.(*branch)
		x := l.peek(b, d)
		return l.setChild(nil, ba, x, l.union(ba.children[x], b, d+1))
	default:
		bb := b.(*branch)
		x := l.peek(a, d)
		return l.setChild(nil, bb, x, l.union(a, bb.children[x], d+1))
	}
}

func (l *Layout) intersect(a, b node, depth int) node {
	if a == nil || b == nil {
		return nil
	}
	if l.hasher.Equal(a.hash(), b.hash()) {
		return a
	}
	d, diverged := l.walk(a, b, depth)
	if diverged {
		return nil
	}

	ea, eb := a.branchDepth(l), b.branchDepth(l)
	switch {
	case ea == eb:
		if ea == l.keylen {
			return a
		}
		ba, bb := a.(*branch), b.(*branch)
		nb := newBranch(nil, d)
		both := ba.childset
		both.Intersect(&bb.childset)
		for x, ok := both.Drain(); ok; x, ok = both.Drain() {
			l.attach(nb, x, l.intersect(ba.children[x], bb.children[x], d+1))
		}
		return l.keep(nb.finish(), a)
	case ea < eb:
		ba := a.(*branch)
		return l.intersect(ba.children[l.peek(b, d)], b, d+1)
	default:
		bb := b.(*branch)
		return l.intersect(a, bb.children[l.peek(a, d)], d+1)
	}
}

func (l *Layout) subtract(a, b node, depth int) node {
	if a == nil {
		return nil
	}
	if b == nil {
		return a
	}
	if l.hasher.Equal(a.hash(), b.hash()) {
		return nil
	}
	d, diverged := l.walk(a, b, depth)
	if diverged {
		return a
	}

	ea, eb := a.branchDepth(l), b.branchDepth(l)
	switch {
	case ea == eb:
		if ea == l.keylen {
			return nil
		}
		ba, bb := a.(*branch), b.(*branch)
		nb := newBranch(nil, d)
		rest := ba.childset
		for x, ok := rest.Drain(); ok; x, ok = rest.Drain() {
			if cb := bb.children[x]; cb != nil {
				l.attach(nb, x, l.subtract(ba.children[x], cb, d+1))
			} else {
				l.attach(nb, x, ba.children[x])
			}
		}
		return l.keep(nb.finish(), a)
	case ea < eb:
		ba := a.(*branch)
		x := l.peek(b, d)
		return l.setChild(nil, ba, x, l.subtract(ba.children[x], b, d+1))
	default:
		bb := b.(*branch)
		return l.subtract(a, bb.children[l.peek(a, d)], d+1)
	}
}

func (l *Layout) difference(a, b node, depth int) node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if l.hasher.Equal(a.hash(), b.hash()) {
		return nil
	}
	d, diverged := l.walk(a, b, depth)
	if diverged {
		return l.newBranch2(nil, d, a, l.peek(a, d), b, l.peek(b, d))
	}

	ea, eb := a.branchDepth(l), b.branchDepth(l)
	switch {
	case ea == eb:
		if ea == l.keylen {
			return nil
		}
		ba, bb := a.(*branch), b.(*branch)
		nb := newBranch(nil, d)
		all := ba.childset
		all.Union(&bb.childset)
		for x, ok := all.Drain(); ok; x, ok = all.Drain() {
			ca, cb := ba.children[x], bb.children[x]
			switch {
			case ca == nil:
				l.attach(nb, x, cb)
			case cb == nil:
				l.attach(nb, x, ca)
			default:
				l.attach(nb, x, l.difference(ca, cb, d+1))
			}
		}
		return nb.finish()
	case ea < eb:
		ba := a.(*branch)
		x := l.peek(b, d)
		return l.setChild(nil, ba, x, l.difference(ba.children[x], b, d+1))
	default:
		bb := b.(*branch)
		x := l.peek(a, d)
		return l.setChild(nil, bb, x, l.difference(a, bb.children[x], d+1))
	}
}

func (l *Layout) isSubset(a, b node, depth int) bool {
	if a == nil {
		return true
	}
	if b == nil {
		return false
	}
	if l.hasher.Equal(a.hash(), b.hash()) {
		return true
	}
	d, diverged := l.walk(a, b, depth)
	if diverged {
		return false
	}

	ea, eb := a.branchDepth(l), b.branchDepth(l)
	switch {
	case ea == eb:
		if ea == l.keylen {
			return true
		}
		ba, bb := a.(*branch), b.(*branch)
		rest := ba.childset
		for x, ok := rest.Drain(); ok; x, ok = rest.Drain() {
			if !l.isSubset(ba.children[x], bb.children[x], d+1) {
				return false
			}
		}
		return true
	case ea < eb: // a has keys with several bytes at d, b only one
		return false
	default:
		bb := b.(*branch)
		return l.isSubset(a, bb.children[l.peek(a, d)], d+1)
	}
}

func (l *Layout) isIntersecting(a, b node, depth int) bool {
	if a == nil || b == nil {
		return false
	}
	if l.hasher.Equal(a.hash(), b.hash()) {
		return true
	}
	d, diverged := l.walk(a, b, depth)
	if diverged {
		return false
	}

	ea, eb := a.branchDepth(l), b.branchDepth(l)
	switch {
	case ea == eb:
		if ea == l.keylen {
			return true
		}
		ba, bb := a.(*branch), b.(*branch)
		both := ba.childset
		both.Intersect(&bb.childset)
		for x, ok := both.Drain(); ok; x, ok = both.Drain() {
			if l.isIntersecting(ba.children[x], bb.children[x], d+1) {
				return true
			}
		}
		return false
	case ea < eb:
		ba := a.(*branch)
		return l.isIntersecting(ba.children[l.peek(b, d)], b, d+1)
	default:
		bb := b.(*branch)
		return l.isIntersecting(a, bb.children[l.peek(a, d)], d+1)
	}
}
