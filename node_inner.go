package tribles

// owner identifies the batch allowed to mutate a branch in place.
// it must not be zero sized, distinct zero sized allocations may share an address
type owner struct {
	_ byte
}

// branch is a 256-way inner node. All keys below it share their bytes at
// depths above depth, which can be read from leaf, and differ at depth.
type branch struct {
	owner *owner

	depth    int
	children [256]node
	childset ByteSet
	n        int   // number of children, always >= 2 in a finished tree
	leaf     *leaf // representative leaf

	h        Hash
	cnt      uint64
	segcount uint64 // distinct values of segment(depth) below this branch
}

func (b *branch) hash() Hash              { return b.h }
func (b *branch) count() uint64           { return b.cnt }
func (b *branch) branchDepth(*Layout) int { return b.depth }
func (b *branch) peekLeaf() *leaf         { return b.leaf }

func newBranch(o *owner, depth int) *branch {
	return &branch{owner: o, depth: depth}
}

// newBranch2 joins two nodes which diverge at depth
func (l *Layout) newBranch2(o *owner, depth int, a node, ab byte, b node, bb byte) *branch {
	br := newBranch(o, depth)
	l.attach(br, ab, a)
	l.attach(br, bb, b)
	return br
}

// attach adds a child at an empty slot and folds it into the aggregates
func (l *Layout) attach(br *branch, b byte, child node) {
	if child == nil {
		return
	}
	br.children[b] = child
	br.childset.Set(b)
	br.n++
	if br.leaf == nil {
		br.leaf = child.peekLeaf()
	}
	br.h = l.hasher.Combine(br.h, child.hash())
	br.cnt += child.count()
	br.segcount += l.segmentContribution(br.depth, child)
}

// finish collapses branches that ended up with less than two children
func (br *branch) finish() node {
	switch br.n {
	case 0:
		return nil
	case 1:
		b, _ := br.childset.Next(0)
		return br.children[b]
	default:
		return br
	}
}

func (br *branch) clone(o *owner) *branch {
	c := *br
	c.owner = o
	return &c
}

// childState is what a branch has folded into its aggregates for one child.
// It is taken before a batch changes the child in place, afterwards the child
// no longer knows what it contributed.
type childState struct {
	node node
	h    Hash
	cnt  uint64
	seg  uint64
	leaf *leaf
}

func (l *Layout) childState(br *branch, b byte) childState {
	c := br.children[b]
	st := childState{node: c, h: nodeHash(c), cnt: nodeCount(c), seg: l.segmentContribution(br.depth, c)}
	if c != nil {
		st.leaf = c.peekLeaf()
	}
	return st
}

// setChild replaces the child at b, see replaceChild.
func (l *Layout) setChild(o *owner, br *branch, b byte, child node) node {
	return l.replaceChild(o, br, b, l.childState(br, b), child)
}

// replaceChild swaps the child at b, whose state was old, for child. The
// branch is mutated in place when it is owned by o, otherwise a copy owned by
// o is returned. A branch left with a single child collapses into that child.
func (l *Layout) replaceChild(o *owner, br *branch, b byte, old childState, child node) node {
	seg := l.segmentContribution(br.depth, child)
	if old.node == child && old.h == nodeHash(child) && old.cnt == nodeCount(child) && old.seg == seg {
		if child == nil || old.leaf == child.peekLeaf() {
			return br
		}
	}
	if o == nil || br.owner != o {
		br = br.clone(o)
	}

	br.h = l.hasher.Update(br.h, old.h, nodeHash(child))
	br.cnt = br.cnt - old.cnt + nodeCount(child)
	br.segcount = br.segcount - old.seg + seg
	br.children[b] = child

	switch {
	case old.node == nil && child != nil:
		br.childset.Set(b)
		br.n++
	case old.node != nil && child == nil:
		br.childset.Unset(b)
		br.n--
	}
	if old.node != nil && br.leaf == old.leaf { // keep no reference to replaced leaves
		if child != nil {
			br.leaf = child.peekLeaf()
		} else if first, ok := br.childset.Next(0); ok {
			br.leaf = br.children[first].peekLeaf()
		}
	}
	return br.finish()
}
