package tribles

// node is either a *branch or a *leaf, a nil node is the empty tree
type node interface {
	hash() Hash
	count() uint64
	// depth at which the node branches, leaves report the key length
	branchDepth(l *Layout) int
	// any leaf below the node, all bytes above the branch depth can be read from it
	peekLeaf() *leaf
}

func nodeHash(n node) Hash {
	if n == nil {
		return Hash{}
	}
	return n.hash()
}

func nodeCount(n node) uint64 {
	if n == nil {
		return 0
	}
	return n.count()
}

// peek returns the key byte of n at a depth above its branch depth
func (l *Layout) peek(n node, depth int) byte {
	return n.peekLeaf().key[l.order[depth]]
}

// segmentContribution is the number of distinct values of the segment
// containing parentDepth that a child of a branch at parentDepth adds.
func (l *Layout) segmentContribution(parentDepth int, child node) uint64 {
	switch c := child.(type) {
	case nil:
		return 0
	case *leaf:
		return 1
	case *branch:
		if l.segments[c.depth] == l.segments[parentDepth] {
			return c.segcount
		}
		return 1 // every key below the child shares the whole segment
	default:
		panic("unknown node type")
	}
}

// segmentCount of n as seen by a cursor standing at depth, n must cover depth
func (l *Layout) segmentCount(n node, depth int) uint64 {
	switch v := n.(type) {
	case nil:
		return 0
	case *leaf:
		return 1
	case *branch:
		if l.segments[v.depth] == l.segments[depth] {
			return v.segcount
		}
		return 1
	default:
		panic("unknown node type")
	}
}

// walk advances from depth while both nodes agree on their key bytes, up to
// the shallower branch depth. It returns the depth reached and whether the
// nodes diverged before it.
func (l *Layout) walk(a, b node, depth int) (int, bool) {
	end := a.branchDepth(l)
	if e := b.branchDepth(l); e < end {
		end = e
	}
	la, lb := a.peekLeaf(), b.peekLeaf()
	for ; depth < end; depth++ {
		o := l.order[depth]
		if la.key[o] != lb.key[o] {
			return depth, true
		}
	}
	return end, false
}
