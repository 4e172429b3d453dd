package tribles

// Cursor navigates a tree one key byte at a time, in tree depth order.
//
// The cursor keeps the node covering every depth it has visited, so Pop is a
// constant time operation. Pushing a byte that no key continues with leaves
// the cursor on an empty prefix: it proposes nothing and counts zero until
// popped back.
type Cursor struct {
	layout *Layout
	path   []node // path[d] covers depth d, nil if no key has the prefix
}

// Cursor returns a cursor positioned at the root.
func (t *Tree) Cursor() *Cursor {
	path := make([]node, 1, t.layout.keylen+1)
	path[0] = t.root
	return &Cursor{layout: t.layout, path: path}
}

// Depth is the number of bytes pushed.
func (c *Cursor) Depth() int { return len(c.path) - 1 }

func (c *Cursor) current() node { return c.path[len(c.path)-1] }

// Peek returns the next byte if every key below the prefix agrees on it.
func (c *Cursor) Peek() (byte, bool) {
	n, depth := c.current(), c.Depth()
	if n == nil || depth >= c.layout.keylen || depth >= n.branchDepth(c.layout) {
		return 0, false
	}
	return c.layout.peek(n, depth), true
}

// Propose removes every byte from bs which no key continues the prefix with.
func (c *Cursor) Propose(bs *ByteSet) {
	n, depth := c.current(), c.Depth()
	if n == nil || depth >= c.layout.keylen {
		bs.Clear()
		return
	}
	if depth < n.branchDepth(c.layout) {
		bs.IntersectByte(c.layout.peek(n, depth))
		return
	}
	bs.Intersect(&n.(*branch).childset)
}

// Push extends the prefix by b.
func (c *Cursor) Push(b byte) {
	n, depth := c.current(), c.Depth()
	var next node
	switch {
	case n == nil || depth >= c.layout.keylen:
	case depth < n.branchDepth(c.layout):
		if c.layout.peek(n, depth) == b {
			next = n
		}
	default:
		next = n.(*branch).children[b]
	}
	c.path = append(c.path, next)
}

// Pop removes the last pushed byte.
func (c *Cursor) Pop() {
	if len(c.path) > 1 {
		c.path = c.path[:len(c.path)-1]
	}
}

// Count is the number of keys with the current prefix.
func (c *Cursor) Count() uint64 {
	return nodeCount(c.current())
}

// SegmentCount is the number of distinct values of the segment containing
// the current depth among the keys with the current prefix.
func (c *Cursor) SegmentCount() uint64 {
	depth := c.Depth()
	if depth >= c.layout.keylen {
		return nodeCount(c.current())
	}
	return c.layout.segmentCount(c.current(), depth)
}
