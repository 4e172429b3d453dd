package tribles

import "golang.org/x/xerrors"

// Layout describes how keys of a tree are laid out.
//
// A tree always stores keys in their physical form, the ordering only decides
// in which sequence the key bytes are visited while descending: at depth d the
// tree branches on key[order[d]]. The segmentation groups depths into logical
// fields (for tribles: entity, attribute, value) and decides what the segment
// count aggregate of a branch counts.
type Layout struct {
	keylen   int
	order    []int // tree depth -> key byte offset
	segments []int // tree depth -> segment id
	hasher   HashPrimitive
}

// LayoutOption configures a layout, see NewLayout.
type LayoutOption func(*Layout)

// WithOrder sets the depth to key offset mapping, it must be a permutation.
func WithOrder(order ...int) LayoutOption {
	return func(l *Layout) {
		l.order = append([]int(nil), order...)
	}
}

// WithSegments assigns each depth a segment id. Segments must be contiguous
// runs of depths with non-decreasing ids.
func WithSegments(segments ...int) LayoutOption {
	return func(l *Layout) {
		l.segments = append([]int(nil), segments...)
	}
}

// WithHash replaces the DefaultHash.
func WithHash(h HashPrimitive) LayoutOption {
	return func(l *Layout) {
		l.hasher = h
	}
}

// NewLayout creates a layout for keys of keylen bytes, by default in natural
// byte order with a single segment.
func NewLayout(keylen int, opts ...LayoutOption) (*Layout, error) {
	if keylen <= 0 || keylen > MAX_KEY_LEN {
		return nil, xerrors.Errorf("%w: %d bytes, must be 1 to %d", ErrKeyTooLong, keylen, MAX_KEY_LEN)
	}
	l := &Layout{keylen: keylen, hasher: DefaultHash}
	for _, opt := range opts {
		opt(l)
	}

	if l.order == nil {
		l.order = make([]int, keylen)
		for i := range l.order {
			l.order[i] = i
		}
	}
	if len(l.order) != keylen {
		return nil, xerrors.Errorf("%w: %d entries for %d bytes", ErrBadOrdering, len(l.order), keylen)
	}
	seen := make([]bool, keylen)
	for _, o := range l.order {
		if o < 0 || o >= keylen || seen[o] {
			return nil, xerrors.Errorf("%w: offset %d", ErrBadOrdering, o)
		}
		seen[o] = true
	}

	if l.segments == nil {
		l.segments = make([]int, keylen)
	}
	if len(l.segments) != keylen {
		return nil, xerrors.Errorf("%w: %d entries for %d bytes", ErrBadSegmentation, len(l.segments), keylen)
	}
	for d := 1; d < keylen; d++ {
		if l.segments[d] < l.segments[d-1] {
			return nil, xerrors.Errorf("%w: segment %d follows %d at depth %d", ErrBadSegmentation, l.segments[d], l.segments[d-1], d)
		}
	}
	if l.hasher == nil {
		l.hasher = DefaultHash
	}
	return l, nil
}

// KeyLen is the length of every key in trees using this layout.
func (l *Layout) KeyLen() int { return l.keylen }

// Segment returns the segment id of a tree depth.
func (l *Layout) Segment(depth int) int { return l.segments[depth] }

// KeyOffset returns the key byte visited at a tree depth.
func (l *Layout) KeyOffset(depth int) int { return l.order[depth] }

// compatible layouts produce identically shaped trees for the same keys
func (l *Layout) compatible(o *Layout) bool {
	if l == o {
		return true
	}
	if l.keylen != o.keylen || l.hasher != o.hasher {
		return false
	}
	for i := range l.order {
		if l.order[i] != o.order[i] || l.segments[i] != o.segments[i] {
			return false
		}
	}
	return true
}

// mustLayout is only used for the fixed layouts of this package
func mustLayout(keylen int, opts ...LayoutOption) *Layout {
	l, err := NewLayout(keylen, opts...)
	if err != nil {
		panic(err)
	}
	return l
}
