package tribles

// leaves are immutable once created and may be shared by any number of trees,
// the TribleSet shares a single leaf between all six of its indices
type leaf struct {
	key   []byte // full key in physical byte order
	value []byte
	h     Hash // digest of the key only, values do not take part in set identity
}

func newLeaf(layout *Layout, key, value []byte) *leaf {
	l := &leaf{key: append([]byte(nil), key...)}
	if value != nil {
		l.value = append([]byte(nil), value...)
	}
	l.h = layout.hasher.Digest(l.key)
	return l
}

func (l *leaf) hash() Hash                  { return l.h }
func (l *leaf) count() uint64               { return 1 }
func (l *leaf) branchDepth(lay *Layout) int { return lay.keylen }
func (l *leaf) peekLeaf() *leaf             { return l }
