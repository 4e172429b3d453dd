package tribles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultHash(t *testing.T) {
	h := DefaultHash
	a, b, c := h.Digest([]byte("a")), h.Digest([]byte("b")), h.Digest([]byte("c"))
	require.NotEqual(t, a, b)
	require.Equal(t, a, h.Digest([]byte("a")))

	require.Equal(t, a, h.Combine(a, Hash{}))
	require.Equal(t, h.Combine(a, b), h.Combine(b, a))
	require.Equal(t, h.Combine(h.Combine(a, b), c), h.Combine(a, h.Combine(b, c)))
	require.Equal(t, h.Combine(a, c), h.Update(h.Combine(a, b), b, c))
	require.True(t, h.Equal(a, a))
	require.False(t, h.Equal(a, b))

	other := newBlakeXor([]byte("another key"))
	require.NotEqual(t, a, other.Digest([]byte("a")), "the hash is keyed")
}

// sumHash is a weak but valid primitive, useful to check layouts honour WithHash
type sumHash struct{}

func (sumHash) Digest(data []byte) (r Hash) {
	for i, b := range data {
		r[i%HASH_LEN] += b
	}
	return
}
func (sumHash) Combine(a, b Hash) (r Hash) {
	for i := range r {
		r[i] = a[i] + b[i]
	}
	return
}
func (sumHash) Update(combined, old, new Hash) (r Hash) {
	for i := range r {
		r[i] = combined[i] - old[i] + new[i]
	}
	return
}
func (sumHash) Equal(a, b Hash) bool { return a == b }

func TestCustomHash(t *testing.T) {
	l, err := NewLayout(16, WithHash(sumHash{}))
	require.NoError(t, err)
	require.False(t, l.compatible(testLayout))

	tree := NewTree(l)
	for i := 1; i <= 3; i++ {
		tree, err = tree.Put(key16(byte(i)), nil)
		require.NoError(t, err)
	}
	checkInvariants(t, tree)
	var expected Hash
	expected[15] = 1 + 2 + 3
	require.Equal(t, expected, tree.Hash())

	_, err = tree.Union(NewTree(testLayout))
	require.ErrorIs(t, err, ErrLayoutMismatch)
}
