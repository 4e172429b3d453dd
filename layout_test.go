package tribles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	l, err := NewLayout(4)
	require.NoError(t, err)
	require.Equal(t, 4, l.KeyLen())
	for d := 0; d < 4; d++ {
		require.Equal(t, d, l.KeyOffset(d))
		require.Equal(t, 0, l.Segment(d))
	}

	l, err = NewLayout(4, WithOrder(3, 2, 1, 0), WithSegments(0, 0, 1, 5))
	require.NoError(t, err)
	require.Equal(t, 3, l.KeyOffset(0))
	require.Equal(t, 5, l.Segment(3))

	for _, tc := range []struct {
		keylen int
		opts   []LayoutOption
		err    error
	}{
		{keylen: MAX_KEY_LEN + 1, err: ErrKeyTooLong},
		{keylen: 0, err: ErrKeyTooLong},
		{keylen: 3, opts: []LayoutOption{WithOrder(0, 1)}, err: ErrBadOrdering},
		{keylen: 3, opts: []LayoutOption{WithOrder(0, 1, 1)}, err: ErrBadOrdering},
		{keylen: 3, opts: []LayoutOption{WithOrder(0, 1, 3)}, err: ErrBadOrdering},
		{keylen: 3, opts: []LayoutOption{WithSegments(0, 0)}, err: ErrBadSegmentation},
		{keylen: 3, opts: []LayoutOption{WithSegments(0, 1, 0)}, err: ErrBadSegmentation},
	} {
		_, err := NewLayout(tc.keylen, tc.opts...)
		require.ErrorIs(t, err, tc.err, "keylen %d", tc.keylen)
	}
}

func TestOrderingLayouts(t *testing.T) {
	for o := EAV; o <= VAE; o++ {
		l := OrderingLayout(o)
		require.Equal(t, TRIBLE_LEN, l.KeyLen())

		fields := orderingFields[o]
		depth := 0
		for segment, f := range fields {
			for i := 0; i < fieldLen[f]; i++ {
				require.Equal(t, fieldOffset[f]+i, l.KeyOffset(depth), "%s depth %d", o, depth)
				require.Equal(t, segment, l.Segment(depth))
				depth++
			}
		}
	}
	require.Equal(t, 32, OrderingLayout(EVA).KeyOffset(16))
	require.Equal(t, 16, OrderingLayout(VAE).KeyOffset(32))
	require.Equal(t, "ave", AVE.String())
}
