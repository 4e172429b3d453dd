package tribles

import "golang.org/x/crypto/blake2b"

// Hash summarises the key set below a node.
type Hash [HASH_LEN]byte

// HashPrimitive is everything the trie needs from a hash function.
// Combine must be commutative and associative with the zero Hash as its
// identity, so that a node hash only depends on the set of keys below it and
// never on the insertion order or the shape of the tree.
type HashPrimitive interface {
	Digest(data []byte) Hash
	Combine(a, b Hash) Hash
	Update(combined, old, new Hash) Hash
	Equal(a, b Hash) bool
}

// keyed blake2b with 128 bit output, combined with xor
type blakeXor struct {
	key [32]byte
}

// DefaultHash is used by every layout that does not specify its own.
var DefaultHash HashPrimitive = newBlakeXor([]byte("tribles patch node hash key v1.."))

func newBlakeXor(key []byte) *blakeXor {
	h := &blakeXor{}
	copy(h.key[:], key)
	return h
}

func (h *blakeXor) Digest(data []byte) (r Hash) {
	d, err := blake2b.New(HASH_LEN, h.key[:])
	if err != nil { // only possible with a bad size or key length, both are constant
		panic(err)
	}
	d.Write(data)
	d.Sum(r[:0])
	return
}

func (h *blakeXor) Combine(a, b Hash) (r Hash) {
	for i := range r {
		r[i] = a[i] ^ b[i]
	}
	return
}

func (h *blakeXor) Update(combined, old, new Hash) (r Hash) {
	for i := range r {
		r[i] = combined[i] ^ old[i] ^ new[i]
	}
	return
}

func (h *blakeXor) Equal(a, b Hash) bool {
	return a == b
}
