package tribles

import "golang.org/x/xerrors"

// Ordering is one of the six orders in which the fields of a trible can be
// visited.
type Ordering int

const (
	EAV Ordering = iota
	EVA
	AEV
	AVE
	VEA
	VAE
)

const (
	fieldE = iota
	fieldA
	fieldV
)

var fieldOffset = [3]int{0, ID_LEN, 2 * ID_LEN}
var fieldLen = [3]int{ID_LEN, ID_LEN, VALUE_LEN}
var fieldName = [3]string{"e", "a", "v"}

var orderingFields = [6][3]int{
	EAV: {fieldE, fieldA, fieldV},
	EVA: {fieldE, fieldV, fieldA},
	AEV: {fieldA, fieldE, fieldV},
	AVE: {fieldA, fieldV, fieldE},
	VEA: {fieldV, fieldE, fieldA},
	VAE: {fieldV, fieldA, fieldE},
}

var orderingLayouts [6]*Layout

// ValueLayout is the natural order layout for trees of values, as used by
// IndexConstraint.
var ValueLayout = mustLayout(VALUE_LEN)

func init() {
	for o, fields := range orderingFields {
		var order, segments []int
		for segment, f := range fields {
			for i := 0; i < fieldLen[f]; i++ {
				order = append(order, fieldOffset[f]+i)
				segments = append(segments, segment)
			}
		}
		orderingLayouts[o] = mustLayout(TRIBLE_LEN, WithOrder(order...), WithSegments(segments...))
	}
}

// OrderingLayout returns the layout of the index for an ordering.
func OrderingLayout(o Ordering) *Layout { return orderingLayouts[o] }

func (o Ordering) String() string {
	f := orderingFields[o]
	return fieldName[f[0]] + fieldName[f[1]] + fieldName[f[2]]
}

// TribleSet is an immutable set of tribles, indexed in all six orderings so
// that queries can start from whichever field is known first.
// All six indices always hold the same tribles.
type TribleSet struct {
	indices [6]*Tree
}

// NewTribleSet returns an empty set.
func NewTribleSet() *TribleSet {
	s := &TribleSet{}
	for o := range s.indices {
		s.indices[o] = NewTree(orderingLayouts[o])
	}
	return s
}

// With returns a set which additionally holds tribles. Entities and
// attributes must not be nil, in which case nothing is inserted at all.
func (s *TribleSet) With(tribles ...Trible) (*TribleSet, error) {
	for i := range tribles {
		if tribles[i].E().IsNil() || tribles[i].A().IsNil() {
			return nil, xerrors.Errorf("%w: trible %d %x", ErrInvalidId, i, tribles[i][:])
		}
	}

	var batches [6]*Batch
	for o := range batches {
		batches[o] = s.indices[o].Batch()
	}
	for i := range tribles {
		l := newLeaf(orderingLayouts[EAV], tribles[i][:], nil) // every index stores the same physical key
		for _, b := range batches {
			if err := b.putLeaf(l); err != nil {
				return nil, err
			}
		}
	}

	n := &TribleSet{}
	for o, b := range batches {
		t, err := b.Complete()
		if err != nil {
			return nil, err
		}
		n.indices[o] = t
	}
	return n, nil
}

// Index returns the tree of one ordering. All trees store the tribles in
// their physical e ++ a ++ v form.
func (s *TribleSet) Index(o Ordering) *Tree { return s.indices[o] }

// Count is the number of tribles.
func (s *TribleSet) Count() uint64 { return s.indices[EAV].Count() }

// Has reports whether the trible is in the set.
func (s *TribleSet) Has(t Trible) bool { return s.indices[EAV].Has(t[:]) }

// Tribles lists the set in entity, attribute, value order.
func (s *TribleSet) Tribles() []Trible {
	out := make([]Trible, 0, s.Count())
	s.indices[EAV].Entries(func(k, _ []byte) bool {
		out = append(out, Trible(k))
		return true
	})
	return out
}

func (s *TribleSet) combine(o *TribleSet, op func(l *Layout, a, b node, depth int) node) *TribleSet {
	n := &TribleSet{}
	for i, t := range s.indices {
		n.indices[i] = t.derive(op(t.layout, t.root, o.indices[i].root, 0))
	}
	return n
}

// Union returns the tribles in either set.
func (s *TribleSet) Union(o *TribleSet) *TribleSet { return s.combine(o, (*Layout).union) }

// Intersect returns the tribles in both sets.
func (s *TribleSet) Intersect(o *TribleSet) *TribleSet { return s.combine(o, (*Layout).intersect) }

// Subtract returns the tribles of s which are not in o.
func (s *TribleSet) Subtract(o *TribleSet) *TribleSet { return s.combine(o, (*Layout).subtract) }

// Difference returns the tribles in exactly one of the sets.
func (s *TribleSet) Difference(o *TribleSet) *TribleSet { return s.combine(o, (*Layout).difference) }

// IsEqual reports whether both sets hold the same tribles.
func (s *TribleSet) IsEqual(o *TribleSet) bool { return s.indices[EAV].IsEqual(o.indices[EAV]) }

// IsSubsetOf reports whether every trible of s is in o.
func (s *TribleSet) IsSubsetOf(o *TribleSet) bool { return s.indices[EAV].IsSubsetOf(o.indices[EAV]) }

// IsIntersecting reports whether the sets share a trible.
func (s *TribleSet) IsIntersecting(o *TribleSet) bool {
	return s.indices[EAV].IsIntersecting(o.indices[EAV])
}
