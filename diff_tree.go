package tribles

// All changes are reported of this type, deleted or inserted
type DiffHandler func(k, v []byte)

// Diff finds all the keys which have been deleted from base or inserted into
// head. Identical subtrees are skipped by hash, so the work is proportional
// to the number of changes rather than the size of the trees: a tree with a
// billion keys can be diffed with its parent almost instantaneously.
// Deleted keys are reported with their base values, inserted keys with their
// head values; either handler may be nil.
func Diff(base, head *Tree, deleted, inserted DiffHandler) (err error) {
	if err = base.checkLayout(head); err != nil {
		return
	}
	l := base.layout
	if l.hasher.Equal(base.Hash(), head.Hash()) {
		return nil
	}
	if deleted != nil {
		walkEntries(l.subtract(base.root, head.root, 0), func(k, v []byte) bool {
			deleted(k, v)
			return true
		})
	}
	if inserted != nil {
		walkEntries(l.subtract(head.root, base.root, 0), func(k, v []byte) bool {
			inserted(k, v)
			return true
		})
	}
	return nil
}
