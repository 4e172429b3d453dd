package tribles

import "golang.org/x/xerrors"

// Batch collects many changes to a tree. Nodes created by the batch belong to
// it and are updated in place by later changes, nodes taken over from the
// tree the batch started from are copied on first write.
//
// A batch has exactly one writer and must not be used once completed.
type Batch struct {
	layout *Layout
	root   node
	owner  *owner
}

// Batch starts a batch from the current contents of the tree.
func (t *Tree) Batch() *Batch {
	return &Batch{layout: t.layout, root: t.root, owner: &owner{}}
}

// Put key and value into the batch.
func (b *Batch) Put(key, value []byte) error {
	if b.owner == nil {
		return ErrBatchSealed
	}
	if len(key) != b.layout.keylen {
		return xerrors.Errorf("%w: %d bytes, expected %d", ErrKeyLength, len(key), b.layout.keylen)
	}
	b.root = b.layout.put(b.owner, b.root, 0, newLeaf(b.layout, key, value))
	return nil
}

// putLeaf inserts an already hashed leaf, the TribleSet uses this to share
// one leaf between all of its indices
func (b *Batch) putLeaf(l *leaf) error {
	if b.owner == nil {
		return ErrBatchSealed
	}
	b.root = b.layout.put(b.owner, b.root, 0, l)
	return nil
}

// Delete key from the batch.
func (b *Batch) Delete(key []byte) error {
	if b.owner == nil {
		return ErrBatchSealed
	}
	if len(key) != b.layout.keylen {
		return xerrors.Errorf("%w: %d bytes, expected %d", ErrKeyLength, len(key), b.layout.keylen)
	}
	b.root = b.layout.remove(b.owner, b.root, 0, key)
	return nil
}

// Count of keys currently in the batch.
func (b *Batch) Count() uint64 { return nodeCount(b.root) }

// Complete seals the batch and returns the resulting immutable tree.
func (b *Batch) Complete() (*Tree, error) {
	if b.owner == nil {
		return nil, ErrBatchSealed
	}
	b.owner = nil
	t := &Tree{layout: b.layout, root: b.root}
	b.root = nil
	return t, nil
}
