package tribles

import "errors"

const (
	ID_LEN      = 16                          // entities and attributes are 128 bit ids
	VALUE_LEN   = 32                          // values are fixed 256 bit slots
	TRIBLE_LEN  = ID_LEN + ID_LEN + VALUE_LEN // e ++ a ++ v
	HASH_LEN    = 16                          // node hashes are 128 bits
	MAX_KEY_LEN = TRIBLE_LEN                  // no layout may address more bytes than a trible

	MAX_VARIABLES = 256 // variables are byte sized, see ByteSet
)

var (
	ErrNotFound    = errors.New("tribles: key not found")
	ErrNoMoreKeys  = errors.New("tribles: no more keys exist")
	ErrKeyLength   = errors.New("tribles: key has wrong length")
	ErrBatchSealed = errors.New("tribles: batch already completed")
	ErrInvalidId   = errors.New("tribles: nil id")

	ErrKeyTooLong        = errors.New("tribles: key length exceeds maximum")
	ErrBadOrdering       = errors.New("tribles: ordering is not a permutation of the key")
	ErrBadSegmentation   = errors.New("tribles: segmentation must be contiguous")
	ErrLayoutMismatch    = errors.New("tribles: trees have incompatible layouts")
	ErrDuplicateVariable = errors.New("tribles: variable used in more than one position")
	ErrBlockedDeadEnd    = errors.New("tribles: all unexplored variables are blocked")
)
