package tribles

import "encoding/hex"
import "github.com/google/uuid"

// Id identifies entities and attributes, the all zero id is invalid.
type Id [ID_LEN]byte

// Value is a fixed size slot, either holding a zero padded Id or any 32 byte
// encoding the caller chooses.
type Value [VALUE_LEN]byte

// Trible is an entity, attribute, value fact.
type Trible [TRIBLE_LEN]byte

// GenId returns a fresh random id.
func GenId() Id {
	return Id(uuid.New()) // version bits are always set, so this is never nil
}

// IsNil reports whether the id is the invalid all zero id.
func (id Id) IsNil() bool { return id == Id{} }

func (id Id) String() string { return hex.EncodeToString(id[:]) }

// IdValue stores an id in a value, the id takes the upper half and the lower
// half stays zero.
func IdValue(id Id) (v Value) {
	copy(v[VALUE_LEN-ID_LEN:], id[:])
	return
}

// Id extracts an id stored with IdValue.
func (v Value) Id() (id Id, ok bool) {
	for _, b := range v[:VALUE_LEN-ID_LEN] {
		if b != 0 {
			return id, false
		}
	}
	copy(id[:], v[VALUE_LEN-ID_LEN:])
	return id, !id.IsNil()
}

func (v Value) String() string { return hex.EncodeToString(v[:]) }

// NewTrible assembles a trible.
func NewTrible(e, a Id, v Value) (t Trible) {
	copy(t[:ID_LEN], e[:])
	copy(t[ID_LEN:2*ID_LEN], a[:])
	copy(t[2*ID_LEN:], v[:])
	return
}

func (t Trible) E() (id Id) {
	copy(id[:], t[:ID_LEN])
	return
}

func (t Trible) A() (id Id) {
	copy(id[:], t[ID_LEN:2*ID_LEN])
	return
}

func (t Trible) V() (v Value) {
	copy(v[:], t[2*ID_LEN:])
	return
}
