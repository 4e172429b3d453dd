package main

import "bytes"
import "golang.org/x/text/unicode/norm"
import "golang.org/x/xerrors"

import "github.com/deroproject/tribles"

var errStringTooLong = xerrors.New("short string does not fit a value")

// shortString stores an NFC normalised string of at most 32 bytes in a value,
// zero padded. Strings containing a zero byte do not round trip.
func shortString(s string) (v tribles.Value, err error) {
	n := norm.NFC.String(s)
	if len(n) > tribles.VALUE_LEN {
		return v, xerrors.Errorf("%w: %q is %d bytes", errStringTooLong, s, len(n))
	}
	copy(v[:], n)
	return v, nil
}

func mustShortString(s string) tribles.Value {
	v, err := shortString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func fromShortString(v tribles.Value) string {
	return string(bytes.TrimRight(v[:], "\x00"))
}
