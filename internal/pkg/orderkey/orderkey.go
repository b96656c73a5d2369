// Package orderkey generates the dense, lexicographically ordered string keys
// used to position sibling entities (pages within a website, components within
// a page) without renumbering on insert.
//
// Keys are non-empty strings over the base-36 alphabet 0-9a-z. Comparison is
// plain byte-wise string comparison. A key never ends with the minimum digit
// '0': a trailing '0' would create a key with no room directly below it,
// breaking the density guarantee. Given any two valid keys lo < hi, Between
// can always produce a key strictly inside the gap by extending length when
// no single-digit midpoint exists, so generation never fails for well-formed
// ordered input.
package orderkey

import (
	"errors"
	"strings"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	// ErrInvalidKey is returned for keys outside the alphabet, empty keys,
	// or keys ending with the minimum digit.
	ErrInvalidKey = errors.New("orderkey: malformed key")

	// ErrNotOrdered is returned when the lower bound does not compare
	// strictly below the upper bound.
	ErrNotOrdered = errors.New("orderkey: lower bound is not below upper bound")
)

// Validate reports whether k is a well-formed order key.
func Validate(k string) error {
	if k == "" {
		return ErrInvalidKey
	}
	for i := 0; i < len(k); i++ {
		if strings.IndexByte(alphabet, k[i]) < 0 {
			return ErrInvalidKey
		}
	}
	if k[len(k)-1] == alphabet[0] {
		return ErrInvalidKey
	}
	return nil
}

// Compare orders two keys. It is exactly strings.Compare; it exists so call
// sites state their intent against this package rather than raw strings.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}

// Between returns a key strictly greater than lo and strictly less than hi.
// An empty lo means unbounded below, an empty hi unbounded above. A fresh
// empty collection (both bounds empty) always yields the single mid-alphabet
// digit, so first keys are deterministic.
func Between(lo, hi string) (string, error) {
	if lo != "" {
		if err := Validate(lo); err != nil {
			return "", err
		}
	}
	if hi != "" {
		if err := Validate(hi); err != nil {
			return "", err
		}
	}
	if lo != "" && hi != "" && lo >= hi {
		return "", ErrNotOrdered
	}
	return midpoint(lo, hi), nil
}

// midpoint implements the recursive gap-splitting scheme. a may be empty
// (meaning the minimum), b may be empty (meaning unbounded above). The
// precondition a < b is established by Between.
func midpoint(a, b string) string {
	if b != "" {
		// Strip the longest common prefix, padding a with virtual zeros.
		n := 0
		for n < len(b) {
			ca := alphabet[0]
			if n < len(a) {
				ca = a[n]
			}
			if ca != b[n] {
				break
			}
			n++
		}
		if n > 0 {
			return b[:n] + midpoint(tail(a, n), b[n:])
		}
	}

	digitA := 0
	if a != "" {
		digitA = strings.IndexByte(alphabet, a[0])
	}
	digitB := len(alphabet)
	if b != "" {
		digitB = strings.IndexByte(alphabet, b[0])
	}

	if digitB-digitA > 1 {
		mid := (digitA + digitB + 1) / 2
		return string(alphabet[mid])
	}

	// The first digits are consecutive: no single digit fits between them.
	if len(b) > 1 {
		// b's own first digit, shortened, sits strictly inside the gap.
		return b[:1]
	}
	// Descend into the space above a's remainder, extending key length.
	return string(alphabet[digitA]) + midpoint(tail(a, 1), "")
}

func tail(s string, n int) string {
	if n >= len(s) {
		return ""
	}
	return s[n:]
}
