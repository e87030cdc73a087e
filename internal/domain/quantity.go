package domain

import (
	"bytes"
	"strconv"
	"strings"
)

// MaxQuantity bounds a single cart line so total computation stays sane.
const MaxQuantity = 999

// Quantity is an untrusted item count from the request body. Decoding is
// deliberately permissive: JSON numbers and numeric strings are accepted,
// fractions are truncated, and anything non-numeric, missing or below 1
// falls back to 1. The fallback is a documented policy, not an accident.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if s == "null" {
		*q = 1
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)

	if n, err := strconv.Atoi(s); err == nil {
		*q = Quantity(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*q = Quantity(int(f))
		return nil
	}
	*q = 1
	return nil
}

// Normalize clamps the decoded value into [1, MaxQuantity].
func (q Quantity) Normalize() int {
	n := int(q)
	if n < 1 {
		return 1
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}
