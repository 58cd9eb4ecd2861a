// Package domain holds the typed identifiers shared across certledger.
//
// Keeping identifiers as distinct types (instead of raw strings and ints)
// prevents accidental cross-assignment between, say, a course ID and a
// certificate ID at compile time.
package domain

import "strings"

// Address is an opaque, address-like identity. The registry never interprets
// it; it only compares addresses for equality and rejects the zero identity
// where a real one is required.
type Address string

// ZeroAddress is the canonical null identity.
const ZeroAddress Address = ""

// IsZero reports whether the address is the null identity. The empty string
// and the conventional all-zero hex form both count.
func (a Address) IsZero() bool {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return true
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		rest := s[2:]
		if rest != "" && strings.Trim(rest, "0") == "" {
			return true
		}
	}
	return false
}

func (a Address) String() string {
	return string(a)
}

// CertificateID identifies a certificate. IDs are allocated sequentially
// starting at 1 and are never reused.
type CertificateID uint64

// IsValid reports whether the ID could ever have been issued.
func (id CertificateID) IsValid() bool {
	return id > 0
}

// CourseID identifies a course. Course IDs are caller-chosen positive
// integers with a lifecycle independent of certificates.
type CourseID int64

// IsValid reports whether the course ID is in the accepted range.
func (id CourseID) IsValid() bool {
	return id > 0
}
