// Package identifier produces random candidates for the domain-facing
// identifiers: account numbers, transaction reference numbers and transfer
// IDs. Candidates are drawn from crypto/rand; uniqueness against the store
// is the caller's responsibility (rejection sampling backed by unique
// constraints).
package identifier

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// ReferencePrefix and TransferPrefix tag the two alphanumeric identifier kinds.
	ReferencePrefix = "TXN-"
	TransferPrefix  = "TRF-"

	alnum       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	alnumLength = 12
)

// NewAccountNumber returns a candidate account number: 12 random digits
// grouped as dddd-dddd-dddd.
func NewAccountNumber() (string, error) {
	digits := make([]byte, 12)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to read random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return fmt.Sprintf("%s-%s-%s", digits[0:4], digits[4:8], digits[8:12]), nil
}

// NewReferenceNumber returns a candidate transaction reference number.
func NewReferenceNumber() (string, error) {
	return prefixedAlnum(ReferencePrefix)
}

// NewTransferID returns a candidate transfer identifier.
func NewTransferID() (string, error) {
	return prefixedAlnum(TransferPrefix)
}

func prefixedAlnum(prefix string) (string, error) {
	b := make([]byte, alnumLength)
	max := big.NewInt(int64(len(alnum)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random byte: %w", err)
		}
		b[i] = alnum[n.Int64()]
	}
	return prefix + string(b), nil
}
