package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Reference identifiers intentionally skip easily-confused characters.
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewReferenceID issues a tracking code of the form ADM-2025-X7K2M9. The
// code is immutable once assigned to an application.
func NewReferenceID(now time.Time) (string, error) {
	suffix, err := randomString(referenceAlphabet, 6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ADM-%d-%s", now.Year(), suffix), nil
}

// NewInvoiceNumber issues an invoice number of the form INV-20250829-4F7Q.
func NewInvoiceNumber(now time.Time) (string, error) {
	suffix, err := randomString(referenceAlphabet, 4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), suffix), nil
}

// NewOTP returns a 6-digit one-time password.
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func randomString(alphabet string, length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// ParseDate converts a yyyy-mm-dd formatted string into a time.Time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %w", err)
	}
	return t, nil
}
