package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReferenceID(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	id, err := NewReferenceID(now)
	assert.NoError(t, err)
	assert.Regexp(t, `^ADM-2026-[A-HJ-NP-Z2-9]{6}$`, id)

	// Confusable characters never appear.
	assert.NotRegexp(t, `[01IO]`, id)

	other, err := NewReferenceID(now)
	assert.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestNewInvoiceNumber(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	number, err := NewInvoiceNumber(now)
	assert.NoError(t, err)
	assert.Regexp(t, `^INV-20260829-[A-HJ-NP-Z2-9]{4}$`, number)
}

func TestNewOTP(t *testing.T) {
	otp, err := NewOTP()
	assert.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, otp)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2010-04-12")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2010, 4, 12, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("12/04/2010")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
