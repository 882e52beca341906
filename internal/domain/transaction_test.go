package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInstallmentKey(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    InstallmentKey
		expectError bool
	}{
		{"full key", "2-1", NewInstallmentKey(2, 1), false},
		{"semester only", "3", SemesterOnlyKey(3), false},
		{"empty", "", InstallmentKey{}, true},
		{"garbage", "abc", InstallmentKey{}, true},
		{"zero semester", "0-1", InstallmentKey{}, true},
		{"zero installment", "2-0", InstallmentKey{}, true},
		{"trailing garbage", "2-x", InstallmentKey{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseInstallmentKey(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, key)
			assert.Equal(t, tt.input, key.String())
		})
	}
}

func TestTransactionKeyFallback(t *testing.T) {
	withKey := &PaymentTransaction{InstallmentID: "2-1", SemesterNumber: 2}
	key, ok := withKey.Key()
	assert.True(t, ok)
	assert.Equal(t, NewInstallmentKey(2, 1), key)

	legacy := &PaymentTransaction{SemesterNumber: 3}
	key, ok = legacy.Key()
	assert.True(t, ok)
	assert.Equal(t, SemesterOnlyKey(3), key)
	assert.False(t, key.HasInstallment())

	// A malformed installment ID falls back to the semester number.
	malformed := &PaymentTransaction{InstallmentID: "bad", SemesterNumber: 2}
	key, ok = malformed.Key()
	assert.True(t, ok)
	assert.Equal(t, SemesterOnlyKey(2), key)

	orphan := &PaymentTransaction{}
	_, ok = orphan.Key()
	assert.False(t, ok)
}
