package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	asOf := time.Date(2026, 9, 1, 14, 45, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      time.Time
		expected int
	}{
		{
			name:     "due earlier the same day",
			due:      time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "due later the same day",
			due:      time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "due tomorrow morning",
			due:      time.Date(2026, 9, 2, 1, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "due yesterday evening",
			due:      time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC),
			expected: -1,
		},
		{
			name:     "due in ten days",
			due:      time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysUntil(asOf, tt.due))
		})
	}
}

func TestIsDateOverdue(t *testing.T) {
	asOf := time.Date(2026, 9, 1, 0, 30, 0, 0, time.UTC)

	assert.False(t, IsDateOverdue(asOf, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsDateOverdue(asOf, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsDateOverdue(asOf, time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)))
}

func TestSplitEvenly(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		n        int
		expected []string
	}{
		{
			name:     "clean division",
			amount:   decimal.NewFromInt(400000),
			n:        4,
			expected: []string{"100000", "100000", "100000", "100000"},
		},
		{
			name:     "remainder lands on the last part",
			amount:   decimal.NewFromInt(100),
			n:        3,
			expected: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:     "single part",
			amount:   decimal.NewFromInt(177000),
			n:        1,
			expected: []string{"177000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := SplitEvenly(tt.amount, tt.n)
			sum := decimal.Zero
			for i, p := range parts {
				assert.True(t, p.Equal(decimal.RequireFromString(tt.expected[i])),
					"part %d: expected %s, got %v", i, tt.expected[i], p)
				sum = sum.Add(p)
			}
			// Parts always recombine into the original amount.
			assert.True(t, sum.Equal(tt.amount))
		})
	}

	assert.Nil(t, SplitEvenly(decimal.NewFromInt(100), 0))
}

func TestMinDecimal(t *testing.T) {
	a := decimal.NewFromInt(15000)
	b := decimal.NewFromInt(29500)
	assert.True(t, MinDecimal(a, b).Equal(a))
	assert.True(t, MinDecimal(b, a).Equal(a))
	assert.True(t, MinDecimal(a, a).Equal(a))
}
