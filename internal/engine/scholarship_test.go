package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/campuspay/fee-engine/internal/domain"
)

func makeInstallments(payables ...int64) []*domain.Installment {
	out := make([]*domain.Installment, 0, len(payables))
	for i, p := range payables {
		out = append(out, &domain.Installment{
			InstallmentNumber: 1,
			SemesterNumber:    i + 1,
			Payable:           decimal.NewFromInt(p),
		})
	}
	return out
}

func TestAllocateScholarship(t *testing.T) {
	tests := []struct {
		name            string
		payables        []int64
		scholarship     int64
		expectedPerInst []int64
		expectedPayable []int64
		expectedLeft    int64
	}{
		{
			name:            "fits entirely in last installment",
			payables:        []int64{100000, 100000, 100000, 100000},
			scholarship:     100000,
			expectedPerInst: []int64{0, 0, 0, 100000},
			expectedPayable: []int64{100000, 100000, 100000, 0},
			expectedLeft:    0,
		},
		{
			name:            "spills backward across installments",
			payables:        []int64{100000, 100000, 100000},
			scholarship:     150000,
			expectedPerInst: []int64{0, 50000, 100000},
			expectedPayable: []int64{100000, 50000, 0},
			expectedLeft:    0,
		},
		{
			name:            "zero scholarship touches nothing",
			payables:        []int64{50000, 50000},
			scholarship:     0,
			expectedPerInst: []int64{0, 0},
			expectedPayable: []int64{50000, 50000},
			expectedLeft:    0,
		},
		{
			name:            "exceeds total and reports the remainder",
			payables:        []int64{30000, 30000},
			scholarship:     100000,
			expectedPerInst: []int64{30000, 30000},
			expectedPayable: []int64{0, 0},
			expectedLeft:    40000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installments := makeInstallments(tt.payables...)
			left := AllocateScholarship(installments, decimal.NewFromInt(tt.scholarship))

			assert.True(t, left.Equal(decimal.NewFromInt(tt.expectedLeft)),
				"expected remainder %d, got %v", tt.expectedLeft, left)

			applied := decimal.Zero
			for i, inst := range installments {
				assert.True(t, inst.ScholarshipAmount.Equal(decimal.NewFromInt(tt.expectedPerInst[i])),
					"installment %d scholarship: expected %d, got %v", i, tt.expectedPerInst[i], inst.ScholarshipAmount)
				assert.True(t, inst.Payable.Equal(decimal.NewFromInt(tt.expectedPayable[i])),
					"installment %d payable: expected %d, got %v", i, tt.expectedPayable[i], inst.Payable)
				assert.False(t, inst.Payable.IsNegative(), "payable went negative")
				applied = applied.Add(inst.ScholarshipAmount)
			}

			// Sum of applied scholarship equals min(total, sum of payables).
			total := decimal.Zero
			for _, p := range tt.payables {
				total = total.Add(decimal.NewFromInt(p))
			}
			want := decimal.Min(decimal.NewFromInt(tt.scholarship), total)
			assert.True(t, applied.Equal(want))
		})
	}
}
