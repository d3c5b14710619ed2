package valueobject

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyFromFloat(100.50)
	b := NewMoneyFromFloat(50.25)

	assert.Equal(t, "150.75", a.Add(b).String())
	assert.Equal(t, "50.25", a.Subtract(b).String())
	assert.Equal(t, "-100.50", a.Negate().String())
	assert.True(t, a.GreaterThan(b))
	assert.True(t, b.LessThan(a))
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(NewMoneyFromFloat(100.5)))
}

func TestMoney_Round(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.004", "10.00"},
		{"10.005", "10.01"},
		{"10.999", "11.00"},
		{"0.001", "0.00"},
		{"33.333333", "33.33"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Round().String())
		})
	}
}

func TestMoney_SplitEvenly_ReconstructsTotal(t *testing.T) {
	tests := []struct {
		total string
		n     int
		want  []string
	}{
		{"300.00", 3, []string{"100.00", "100.00", "100.00"}},
		{"100.00", 3, []string{"33.33", "33.33", "33.34"}},
		{"0.10", 3, []string{"0.03", "0.03", "0.04"}},
		{"50.00", 1, []string{"50.00"}},
		{"200.00", 7, []string{"28.57", "28.57", "28.57", "28.57", "28.57", "28.57", "28.58"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.total, tt.n), func(t *testing.T) {
			total, err := NewMoneyFromString(tt.total)
			require.NoError(t, err)

			slices, err := total.SplitEvenly(tt.n)
			require.NoError(t, err)
			require.Len(t, slices, tt.n)

			sum := Zero()
			for i, s := range slices {
				assert.Equal(t, tt.want[i], s.String())
				sum = sum.Add(s)
			}
			assert.True(t, sum.Equals(total), "slices must sum exactly to total")
		})
	}
}

func TestMoney_SplitEvenly_PropertyReconstruction(t *testing.T) {
	// Any total >= 0.01*n must reconstruct exactly
	totals := []string{"0.05", "1.00", "99.99", "1234.56", "10000.01"}
	for _, ts := range totals {
		total, err := NewMoneyFromString(ts)
		require.NoError(t, err)
		for n := 1; n <= 12; n++ {
			if total.Amount().LessThan(MinimumSlice.Mul(decimal.NewFromInt(int64(n)))) {
				continue
			}
			slices, err := total.SplitEvenly(n)
			require.NoError(t, err)
			sum := Zero()
			for _, s := range slices {
				sum = sum.Add(s)
				assert.True(t, s.Amount().GreaterThanOrEqual(MinimumSlice),
					"slice below minimum for total=%s n=%d", ts, n)
			}
			assert.True(t, sum.Equals(total), "total=%s n=%d", ts, n)
		}
	}
}

func TestMoney_SplitEvenly_Errors(t *testing.T) {
	m := NewMoneyFromFloat(0.05)

	_, err := m.SplitEvenly(0)
	assert.Error(t, err)

	_, err = m.SplitEvenly(-1)
	assert.Error(t, err)

	// 0.05 cannot produce 6 slices of at least 0.01
	_, err = m.SplitEvenly(6)
	assert.Error(t, err)
}

func TestMoney_MaxSliceCount(t *testing.T) {
	assert.Equal(t, 0, NewMoneyFromFloat(0.005).MaxSliceCount())
	assert.Equal(t, 1, NewMoneyFromFloat(0.01).MaxSliceCount())
	assert.Equal(t, 5, NewMoneyFromFloat(0.05).MaxSliceCount())
	assert.Equal(t, 10000, NewMoneyFromFloat(100.00).MaxSliceCount())
}

func TestMoney_Discounts(t *testing.T) {
	m := NewMoneyFromFloat(200.00)

	pct := m.CalculatePercentage(decimal.NewFromInt(10))
	assert.Equal(t, "20.00", pct.Round().String())

	discounted := m.ApplyDiscount(decimal.NewFromInt(15))
	assert.Equal(t, "170.00", discounted.Round().String())
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyFromFloat(42.50)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"42.50"`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))

	// Bare numbers are accepted for operator-entered payloads
	require.NoError(t, json.Unmarshal([]byte("13.37"), &decoded))
	assert.Equal(t, "13.37", decoded.String())
}

func TestMoney_SQLRoundTrip(t *testing.T) {
	m := NewMoneyFromFloat(99.90)
	v, err := m.Value()
	require.NoError(t, err)

	var scanned Money
	require.NoError(t, scanned.Scan(v))
	assert.True(t, m.Equals(scanned))

	require.NoError(t, scanned.Scan([]byte("12.34")))
	assert.Equal(t, "12.34", scanned.String())

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(struct{}{}))
}
