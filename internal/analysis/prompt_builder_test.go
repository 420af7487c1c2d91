package analysis

import (
	"testing"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0.5", want: "R$ 0,50"},
		{in: "59.90", want: "R$ 59,90"},
		{in: "1234.56", want: "R$ 1.234,56"},
		{in: "99999999.99", want: "R$ 99.999.999,99"},
		{in: "0.005", want: "R$ 0,01"},
		{in: "-1.5", want: "R$ -1,50"},
		{in: "123456789012345.67", want: "R$ 123.456.789.012.345,67"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestPeriod(t *testing.T) {
	assert.Equal(t, "todo o histórico", period(analytics.Range{}))
	assert.Equal(t, "desde 05/02/2026", period(analytics.Range{DateFrom: "2026-02-05"}))
	assert.Equal(t, "até 05/02/2026", period(analytics.Range{DateTo: "2026-02-05"}))
}

func TestHashSummary_Deterministic(t *testing.T) {
	summary := func() *analytics.Summary {
		return &analytics.Summary{
			Range: analytics.Range{OwnerID: "a", DateFrom: "2026-01-01"},
			KPIs:  analytics.KPIs{TotalRevenue: decimal.RequireFromString("10.00"), OrderCount: 1},
		}
	}

	h1, err := HashSummary(summary())
	require.NoError(t, err)
	h2, err := HashSummary(summary())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// The owner is not part of the encoded data.
	other := summary()
	other.Range.OwnerID = "b"
	h3, err := HashSummary(other)
	require.NoError(t, err)
	assert.Equal(t, h1, h3)

	changed := summary()
	changed.KPIs.OrderCount = 2
	h4, err := HashSummary(changed)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4)
}
