package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestINSSWithhold(t *testing.T) {
	table := DefaultTables().INSS

	cases := []struct {
		name      string
		gross     string
		amount    string
		effective string
	}{
		{"zero", "0", "0.00", "0.00"},
		{"first ceiling", "1518.00", "113.85", "7.50"},
		{"third bracket", "3000.00", "253.41", "8.45"},
		{"last ceiling hits cap", "8157.41", "951.63", "11.67"},
		{"above ceiling", "10000.00", "951.63", "9.52"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := table.Withhold(Money(tc.gross))
			assert.Equal(t, tc.amount, got.Amount.StringFixed(2))
			assert.Equal(t, tc.effective, got.EffectiveRate.StringFixed(2))
		})
	}
}

func TestINSSMonotonicAndCapped(t *testing.T) {
	table := DefaultTables().INSS
	step := Money("37.13")
	previous := decimal.Zero
	for gross := decimal.Zero; gross.LessThan(Money("12000")); gross = gross.Add(step) {
		got := table.Withhold(gross).Amount
		assert.True(t, got.GreaterThanOrEqual(previous), "INSS(%s)=%s decreased from %s", gross, got, previous)
		assert.True(t, got.LessThanOrEqual(table.Cap), "INSS(%s)=%s above cap", gross, got)
		previous = got
	}
}

func TestINSSCapIsHardLimit(t *testing.T) {
	table := INSSTable{
		Brackets: []INSSBracket{{Ceiling: Money("100000"), Rate: Money("0.5")}},
		Cap:      Money("10"),
	}
	got := table.Withhold(Money("1000"))
	assert.Equal(t, "10.00", got.Amount.StringFixed(2))
}
