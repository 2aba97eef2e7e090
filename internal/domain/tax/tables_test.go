package tax

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesValidate(t *testing.T) {
	require.NoError(t, DefaultTables().Validate())
}

func TestLoadTablesFile(t *testing.T) {
	loaded, err := LoadTables("../../../configs/tax_tables_2025.yaml")
	require.NoError(t, err)

	defaults := DefaultTables()
	assert.Equal(t, defaults.Year, loaded.Year)
	assert.True(t, defaults.INSS.Cap.Equal(loaded.INSS.Cap))
	assert.Len(t, loaded.IRRF.Brackets, len(defaults.IRRF.Brackets))
	assert.Equal(t, "27,5%", loaded.IRRF.Brackets[4].Label)
	assert.True(t, loaded.IRRF.Brackets[4].Open)
	assert.True(t, loaded.MEI.DAS[Services].Equal(Money("75.60")))
	assert.True(t, loaded.PresumedProfit[Services].Presumption.Equal(Money("32")))
	assert.True(t, loaded.PresumedProfit[Services].IRPJ.Equal(Money("15")))

	for _, gross := range []string{"1518", "3000", "6500.55", "12000"} {
		want := defaults.INSS.Withhold(Money(gross)).Amount
		got := loaded.INSS.Withhold(Money(gross)).Amount
		assert.True(t, want.Equal(got), "gross %s", gross)
	}
}

func TestLoadTablesEmptyPathUsesDefaults(t *testing.T) {
	tables, err := LoadTables("")
	require.NoError(t, err)
	assert.Equal(t, 2025, tables.Year)
}

func TestParseTablesRejectsInvalidSchedules(t *testing.T) {
	cases := map[string]string{
		"no inss brackets": `
year: 2025
inss: {cap: 100}
`,
		"open bracket not last": `
year: 2025
inss:
  cap: 100
  brackets: [{ceiling: 1000, rate: 0.1}]
irrf:
  brackets:
    - {rate: 0, label: Isento, open: true}
    - {ceiling: 5000, rate: 0.1, label: "10%"}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTables([]byte(doc))
			assert.True(t, errors.Is(err, ErrInvalidTables), "got %v", err)
		})
	}
}

func TestRound2HalfUp(t *testing.T) {
	cases := map[string]string{
		"0.005":    "0.01",
		"-0.005":   "0.00",
		"2.675":    "2.68",
		"36.55425": "36.55",
		"-1.235":   "-1.23",
		"253.4136": "253.41",
	}
	for in, want := range cases {
		assert.Equal(t, want, Round2(Money(in)).StringFixed(2), "Round2(%s)", in)
	}
}

func TestParseTablesRejectsIncompletePresumedProfit(t *testing.T) {
	raw, err := os.ReadFile("../../../configs/tax_tables_2025.yaml")
	require.NoError(t, err)

	doc := strings.NewReplacer("    surcharge_threshold: 20000\n", "", "    surcharge_rate: 10\n", "").Replace(string(raw))
	_, err = ParseTables([]byte(doc))
	assert.True(t, errors.Is(err, ErrInvalidTables), "got %v", err)
}

func TestValidateChecksPresumedProfitRates(t *testing.T) {
	mutations := map[string]func(*PresumedProfitRates){
		"zero presumption":     func(r *PresumedProfitRates) { r.Presumption = Money("0") },
		"missing threshold":    func(r *PresumedProfitRates) { r.SurchargeThreshold = Money("0") },
		"negative cofins":      func(r *PresumedProfitRates) { r.COFINS = Money("-1") },
		"irpj above 100":       func(r *PresumedProfitRates) { r.IRPJ = Money("150") },
		"presumption over 100": func(r *PresumedProfitRates) { r.Presumption = Money("101") },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			tables := DefaultTables()
			rates := tables.PresumedProfit[Services]
			mutate(&rates)
			tables.PresumedProfit[Services] = rates
			assert.True(t, errors.Is(tables.Validate(), ErrInvalidTables))
		})
	}
}
