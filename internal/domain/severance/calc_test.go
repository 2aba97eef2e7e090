package severance

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brecho/internal/domain/tax"
	"brecho/internal/platform/calendar"
)

func date(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, ok := calendar.Parse(raw)
	require.True(t, ok, raw)
	return parsed
}

func baseInput(t *testing.T, kind Type) Input {
	return Input{
		GrossSalary:                tax.Money("3000"),
		AdmissionDate:              date(t, "2020-01-15"),
		TerminationDate:            date(t, "2024-06-20"),
		Type:                       kind,
		FGTSBalance:                tax.Money("5000"),
		ProportionalVacationMonths: 6,
	}
}

func item(t *testing.T, r Result, key string) string {
	t.Helper()
	v, ok := r.Items[key]
	require.True(t, ok, "missing item %s", key)
	return v.StringFixed(2)
}

func TestCalculateNoCause(t *testing.T) {
	got, err := Calculate(baseInput(t, NoCause))
	require.NoError(t, err)

	assert.Equal(t, ServiceTime{Years: 4, Months: 5, Days: 1618}, got.Contract.ServiceTime)
	assert.Equal(t, "2020-01-15", got.Contract.AdmissionDate)

	assert.Equal(t, "2000.00", item(t, got, ItemSalaryBalance))
	assert.Equal(t, "4200.00", item(t, got, ItemNoticeIndemnified))
	assert.Equal(t, "1500.00", item(t, got, ItemProportionalVacation))
	assert.Equal(t, "500.00", item(t, got, ItemProportionalVacBonus))
	assert.Equal(t, "1500.00", item(t, got, ItemProportionalThirteenth))

	assert.Equal(t, "9700.00", got.Summary.TotalEarnings.StringFixed(2))
	assert.Equal(t, "0.00", got.Summary.TotalDeductions.StringFixed(2))
	assert.Equal(t, "9700.00", got.Summary.Net.StringFixed(2))
	assert.Equal(t, "2000.00", got.Summary.FGTS.Penalty.StringFixed(2))
	assert.Equal(t, "7000.00", got.Summary.FGTS.Withdrawal.StringFixed(2))
	assert.Equal(t, "16700.00", got.Summary.TotalReceivable.StringFixed(2))
	assert.True(t, got.Summary.UnemploymentInsurance)
}

func TestCalculateMutualAgreement(t *testing.T) {
	got, err := Calculate(baseInput(t, MutualAgreement))
	require.NoError(t, err)

	assert.Equal(t, "2100.00", item(t, got, ItemNoticeIndemnified))
	assert.Equal(t, "7600.00", got.Summary.Net.StringFixed(2))
	assert.Equal(t, "1000.00", got.Summary.FGTS.Penalty.StringFixed(2))
	assert.Equal(t, "5000.00", got.Summary.FGTS.Withdrawal.StringFixed(2))
	assert.False(t, got.Summary.UnemploymentInsurance)
}

func TestCalculateResignationChargesUnworkedNotice(t *testing.T) {
	got, err := Calculate(baseInput(t, Resignation))
	require.NoError(t, err)

	assert.Equal(t, "3000.00", item(t, got, ItemNoticeDeduction))
	assert.NotContains(t, got.Items, ItemNoticeIndemnified)
	assert.Equal(t, "5500.00", got.Summary.TotalEarnings.StringFixed(2))
	assert.Equal(t, "3000.00", got.Summary.TotalDeductions.StringFixed(2))
	assert.Equal(t, "2500.00", got.Summary.Net.StringFixed(2))
	assert.True(t, got.Summary.FGTS.Penalty.IsZero())
	assert.True(t, got.Summary.FGTS.Withdrawal.IsZero())
	assert.Equal(t, "2500.00", got.Summary.TotalReceivable.StringFixed(2))
	assert.False(t, got.Summary.UnemploymentInsurance)
}

func TestCalculateForCausePaysOnlySalaryBalance(t *testing.T) {
	in := baseInput(t, ForCause)
	in.AccruedVacation = true

	got, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, "2000.00", item(t, got, ItemSalaryBalance))
	for _, key := range []string{
		ItemNoticeIndemnified,
		ItemNoticeDeduction,
		ItemAccruedVacation,
		ItemProportionalVacation,
		ItemProportionalThirteenth,
	} {
		assert.NotContains(t, got.Items, key)
	}
	assert.Equal(t, "2000.00", got.Summary.Net.StringFixed(2))
	assert.True(t, got.Summary.FGTS.Withdrawal.IsZero())
}

func TestCalculateAccruedVacation(t *testing.T) {
	in := baseInput(t, NoCause)
	in.AccruedVacation = true
	in.ProportionalVacationMonths = 0

	got, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, "3000.00", item(t, got, ItemAccruedVacation))
	assert.Equal(t, "1000.00", item(t, got, ItemAccruedVacationBonus))
	assert.NotContains(t, got.Items, ItemProportionalVacation)
}

func TestCalculateWorkedNotice(t *testing.T) {
	in := baseInput(t, NoCause)
	in.NoticeWorked = true

	got, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, "0.00", item(t, got, ItemNoticeWorked))
	assert.NotContains(t, got.Items, ItemNoticeIndemnified)
	assert.Equal(t, "5500.00", got.Summary.TotalEarnings.StringFixed(2))
}

func TestNoticeDays(t *testing.T) {
	cases := []struct {
		years float64
		want  int
	}{
		{0, 30},
		{0.99, 30},
		{1, 33},
		{4.43, 42},
		{19.9, 87},
		{20, 90},
		{34.2, 90},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NoticeDays(tc.years), "years %v", tc.years)
	}
}

func TestUnemploymentInsuranceNeedsSixMonths(t *testing.T) {
	in := baseInput(t, NoCause)
	in.AdmissionDate = date(t, "2024-01-01")

	got, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 171, got.Contract.ServiceTime.Days)
	assert.False(t, got.Summary.UnemploymentInsurance)

	in.AdmissionDate = date(t, "2023-12-01")
	got, err = Calculate(in)
	require.NoError(t, err)
	assert.True(t, got.Summary.UnemploymentInsurance)
}

// Dates out of order are accepted and produce a negative service time.
func TestCalculateReversedDates(t *testing.T) {
	in := baseInput(t, NoCause)
	in.AdmissionDate = date(t, "2024-06-30")

	got, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, -10, got.Contract.ServiceTime.Days)
	assert.Equal(t, "2700.00", item(t, got, ItemNoticeIndemnified))
}

func TestCalculateRoundsEachItem(t *testing.T) {
	in := baseInput(t, NoCause)
	in.GrossSalary = tax.Money("2345.67")

	got, err := Calculate(in)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, key := range []string{
		ItemSalaryBalance,
		ItemNoticeIndemnified,
		ItemProportionalVacation,
		ItemProportionalVacBonus,
		ItemProportionalThirteenth,
	} {
		sum = sum.Add(got.Items[key])
	}
	assert.True(t, sum.Equal(got.Summary.TotalEarnings), "sum %s total %s", sum, got.Summary.TotalEarnings)
	assert.Equal(t, "1563.78", item(t, got, ItemSalaryBalance))
}

func TestRequestInput(t *testing.T) {
	in, err := Request{
		GrossSalary:     tax.Money("3000"),
		AdmissionDate:   "2020-01-15T10:00:00-03:00",
		TerminationDate: "2024-06-20",
		Type:            "acordo",
	}.Input()
	require.NoError(t, err)
	assert.Equal(t, MutualAgreement, in.Type)
	assert.Equal(t, date(t, "2020-01-15"), in.AdmissionDate)

	_, err = Request{
		GrossSalary:                tax.Money("-1"),
		AdmissionDate:              "15/01/2020",
		TerminationDate:            "2024-06-20",
		Type:                       "demitido",
		FGTSBalance:                tax.Money("-10"),
		ProportionalVacationMonths: 13,
	}.Input()

	var verr *tax.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		fields = append(fields, issue.Field)
	}
	assert.Equal(t, []string{
		"data_admissao",
		"meses_ferias_proporcionais",
		"salario_bruto",
		"saldo_fgts",
		"tipo_rescisao",
	}, fields)
}

func TestRequestInputRejectsOversizedAmounts(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{
		"salario_bruto": 1e5000000,
		"data_admissao": "2020-01-15",
		"data_demissao": "2024-06-20",
		"tipo_rescisao": "sem_justa_causa",
		"saldo_fgts": 1e-300000
	}`), &req))

	_, err := req.Input()

	var verr *tax.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 2)
	assert.Equal(t, "salario_bruto", verr.Issues[0].Field)
	assert.Equal(t, "saldo_fgts", verr.Issues[1].Field)
}
