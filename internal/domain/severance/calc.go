// Package severance computes a termination settlement from the contract dates,
// the termination type and the FGTS balance.
package severance

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"brecho/internal/domain/tax"
	"brecho/internal/platform/calendar"
)

const (
	baseNoticeDays    = 30
	noticeDaysPerYear = 3
	maxNoticeDays     = 90

	daysPerYear  = 365
	daysPerMonth = 30

	unemploymentMinYears = 0.5
)

var (
	thirty = decimal.NewFromInt(30)
	twelve = decimal.NewFromInt(12)
	three  = decimal.NewFromInt(3)
	half   = tax.Money("0.5")

	noCausePenalty   = tax.Money("0.40")
	agreementPenalty = tax.Money("0.20")
	agreementRelease = tax.Money("0.80")
)

// Input parses the dates and validates every field at once.
func (r Request) Input() (Input, error) {
	var check tax.Check
	admission, ok := calendar.Parse(r.AdmissionDate)
	if !ok {
		check.Add("data_admissao", "must be a valid date in YYYY-MM-DD format")
	}
	termination, ok := calendar.Parse(r.TerminationDate)
	if !ok {
		check.Add("data_demissao", "must be a valid date in YYYY-MM-DD format")
	}
	in := Input{
		GrossSalary:                r.GrossSalary,
		AdmissionDate:              admission,
		TerminationDate:            termination,
		Type:                       Type(r.Type),
		FGTSBalance:                r.FGTSBalance,
		NoticeWorked:               r.NoticeWorked,
		AccruedVacation:            r.AccruedVacation,
		ProportionalVacationMonths: r.ProportionalVacationMonths,
	}
	in.check(&check)
	if err := check.Err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

func (in Input) check(check *tax.Check) {
	check.Positive("salario_bruto", in.GrossSalary)
	if _, ok := ParseType(string(in.Type)); !ok {
		check.Add("tipo_rescisao", "must be one of sem_justa_causa, com_justa_causa, pedido_demissao, acordo")
	}
	check.NonNegative("saldo_fgts", in.FGTSBalance)
	check.IntBetween("meses_ferias_proporcionais", in.ProportionalVacationMonths, 0, 12)
}

// Validate does not reject a termination date before the admission date; the
// service time then comes out negative.
func (in Input) Validate() error {
	var check tax.Check
	in.check(&check)
	if in.AdmissionDate.IsZero() {
		check.Add("data_admissao", "is required")
	}
	if in.TerminationDate.IsZero() {
		check.Add("data_demissao", "is required")
	}
	return check.Err()
}

// serviceTime returns the whole days elapsed, the fractional years (days/365)
// and the month remainder (days mod 365, in 30-day months).
func serviceTime(admission, termination time.Time) (days int, years float64, months int) {
	diff := calendar.Day(termination).Sub(calendar.Day(admission))
	days = int(math.Floor(diff.Hours() / 24))
	years = float64(days) / daysPerYear
	months = int(math.Floor(float64(days%daysPerYear) / daysPerMonth))
	return days, years, months
}

// NoticeDays is 30 days plus 3 per full year of service, capped at 90.
func NoticeDays(years float64) int {
	return min(maxNoticeDays, baseNoticeDays+int(math.Floor(years))*noticeDaysPerYear)
}

type ledger struct {
	items      map[string]decimal.Decimal
	earnings   decimal.Decimal
	deductions decimal.Decimal
}

// earn and deduct round each item to cents before it reaches the totals.
func (l *ledger) earn(key string, amount decimal.Decimal) {
	rounded := tax.Round2(amount)
	l.items[key] = rounded
	l.earnings = l.earnings.Add(rounded)
}

func (l *ledger) deduct(key string, amount decimal.Decimal) {
	rounded := tax.Round2(amount)
	l.items[key] = rounded
	l.deductions = l.deductions.Add(rounded)
}

// Calculate computes the settlement items, the FGTS release and the summary.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	salary := in.GrossSalary
	days, years, months := serviceTime(in.AdmissionDate, in.TerminationDate)
	daily := salary.Div(thirty)
	monthly := salary.Div(twelve)

	l := &ledger{items: make(map[string]decimal.Decimal)}

	l.earn(ItemSalaryBalance, daily.Mul(decimal.NewFromInt(int64(in.TerminationDate.Day()))))

	switch in.Type {
	case NoCause, MutualAgreement:
		if in.NoticeWorked {
			l.items[ItemNoticeWorked] = decimal.Zero
			break
		}
		notice := daily.Mul(decimal.NewFromInt(int64(NoticeDays(years))))
		if in.Type == MutualAgreement {
			notice = notice.Mul(half)
		}
		l.earn(ItemNoticeIndemnified, notice)
	case Resignation:
		if !in.NoticeWorked {
			l.deduct(ItemNoticeDeduction, salary)
		}
	}

	if in.Type != ForCause {
		if in.AccruedVacation {
			l.earn(ItemAccruedVacation, salary)
			l.earn(ItemAccruedVacationBonus, salary.Div(three))
		}
		if in.ProportionalVacationMonths > 0 {
			vacation := monthly.Mul(decimal.NewFromInt(int64(in.ProportionalVacationMonths)))
			l.earn(ItemProportionalVacation, vacation)
			l.earn(ItemProportionalVacBonus, vacation.Div(three))
		}
		l.earn(ItemProportionalThirteenth, monthly.Mul(decimal.NewFromInt(int64(in.TerminationDate.Month()))))
	}

	fgts := settleFGTS(in.Type, in.FGTSBalance)
	l.items[ItemFGTSPenalty] = fgts.Penalty
	l.items[ItemFGTSWithdrawal] = fgts.Withdrawal

	net := l.earnings.Sub(l.deductions)

	return Result{
		Contract: Contract{
			GrossSalary:     salary,
			AdmissionDate:   in.AdmissionDate.Format(calendar.Layout),
			TerminationDate: in.TerminationDate.Format(calendar.Layout),
			ServiceTime: ServiceTime{
				Years:  int(math.Floor(years)),
				Months: months,
				Days:   days,
			},
		},
		Type:  in.Type,
		Items: l.items,
		Summary: Summary{
			TotalEarnings:         tax.Round2(l.earnings),
			TotalDeductions:       tax.Round2(l.deductions),
			Net:                   tax.Round2(net),
			FGTS:                  fgts,
			TotalReceivable:       tax.Round2(net.Add(fgts.Withdrawal)),
			UnemploymentInsurance: in.Type == NoCause && years >= unemploymentMinYears,
		},
	}, nil
}

// settleFGTS applies the penalty and release rules of the termination type.
// Resignation and for-cause keep the balance locked.
func settleFGTS(t Type, balance decimal.Decimal) FGTS {
	penalty, withdrawal := decimal.Zero, decimal.Zero
	switch t {
	case NoCause:
		penalty = balance.Mul(noCausePenalty)
		withdrawal = balance.Add(penalty)
	case MutualAgreement:
		penalty = balance.Mul(agreementPenalty)
		withdrawal = balance.Mul(agreementRelease).Add(penalty)
	}
	return FGTS{
		Balance:    balance,
		Penalty:    tax.Round2(penalty),
		Withdrawal: tax.Round2(withdrawal),
	}
}
