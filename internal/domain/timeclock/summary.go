package timeclock

import "sort"

// Summarize totals the worked minutes of a month of punches. An entrada opens
// a pair and the next saida on the same date closes it; unmatched punches are
// ignored. Overtime is the total beyond dailyHours times the worked days.
func Summarize(punches []Punch, dailyHours int) Summary {
	if dailyHours <= 0 {
		dailyHours = DefaultDailyHours
	}
	ordered := make([]Punch, len(punches))
	copy(ordered, punches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return NormalizeClock(ordered[i].Time) < NormalizeClock(ordered[j].Time)
	})

	total := 0
	days := make(map[string]struct{})
	var open *Punch
	for i := range ordered {
		p := &ordered[i]
		switch {
		case p.Type == TypeIn:
			open = p
		case p.Type == TypeOut && open != nil && open.Date == p.Date:
			in, okIn := clockMinutes(open.Time)
			out, okOut := clockMinutes(p.Time)
			if okIn && okOut {
				total += out - in
				days[p.Date] = struct{}{}
			}
			open = nil
		}
	}

	expected := len(days) * dailyHours * 60
	overtime := max(0, total-expected)
	return Summary{
		TotalMinutes:     total,
		TotalHours:       total / 60,
		RemainderMinutes: total % 60,
		DaysWorked:       len(days),
		OvertimeMinutes:  overtime,
		OvertimeHours:    overtime / 60,
		Records:          len(punches),
	}
}
