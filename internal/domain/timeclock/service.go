// Package timeclock records employee punches, holds the shop work schedule and
// summarizes worked hours per month for the payroll calculators.
package timeclock

import (
	"context"
	"time"
)

// DefaultListDays is how far back List looks when no range is given.
const DefaultListDays = 7

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Register fills a missing date or time from the service clock.
func (s *Service) Register(ctx context.Context, punch Punch) (Punch, error) {
	now := s.now()
	if punch.Date == "" {
		punch.Date = now.Format(DateLayout)
	}
	if punch.Time == "" {
		punch.Time = now.Format(TimeLayout)
	}
	punch.Time = NormalizeClock(punch.Time)
	return s.store.Register(ctx, punch)
}

// List returns the punches in [From, To]; without a full range it covers the
// last seven days.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Punch, error) {
	if filter.From == "" || filter.To == "" {
		today := s.now()
		filter.From = today.AddDate(0, 0, -DefaultListDays).Format(DateLayout)
		filter.To = today.Format(DateLayout)
	}
	return s.store.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (Punch, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, punch Punch) (Punch, error) {
	punch.Time = NormalizeClock(punch.Time)
	return s.store.Update(ctx, id, punch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// Schedule returns the saved schedule or the default one.
func (s *Service) Schedule(ctx context.Context) (Schedule, error) {
	sc, found, err := s.store.Schedule(ctx)
	if err != nil {
		return Schedule{}, err
	}
	if !found {
		return DefaultSchedule(), nil
	}
	return sc, nil
}

func (s *Service) SaveSchedule(ctx context.Context, sc Schedule) (Schedule, error) {
	return s.store.SaveSchedule(ctx, sc)
}

// MonthSummary summarizes one employee's punches for month/year against the
// schedule's daily hours.
func (s *Service) MonthSummary(ctx context.Context, employeeID int64, year, month int) (Summary, error) {
	punches, err := s.store.Month(ctx, employeeID, year, month)
	if err != nil {
		return Summary{}, err
	}
	sc, err := s.Schedule(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(punches, sc.DailyHours), nil
}
