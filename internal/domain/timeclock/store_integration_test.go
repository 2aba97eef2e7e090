//go:build integration

package timeclock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"brecho/internal/domain/timeclock"
	"brecho/internal/platform/db/dbtest"
)

func TestStorePunchesAndSummary(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)

	var employeeID int64
	err := pool.QueryRow(ctx, `
    INSERT INTO employees (nome, cargo, salario_base, data_admissao)
    VALUES ('Carla Dias', 'Vendedora', 2200, '2024-01-10')
    RETURNING id
  `).Scan(&employeeID)
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC) }
	svc := timeclock.NewService(timeclock.NewStore(pool), clock)

	punches := []timeclock.Punch{
		{Date: "2025-03-10", Time: "08:00", Type: timeclock.TypeIn},
		{Date: "2025-03-10", Time: "18:30", Type: timeclock.TypeOut},
		{Date: "2025-03-11", Time: "08:00", Type: timeclock.TypeIn},
		{Date: "2025-03-11", Time: "17:00", Type: timeclock.TypeOut, Note: "saiu cedo"},
	}
	var first timeclock.Punch
	for i, p := range punches {
		p.EmployeeID = &employeeID
		p.EmployeeName = "Carla Dias"
		saved, err := svc.Register(ctx, p)
		require.NoError(t, err)
		if i == 0 {
			first = saved
		}
	}
	require.Equal(t, "08:00:00", first.Time)
	require.Equal(t, "2025-03-10", first.Date)

	listed, err := svc.List(ctx, timeclock.ListFilter{Type: timeclock.TypeOut})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "saiu cedo", listed[0].Note)

	summary, err := svc.MonthSummary(ctx, employeeID, 2025, 3)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Records)
	require.Equal(t, 2, summary.DaysWorked)
	require.Equal(t, 630+540, summary.TotalMinutes)
	require.Equal(t, 150+60, summary.OvertimeMinutes)

	first.Time = "07:45"
	updated, err := svc.Update(ctx, first.ID, first)
	require.NoError(t, err)
	require.Equal(t, "07:45:00", updated.Time)

	require.NoError(t, svc.Delete(ctx, first.ID))
	require.ErrorIs(t, svc.Delete(ctx, first.ID), timeclock.ErrNotFound)
}

func TestStoreScheduleKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	svc := timeclock.NewService(timeclock.NewStore(pool), nil)

	sc, err := svc.Schedule(ctx)
	require.NoError(t, err)
	require.Equal(t, timeclock.DefaultSchedule(), sc)

	saturdayIn, saturdayOut := "09:00", "13:00"
	want := timeclock.Schedule{
		WeekdayIn:        "09:00",
		WeekdayOut:       "18:00",
		SaturdayIn:       &saturdayIn,
		SaturdayOut:      &saturdayOut,
		DailyHours:       8,
		ToleranceMinutes: 15,
	}
	_, err = svc.SaveSchedule(ctx, want)
	require.NoError(t, err)
	want.ToleranceMinutes = 5
	_, err = svc.SaveSchedule(ctx, want)
	require.NoError(t, err)

	got, err := svc.Schedule(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	var rows int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM work_schedule").Scan(&rows))
	require.Equal(t, 1, rows)
}
