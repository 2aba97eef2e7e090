package timeclock

import "context"

type StoreAPI interface {
	Register(ctx context.Context, punch Punch) (Punch, error)
	List(ctx context.Context, filter ListFilter) ([]Punch, error)
	Get(ctx context.Context, id int64) (Punch, error)
	Update(ctx context.Context, id int64, punch Punch) (Punch, error)
	Delete(ctx context.Context, id int64) error
	Month(ctx context.Context, employeeID int64, year, month int) ([]Punch, error)
	// Schedule reports found=false when no schedule has been saved yet.
	Schedule(ctx context.Context) (schedule Schedule, found bool, err error)
	SaveSchedule(ctx context.Context, schedule Schedule) (Schedule, error)
}
