package employees

import "context"

type StoreAPI interface {
	List(ctx context.Context, filter Filter) ([]Employee, error)
	Get(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, id int64, emp Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status string) (Employee, error)
	Stats(ctx context.Context) (Stats, error)
}
