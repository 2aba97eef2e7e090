// Package employees stores the employee records the payroll calculators are
// prefilled from.
package employees

import (
	"context"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Employee, error) {
	return s.store.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, emp Employee) (Employee, error) {
	return s.store.Create(ctx, normalize(emp))
}

func (s *Service) Update(ctx context.Context, id int64, emp Employee) (Employee, error) {
	return s.store.Update(ctx, id, normalize(emp))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// ToggleStatus flips an employee between active and inactive.
func (s *Service) ToggleStatus(ctx context.Context, id int64) (Employee, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	next := StatusActive
	if current.Status == StatusActive {
		next = StatusInactive
	}
	return s.store.SetStatus(ctx, id, next)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}

func normalize(emp Employee) Employee {
	emp.Name = strings.TrimSpace(emp.Name)
	emp.CPF = strings.TrimSpace(emp.CPF)
	emp.Role = strings.TrimSpace(emp.Role)
	emp.Department = strings.TrimSpace(emp.Department)
	emp.Email = strings.ToLower(strings.TrimSpace(emp.Email))
	emp.Phone = strings.TrimSpace(emp.Phone)
	if emp.Status == "" {
		emp.Status = StatusActive
	}
	return emp
}
