package employees

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryStore keeps employees in process memory. It backs the service when no
// database is configured and in tests.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Employee
	now    func() time.Time
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{rows: make(map[int64]Employee), now: now}
}

func (m *MemoryStore) List(_ context.Context, filter Filter) ([]Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]Employee, 0, len(m.rows))
	for _, emp := range m.rows {
		if term != "" && !strings.Contains(strings.ToLower(emp.Name), term) && !strings.Contains(strings.ToLower(emp.CPF), term) {
			continue
		}
		if filter.Status != "" && filter.Status != StatusAll && emp.Status != filter.Status {
			continue
		}
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if filter.Offset > 0 {
		out = out[min(filter.Offset, len(out)):]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id int64) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp, ok := m.rows[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return emp, nil
}

func (m *MemoryStore) Create(_ context.Context, emp Employee) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	now := m.now()
	emp.ID = m.nextID
	emp.CreatedAt = now
	emp.UpdatedAt = now
	m.rows[emp.ID] = emp
	return emp, nil
}

func (m *MemoryStore) Update(_ context.Context, id int64, emp Employee) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.rows[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	emp.ID = id
	emp.CreatedAt = current.CreatedAt
	emp.UpdatedAt = m.now()
	m.rows[id] = emp
	return emp, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *MemoryStore) SetStatus(_ context.Context, id int64, status string) (Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp, ok := m.rows[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	emp.Status = status
	emp.UpdatedAt = m.now()
	m.rows[id] = emp
	return emp, nil
}

func (m *MemoryStore) Stats(_ context.Context) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := Stats{Payroll: decimal.Zero}
	for _, emp := range m.rows {
		stats.Total++
		switch emp.Status {
		case StatusActive:
			stats.Active++
			stats.Payroll = stats.Payroll.Add(emp.BaseSalary)
		case StatusInactive:
			stats.Inactive++
		}
	}
	return stats, nil
}
