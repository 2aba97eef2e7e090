package timeclock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps punches and the schedule in process memory. It backs the
// service when no database is configured and in tests.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	punches  map[int64]Punch
	schedule *Schedule
	now      func() time.Time
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{punches: make(map[int64]Punch), now: now}
}

func (m *MemoryStore) Register(_ context.Context, punch Punch) (Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	punch.ID = m.nextID
	punch.Time = NormalizeClock(punch.Time)
	punch.CreatedAt = m.now()
	m.punches[punch.ID] = punch
	return punch, nil
}

func (m *MemoryStore) List(_ context.Context, filter ListFilter) ([]Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Punch, 0)
	for _, p := range m.punches {
		if p.Date < filter.From || p.Date > filter.To {
			continue
		}
		if filter.EmployeeID != nil && (p.EmployeeID == nil || *p.EmployeeID != *filter.EmployeeID) {
			continue
		}
		if filter.Type != "" && filter.Type != TypeAll && p.Type != filter.Type {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id int64) (Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.punches[id]
	if !ok {
		return Punch{}, ErrNotFound
	}
	return p, nil
}

func (m *MemoryStore) Update(_ context.Context, id int64, punch Punch) (Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.punches[id]
	if !ok {
		return Punch{}, ErrNotFound
	}
	current.Date = punch.Date
	current.Time = NormalizeClock(punch.Time)
	current.Type = punch.Type
	current.Note = punch.Note
	m.punches[id] = current
	return current, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.punches[id]; !ok {
		return ErrNotFound
	}
	delete(m.punches, id)
	return nil
}

func (m *MemoryStore) Month(_ context.Context, employeeID int64, year, month int) ([]Punch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	out := make([]Punch, 0)
	for _, p := range m.punches {
		if p.EmployeeID != nil && *p.EmployeeID == employeeID && strings.HasPrefix(p.Date, prefix) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (m *MemoryStore) Schedule(_ context.Context) (Schedule, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.schedule == nil {
		return Schedule{}, false, nil
	}
	return *m.schedule, true, nil
}

func (m *MemoryStore) SaveSchedule(_ context.Context, sc Schedule) (Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule = &sc
	return sc, nil
}
