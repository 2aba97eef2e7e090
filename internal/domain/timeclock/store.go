package timeclock

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const punchColumns = `
    id, funcionario_id, funcionario_nome, to_char(data, 'YYYY-MM-DD'), to_char(hora, 'HH24:MI:SS'),
    tipo, COALESCE(observacao, ''), created_at`

func scanPunch(row pgx.Row) (Punch, error) {
	var p Punch
	err := row.Scan(&p.ID, &p.EmployeeID, &p.EmployeeName, &p.Date, &p.Time, &p.Type, &p.Note, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Punch{}, ErrNotFound
	}
	return p, err
}

func collectPunches(rows pgx.Rows) ([]Punch, error) {
	defer rows.Close()
	out := make([]Punch, 0)
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Register(ctx context.Context, punch Punch) (Punch, error) {
	return scanPunch(s.DB.QueryRow(ctx, `
    INSERT INTO time_clock (funcionario_id, funcionario_nome, data, hora, tipo, observacao)
    VALUES ($1, $2, $3::date, $4::time, $5, $6)
    RETURNING`+punchColumns,
		punch.EmployeeID, punch.EmployeeName, punch.Date, punch.Time, punch.Type, nullIfEmpty(punch.Note),
	))
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Punch, error) {
	var kind any
	if filter.Type != "" && filter.Type != TypeAll {
		kind = filter.Type
	}
	rows, err := s.DB.Query(ctx, `
    SELECT`+punchColumns+`
    FROM time_clock
    WHERE data >= $1::date AND data <= $2::date
      AND ($3::bigint IS NULL OR funcionario_id = $3)
      AND ($4::text IS NULL OR tipo = $4)
    ORDER BY data DESC, hora DESC
  `, filter.From, filter.To, filter.EmployeeID, kind)
	if err != nil {
		return nil, err
	}
	return collectPunches(rows)
}

func (s *Store) Get(ctx context.Context, id int64) (Punch, error) {
	return scanPunch(s.DB.QueryRow(ctx, `
    SELECT`+punchColumns+`
    FROM time_clock
    WHERE id = $1
  `, id))
}

func (s *Store) Update(ctx context.Context, id int64, punch Punch) (Punch, error) {
	return scanPunch(s.DB.QueryRow(ctx, `
    UPDATE time_clock
    SET data = $1::date,
        hora = $2::time,
        tipo = $3,
        observacao = $4
    WHERE id = $5
    RETURNING`+punchColumns,
		punch.Date, punch.Time, punch.Type, nullIfEmpty(punch.Note), id,
	))
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, `DELETE FROM time_clock WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Month(ctx context.Context, employeeID int64, year, month int) ([]Punch, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+punchColumns+`
    FROM time_clock
    WHERE funcionario_id = $1
      AND EXTRACT(MONTH FROM data) = $2
      AND EXTRACT(YEAR FROM data) = $3
    ORDER BY data, hora
  `, employeeID, month, year)
	if err != nil {
		return nil, err
	}
	return collectPunches(rows)
}

func (s *Store) Schedule(ctx context.Context) (Schedule, bool, error) {
	var sc Schedule
	err := s.DB.QueryRow(ctx, `
    SELECT to_char(seg_sex_entrada, 'HH24:MI'), to_char(seg_sex_saida, 'HH24:MI'),
           to_char(intervalo_inicio, 'HH24:MI'), to_char(intervalo_fim, 'HH24:MI'),
           to_char(sabado_entrada, 'HH24:MI'), to_char(sabado_saida, 'HH24:MI'),
           carga_horaria_diaria, tolerancia_minutos
    FROM work_schedule
    ORDER BY id
    LIMIT 1
  `).Scan(
		&sc.WeekdayIn, &sc.WeekdayOut, &sc.BreakStart, &sc.BreakEnd,
		&sc.SaturdayIn, &sc.SaturdayOut, &sc.DailyHours, &sc.ToleranceMinutes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Schedule{}, false, nil
	}
	if err != nil {
		return Schedule{}, false, err
	}
	return sc, true, nil
}

// SaveSchedule keeps a single row: the first one is updated in place.
func (s *Store) SaveSchedule(ctx context.Context, sc Schedule) (Schedule, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Schedule{}, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `SELECT id FROM work_schedule ORDER BY id LIMIT 1 FOR UPDATE`).Scan(&id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
      INSERT INTO work_schedule (seg_sex_entrada, seg_sex_saida, intervalo_inicio, intervalo_fim,
        sabado_entrada, sabado_saida, carga_horaria_diaria, tolerancia_minutos)
      VALUES ($1::time, $2::time, $3::time, $4::time, $5::time, $6::time, $7, $8)
    `, sc.WeekdayIn, sc.WeekdayOut, sc.BreakStart, sc.BreakEnd, sc.SaturdayIn, sc.SaturdayOut, sc.DailyHours, sc.ToleranceMinutes)
	case err == nil:
		_, err = tx.Exec(ctx, `
      UPDATE work_schedule
      SET seg_sex_entrada = $1::time,
          seg_sex_saida = $2::time,
          intervalo_inicio = $3::time,
          intervalo_fim = $4::time,
          sabado_entrada = $5::time,
          sabado_saida = $6::time,
          carga_horaria_diaria = $7,
          tolerancia_minutos = $8,
          updated_at = now()
      WHERE id = $9
    `, sc.WeekdayIn, sc.WeekdayOut, sc.BreakStart, sc.BreakEnd, sc.SaturdayIn, sc.SaturdayOut, sc.DailyHours, sc.ToleranceMinutes, id)
	}
	if err != nil {
		return Schedule{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Schedule{}, err
	}
	return sc, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
