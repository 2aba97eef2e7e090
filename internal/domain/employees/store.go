package employees

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, nome, COALESCE(cpf, ''), cargo, COALESCE(departamento, ''), salario_base, data_admissao,
    dependentes, status, COALESCE(email, ''), COALESCE(telefone, ''), created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.CPF, &emp.Role, &emp.Department, &emp.BaseSalary, &emp.AdmissionDate,
		&emp.Dependents, &emp.Status, &emp.Email, &emp.Phone, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Employee, error) {
	var search, status, limit any
	if term := strings.TrimSpace(filter.Search); term != "" {
		search = "%" + term + "%"
	}
	if filter.Status != "" && filter.Status != StatusAll {
		status = filter.Status
	}
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE ($1::text IS NULL OR nome ILIKE $1 OR cpf ILIKE $1)
      AND ($2::text IS NULL OR status = $2)
    ORDER BY nome
    LIMIT $3 OFFSET $4
  `, search, status, limit, max(filter.Offset, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    INSERT INTO employees (nome, cpf, cargo, departamento, salario_base, data_admissao, dependentes, status, email, telefone)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING`+employeeColumns,
		emp.Name, nullIfEmpty(emp.CPF), emp.Role, nullIfEmpty(emp.Department), emp.BaseSalary, emp.AdmissionDate,
		emp.Dependents, emp.Status, nullIfEmpty(emp.Email), nullIfEmpty(emp.Phone),
	))
}

func (s *Store) Update(ctx context.Context, id int64, emp Employee) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    UPDATE employees
    SET nome = $1,
        cpf = $2,
        cargo = $3,
        departamento = $4,
        salario_base = $5,
        data_admissao = $6,
        dependentes = $7,
        status = $8,
        email = $9,
        telefone = $10,
        updated_at = now()
    WHERE id = $11
    RETURNING`+employeeColumns,
		emp.Name, nullIfEmpty(emp.CPF), emp.Role, nullIfEmpty(emp.Department), emp.BaseSalary, emp.AdmissionDate,
		emp.Dependents, emp.Status, nullIfEmpty(emp.Email), nullIfEmpty(emp.Phone), id,
	))
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetStatus(ctx context.Context, id int64, status string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    UPDATE employees
    SET status = $1, updated_at = now()
    WHERE id = $2
    RETURNING`+employeeColumns, status, id))
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(*),
           COUNT(*) FILTER (WHERE status = 'ativo'),
           COUNT(*) FILTER (WHERE status = 'inativo'),
           COALESCE(SUM(salario_base) FILTER (WHERE status = 'ativo'), 0)
    FROM employees
  `).Scan(&stats.Total, &stats.Active, &stats.Inactive, &stats.Payroll)
	return stats, err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
