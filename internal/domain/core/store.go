package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, first_name, last_name, email, level, created_at
    FROM employees
    ORDER BY level DESC, last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.Level, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id, first_name, last_name, email, level, created_at
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&e.ID, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.Level, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) ListAppraisalTypes(ctx context.Context) ([]AppraisalType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT t.id, t.name, COALESCE(r.id, ''), COALESCE(r.name, '')
    FROM appraisal_types t
    LEFT JOIN appraisal_ranges r ON r.appraisal_type_id = t.id
    ORDER BY t.name, r.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []AppraisalType
	index := map[string]int{}
	for rows.Next() {
		var typeID, typeName, rangeID, rangeName string
		if err := rows.Scan(&typeID, &typeName, &rangeID, &rangeName); err != nil {
			return nil, err
		}
		pos, ok := index[typeID]
		if !ok {
			types = append(types, AppraisalType{ID: typeID, Name: typeName})
			pos = len(types) - 1
			index[typeID] = pos
		}
		if rangeID != "" {
			types[pos].Ranges = append(types[pos].Ranges, AppraisalRange{ID: rangeID, Name: rangeName})
		}
	}
	return types, nil
}
