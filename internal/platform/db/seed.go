package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/domain/auth"
	"appraisal/internal/platform/config"
)

// Seed is idempotent: every insert checks for an existing row first, so it is
// safe to run on each start.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAppraisalTypes(ctx, pool); err != nil {
		return err
	}
	if err := ensureGoalTemplates(ctx, pool); err != nil {
		return err
	}

	if cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
		if _, err := ensureEmployee(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword, "Admin", "User", 5); err != nil {
			return err
		}
	}

	if cfg.SeedSampleData {
		if err := ensureSampleEmployees(ctx, pool); err != nil {
			return err
		}
	}
	return nil
}

func ensureAppraisalTypes(ctx context.Context, pool *pgxpool.Pool) error {
	types := map[string][]string{
		"Annual":    {"Full Year", "H1", "H2"},
		"Probation": {"First 3 Months", "Extended"},
		"Project":   {},
	}
	for name, ranges := range types {
		var typeID string
		err := pool.QueryRow(ctx, "SELECT id FROM appraisal_types WHERE name = $1", name).Scan(&typeID)
		if err != nil {
			if err := pool.QueryRow(ctx, "INSERT INTO appraisal_types (name) VALUES ($1) RETURNING id", name).Scan(&typeID); err != nil {
				return err
			}
		}
		for _, rangeName := range ranges {
			if _, err := pool.Exec(ctx, `
        INSERT INTO appraisal_ranges (appraisal_type_id, name)
        VALUES ($1, $2)
        ON CONFLICT (appraisal_type_id, name) DO NOTHING
      `, typeID, rangeName); err != nil {
				return err
			}
		}
	}
	return nil
}

type templateSeed struct {
	title             string
	description       string
	performanceFactor string
	importance        string
	weightage         int
	categories        []string
}

func ensureGoalTemplates(ctx context.Context, pool *pgxpool.Pool) error {
	headers := map[string][]templateSeed{
		"Engineering": {
			{"Delivery", "Ship committed work on schedule", "Execution", "High", 40, []string{"delivery"}},
			{"Code Quality", "Keep defect rates low and reviews thorough", "Craftsmanship", "High", 30, []string{"quality"}},
			{"Collaboration", "Support teammates and share knowledge", "Teamwork", "Medium", 30, []string{"teamwork"}},
		},
		"Leadership": {
			{"Team Growth", "Coach direct reports and grow their skills", "People", "High", 50, []string{"people"}},
			{"Planning", "Plan quarters realistically and transparently", "Execution", "Medium", 50, []string{"planning"}},
		},
	}
	for headerTitle, tmpls := range headers {
		var headerID string
		err := pool.QueryRow(ctx, "SELECT id FROM goal_template_headers WHERE title = $1", headerTitle).Scan(&headerID)
		if err != nil {
			if err := pool.QueryRow(ctx, "INSERT INTO goal_template_headers (title) VALUES ($1) RETURNING id", headerTitle).Scan(&headerID); err != nil {
				return err
			}
		}
		for _, tmpl := range tmpls {
			var count int
			if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM goal_templates WHERE header_id = $1 AND title = $2", headerID, tmpl.title).Scan(&count); err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if _, err := pool.Exec(ctx, `
        INSERT INTO goal_templates (header_id, title, description, performance_factor, importance, weightage, categories)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
      `, headerID, tmpl.title, tmpl.description, tmpl.performanceFactor, tmpl.importance, tmpl.weightage, tmpl.categories); err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureEmployee(ctx context.Context, pool *pgxpool.Pool, email, password, firstName, lastName string, level int) (string, error) {
	var employeeID string
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE email = $1", email).Scan(&employeeID)
	if err == nil {
		return employeeID, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	var userID string
	if err := pool.QueryRow(ctx, `
    INSERT INTO users (email, password_hash)
    VALUES ($1, $2)
    ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
    RETURNING id
  `, email, hash).Scan(&userID); err != nil {
		return "", err
	}
	if err := pool.QueryRow(ctx, `
    INSERT INTO employees (user_id, first_name, last_name, email, level)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, userID, firstName, lastName, email, level).Scan(&employeeID); err != nil {
		return "", err
	}
	return employeeID, nil
}

func ensureSampleEmployees(ctx context.Context, pool *pgxpool.Pool) error {
	samples := []struct {
		email     string
		firstName string
		lastName  string
		level     int
	}{
		{"asha.rao@example.com", "Asha", "Rao", 1},
		{"ben.carter@example.com", "Ben", "Carter", 1},
		{"carol.diaz@example.com", "Carol", "Diaz", 2},
		{"dev.patel@example.com", "Dev", "Patel", 3},
		{"erin.koch@example.com", "Erin", "Koch", 4},
	}
	for _, sample := range samples {
		if _, err := ensureEmployee(ctx, pool, sample.email, "ChangeMe123!", sample.firstName, sample.lastName, sample.level); err != nil {
			return err
		}
	}
	return nil
}
