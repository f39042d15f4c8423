package appraisal

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

func (s *Store) EmployeeRefByID(ctx context.Context, employeeID string) (EmployeeRef, error) {
	var ref EmployeeRef
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id, first_name, last_name, email, level
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&ref.ID, &ref.UserID, &ref.FirstName, &ref.LastName, &ref.Email, &ref.Level)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeRef{}, ErrNotFound
	}
	if err != nil {
		return EmployeeRef{}, err
	}
	return ref, nil
}

func (s *Store) TypeExists(ctx context.Context, typeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM appraisal_types WHERE id = $1", typeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) RangeExists(ctx context.Context, rangeID, typeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM appraisal_ranges WHERE id = $1 AND appraisal_type_id = $2
  `, rangeID, typeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateAppraisal(ctx context.Context, a Appraisal) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO appraisals (appraisee_id, appraiser_id, reviewer_id, appraisal_type_id, range_id, start_date, end_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, a.AppraiseeID, a.AppraiserID, a.ReviewerID, a.TypeID, a.RangeID, a.StartDate, a.EndDate, a.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

const appraisalColumns = `
    id, appraisee_id, appraiser_id, reviewer_id, appraisal_type_id, range_id,
    start_date, end_date, status,
    appraiser_overall_rating, appraiser_overall_comment,
    reviewer_overall_rating, reviewer_overall_comment,
    created_at, updated_at`

func scanAppraisal(row pgx.Row) (Appraisal, error) {
	var a Appraisal
	err := row.Scan(
		&a.ID, &a.AppraiseeID, &a.AppraiserID, &a.ReviewerID, &a.TypeID, &a.RangeID,
		&a.StartDate, &a.EndDate, &a.Status,
		&a.AppraiserOverallRating, &a.AppraiserOverallComment,
		&a.ReviewerOverallRating, &a.ReviewerOverallComment,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Appraisal{}, ErrNotFound
	}
	if err != nil {
		return Appraisal{}, err
	}
	return a, nil
}

func (s *Store) GetAppraisal(ctx context.Context, appraisalID string) (Appraisal, error) {
	return scanAppraisal(s.DB.QueryRow(ctx, "SELECT"+appraisalColumns+" FROM appraisals WHERE id = $1", appraisalID))
}

func (s *Store) ListAppraisalsFor(ctx context.Context, employeeID string) ([]Appraisal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+appraisalColumns+`
    FROM appraisals
    WHERE appraisee_id = $1 OR appraiser_id = $1 OR reviewer_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appraisals []Appraisal
	for rows.Next() {
		a, err := scanAppraisal(rows)
		if err != nil {
			return nil, err
		}
		appraisals = append(appraisals, a)
	}
	return appraisals, nil
}

func (s *Store) UpdateAppraisalDetails(ctx context.Context, a Appraisal) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisals
    SET appraisee_id = $2, appraiser_id = $3, reviewer_id = $4,
        appraisal_type_id = $5, range_id = $6, start_date = $7, end_date = $8,
        updated_at = now()
    WHERE id = $1 AND status = $9
  `, a.ID, a.AppraiseeID, a.AppraiserID, a.ReviewerID, a.TypeID, a.RangeID, a.StartDate, a.EndDate, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotDraft
	}
	return nil
}

func (s *Store) DeleteAppraisal(ctx context.Context, appraisalID string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
    DELETE FROM goals
    WHERE id IN (SELECT goal_id FROM appraisal_goals WHERE appraisal_id = $1)
  `, appraisalID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, "DELETE FROM appraisals WHERE id = $1 AND status = $2", appraisalID, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotDraft
	}
	return tx.Commit(ctx)
}

func (s *Store) CreateGoal(ctx context.Context, goal Goal) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (title, description, performance_factor, importance, weightage, categories)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, goal.Title, goal.Description, goal.PerformanceFactor, goal.Importance, goal.Weightage, goal.Categories).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetGoal(ctx context.Context, goalID string) (Goal, error) {
	var goal Goal
	err := s.DB.QueryRow(ctx, `
    SELECT id, title, description, performance_factor, importance, weightage, categories
    FROM goals
    WHERE id = $1
  `, goalID).Scan(&goal.ID, &goal.Title, &goal.Description, &goal.PerformanceFactor, &goal.Importance, &goal.Weightage, &goal.Categories)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrGoalNotFound
	}
	if err != nil {
		return Goal{}, err
	}
	return goal, nil
}

func (s *Store) AttachGoal(ctx context.Context, appraisalID, goalID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO appraisal_goals (appraisal_id, goal_id)
    VALUES ($1,$2)
    RETURNING id
  `, appraisalID, goalID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM goals WHERE id = $1", goalID)
	return err
}

func (s *Store) UpdateGoal(ctx context.Context, goal Goal) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE goals
    SET title = $2, description = $3, performance_factor = $4, importance = $5, weightage = $6, categories = $7
    WHERE id = $1
  `, goal.ID, goal.Title, goal.Description, goal.PerformanceFactor, goal.Importance, goal.Weightage, goal.Categories)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *Store) RemoveGoal(ctx context.Context, appraisalID, goalID string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM appraisal_goals WHERE appraisal_id = $1 AND goal_id = $2", appraisalID, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	if _, err := tx.Exec(ctx, "DELETE FROM goals WHERE id = $1", goalID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) ListAppraisalGoals(ctx context.Context, appraisalID string) ([]AppraisalGoal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ag.id, ag.appraisal_id,
           g.id, g.title, g.description, g.performance_factor, g.importance, g.weightage, g.categories,
           ag.self_rating, ag.self_comment, ag.appraiser_rating, ag.appraiser_comment
    FROM appraisal_goals ag
    JOIN goals g ON g.id = ag.goal_id
    WHERE ag.appraisal_id = $1
    ORDER BY ag.created_at
  `, appraisalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AppraisalGoal
	for rows.Next() {
		var row AppraisalGoal
		if err := rows.Scan(&row.ID, &row.AppraisalID,
			&row.Goal.ID, &row.Goal.Title, &row.Goal.Description, &row.Goal.PerformanceFactor,
			&row.Goal.Importance, &row.Goal.Weightage, &row.Goal.Categories,
			&row.SelfRating, &row.SelfComment, &row.AppraiserRating, &row.AppraiserComment); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// UpdateStatus advances the status with the previous value as a guard, so a
// concurrent or replayed transition cannot regress or skip a stage.
func (s *Store) UpdateStatus(ctx context.Context, appraisalID string, from, to Status) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisals SET status = $3, updated_at = now()
    WHERE id = $1 AND status = $2
  `, appraisalID, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// SaveEvaluation persists one role's evaluation payload and the status
// advance in a single transaction. Either everything lands or nothing does.
func (s *Store) SaveEvaluation(ctx context.Context, a Appraisal, rows []AppraisalGoal, from Status) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		if _, err := tx.Exec(ctx, `
      UPDATE appraisal_goals
      SET self_rating = $2, self_comment = $3, appraiser_rating = $4, appraiser_comment = $5
      WHERE id = $1
    `, row.ID, row.SelfRating, row.SelfComment, row.AppraiserRating, row.AppraiserComment); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `
    UPDATE appraisals
    SET appraiser_overall_rating = $2, appraiser_overall_comment = $3,
        reviewer_overall_rating = $4, reviewer_overall_comment = $5,
        status = $6, updated_at = now()
    WHERE id = $1 AND status = $7
  `, a.ID, a.AppraiserOverallRating, a.AppraiserOverallComment,
		a.ReviewerOverallRating, a.ReviewerOverallComment, a.Status, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return tx.Commit(ctx)
}
