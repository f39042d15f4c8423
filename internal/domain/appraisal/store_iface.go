package appraisal

import "context"

// StoreAPI is the persistence surface the service drives. The pgx
// implementation lives in store.go; tests substitute an in-memory fake.
type StoreAPI interface {
	EmployeeRefByID(ctx context.Context, employeeID string) (EmployeeRef, error)
	TypeExists(ctx context.Context, typeID string) (bool, error)
	RangeExists(ctx context.Context, rangeID, typeID string) (bool, error)

	CreateAppraisal(ctx context.Context, a Appraisal) (string, error)
	GetAppraisal(ctx context.Context, appraisalID string) (Appraisal, error)
	ListAppraisalsFor(ctx context.Context, employeeID string) ([]Appraisal, error)
	UpdateAppraisalDetails(ctx context.Context, a Appraisal) error
	DeleteAppraisal(ctx context.Context, appraisalID string) error

	CreateGoal(ctx context.Context, goal Goal) (string, error)
	GetGoal(ctx context.Context, goalID string) (Goal, error)
	AttachGoal(ctx context.Context, appraisalID, goalID string) (string, error)
	DeleteGoal(ctx context.Context, goalID string) error
	UpdateGoal(ctx context.Context, goal Goal) error
	RemoveGoal(ctx context.Context, appraisalID, goalID string) error
	ListAppraisalGoals(ctx context.Context, appraisalID string) ([]AppraisalGoal, error)

	UpdateStatus(ctx context.Context, appraisalID string, from, to Status) error
	SaveEvaluation(ctx context.Context, a Appraisal, rows []AppraisalGoal, from Status) error
}
