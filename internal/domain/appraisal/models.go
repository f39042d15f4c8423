package appraisal

import "time"

type Role string

const (
	RoleNone      Role = ""
	RoleAppraisee Role = "appraisee"
	RoleAppraiser Role = "appraiser"
	RoleReviewer  Role = "reviewer"
)

type Importance string

const (
	ImportanceHigh   Importance = "High"
	ImportanceMedium Importance = "Medium"
	ImportanceLow    Importance = "Low"
)

func ValidImportance(value Importance) bool {
	return value == ImportanceHigh || value == ImportanceMedium || value == ImportanceLow
}

type Appraisal struct {
	ID                      string    `json:"id"`
	AppraiseeID             string    `json:"appraiseeId"`
	AppraiserID             string    `json:"appraiserId"`
	ReviewerID              string    `json:"reviewerId"`
	TypeID                  string    `json:"appraisalTypeId"`
	RangeID                 *string   `json:"rangeId,omitempty"`
	StartDate               time.Time `json:"startDate"`
	EndDate                 time.Time `json:"endDate"`
	Status                  Status    `json:"status"`
	AppraiserOverallRating  *int      `json:"appraiserOverallRating,omitempty"`
	AppraiserOverallComment *string   `json:"appraiserOverallComment,omitempty"`
	ReviewerOverallRating   *int      `json:"reviewerOverallRating,omitempty"`
	ReviewerOverallComment  *string   `json:"reviewerOverallComment,omitempty"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// RoleOf resolves which lifecycle role an employee plays on this appraisal.
func (a *Appraisal) RoleOf(employeeID string) Role {
	switch employeeID {
	case a.AppraiseeID:
		return RoleAppraisee
	case a.AppraiserID:
		return RoleAppraiser
	case a.ReviewerID:
		return RoleReviewer
	}
	return RoleNone
}

type Goal struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	PerformanceFactor string     `json:"performanceFactor"`
	Importance        Importance `json:"importance"`
	Weightage         int        `json:"weightage"`
	Categories        []string   `json:"categories"`
}

// StagedGoal is a goal held in the working set only. TempID is a client-local
// identity and never reaches the database.
type StagedGoal struct {
	TempID string `json:"tempId"`
	Goal
}

type AppraisalGoal struct {
	ID               string  `json:"id"`
	AppraisalID      string  `json:"appraisalId"`
	Goal             Goal    `json:"goal"`
	SelfRating       *int    `json:"selfRating,omitempty"`
	SelfComment      *string `json:"selfComment,omitempty"`
	AppraiserRating  *int    `json:"appraiserRating,omitempty"`
	AppraiserComment *string `json:"appraiserComment,omitempty"`
}

type GoalForm struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	PerformanceFactor string   `json:"performanceFactor"`
	Importance        string   `json:"importance"`
	Weightage         int      `json:"weightage"`
	Categories        []string `json:"categories"`
}

type GoalEvaluation struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// EvaluationPayload carries one role's submission: per-goal pairs keyed by
// goal id plus the optional overall pair.
type EvaluationPayload struct {
	Goals          map[string]GoalEvaluation `json:"goals"`
	OverallRating  *int                      `json:"overallRating,omitempty"`
	OverallComment *string                   `json:"overallComment,omitempty"`
}

type EmployeeRef struct {
	ID        string
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Level     int
}

func goalsOf(rows []AppraisalGoal) []Goal {
	goals := make([]Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, row.Goal)
	}
	return goals
}
