package appraisal

import "fmt"

// Error is a business-rule failure with a stable code for transport mapping
// and a message specific enough for the user to correct the request.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrNotFound          = &Error{Code: "not_found", Message: "appraisal not found"}
	ErrGoalNotFound      = &Error{Code: "not_found", Message: "goal not found"}
	ErrInvalidTransition = &Error{Code: "invalid_transition", Message: "status may only advance to the next stage in order"}
	ErrWeightageNot100   = &Error{Code: "weightage_not_100", Message: "goal weightage must total exactly 100% before submission"}
	ErrNoGoals           = &Error{Code: "no_goals", Message: "add at least one goal before submission"}
	ErrWrongActor        = &Error{Code: "wrong_actor", Message: "this transition belongs to another participant"}
	ErrGoalsLocked       = &Error{Code: "goals_locked", Message: "goals can only be changed while the appraisal is in draft"}
	ErrNotDraft          = &Error{Code: "not_draft", Message: "appraisal can only be changed while in draft"}
	ErrForbidden         = &Error{Code: "forbidden", Message: "you are not allowed to perform this action"}
	ErrNotParticipant    = &Error{Code: "forbidden", Message: "you are not a participant of this appraisal"}
)

func incompleteGoal(field string) *Error {
	return &Error{Code: "incomplete_goal", Message: fmt.Sprintf("%s is required", field)}
}

func weightageOutOfBounds() *Error {
	return &Error{Code: "weightage_out_of_bounds", Message: "weightage must be between 1 and 100"}
}

func weightageExceedsRemaining(remaining int) *Error {
	return &Error{Code: "weightage_exceeds_remaining", Message: fmt.Sprintf("Value must be less than or equal to %d", remaining)}
}

func ratingOutOfBounds(field string) *Error {
	return &Error{Code: "rating_out_of_bounds", Message: fmt.Sprintf("%s must be between 1 and 5", field)}
}

func evaluationIncomplete(missing, total int) *Error {
	return &Error{Code: "evaluation_incomplete", Message: fmt.Sprintf("%d of %d goals still need a rating and comment", missing, total)}
}

func wrongStage(role Role, status Status) *Error {
	return &Error{Code: "wrong_stage", Message: fmt.Sprintf("%s evaluation is not open while the appraisal is %s", role, status)}
}

func invalidReference(field string) *Error {
	return &Error{Code: "invalid_reference", Message: fmt.Sprintf("%s does not reference a known record", field)}
}
