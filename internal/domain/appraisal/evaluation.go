package appraisal

import "strings"

// evaluationStage is the status during which each role's evaluation is open.
var evaluationStage = map[Role]Status{
	RoleAppraisee: StatusSelfAssessment,
	RoleAppraiser: StatusAppraiserEvaluation,
	RoleReviewer:  StatusReviewerEvaluation,
}

func hasText(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

func validRating(rating *int) bool {
	return rating != nil && *rating >= 1 && *rating <= 5
}

// IsGoalComplete reports whether a goal carries both a rating and a
// non-blank comment for the role. The reviewer rates only overall, so every
// goal counts as complete for that role.
func IsGoalComplete(row AppraisalGoal, role Role) bool {
	switch role {
	case RoleAppraisee:
		return row.SelfRating != nil && hasText(row.SelfComment)
	case RoleAppraiser:
		return row.AppraiserRating != nil && hasText(row.AppraiserComment)
	case RoleReviewer:
		return true
	}
	return false
}

// CompletionCount returns how many goals are fully rated and commented for
// the role, and the total. Submission stays blocked until they match.
func CompletionCount(rows []AppraisalGoal, role Role) (complete, total int) {
	total = len(rows)
	for _, row := range rows {
		if IsGoalComplete(row, role) {
			complete++
		}
	}
	return complete, total
}

// ApplyEvaluation merges one role's payload into the in-memory rows and the
// appraisal's overall fields. It rejects unknown goal ids and out-of-range
// ratings but does not check completeness; ValidateCompletion does that after
// the merge.
func ApplyEvaluation(a *Appraisal, rows []AppraisalGoal, role Role, payload EvaluationPayload) error {
	byGoalID := map[string]int{}
	for i, row := range rows {
		byGoalID[row.Goal.ID] = i
	}

	for goalID, entry := range payload.Goals {
		pos, ok := byGoalID[goalID]
		if !ok {
			return ErrGoalNotFound
		}
		if entry.Rating != nil && !validRating(entry.Rating) {
			return ratingOutOfBounds("rating")
		}
		switch role {
		case RoleAppraisee:
			rows[pos].SelfRating = entry.Rating
			rows[pos].SelfComment = entry.Comment
		case RoleAppraiser:
			rows[pos].AppraiserRating = entry.Rating
			rows[pos].AppraiserComment = entry.Comment
		case RoleReviewer:
			return ErrForbidden
		}
	}

	if payload.OverallRating != nil && !validRating(payload.OverallRating) {
		return ratingOutOfBounds("overall rating")
	}
	switch role {
	case RoleAppraiser:
		if payload.OverallRating != nil {
			a.AppraiserOverallRating = payload.OverallRating
		}
		if payload.OverallComment != nil {
			a.AppraiserOverallComment = payload.OverallComment
		}
	case RoleReviewer:
		if payload.OverallRating != nil {
			a.ReviewerOverallRating = payload.OverallRating
		}
		if payload.OverallComment != nil {
			a.ReviewerOverallComment = payload.OverallComment
		}
	}
	return nil
}

// ValidateCompletion enforces submit eligibility: every goal complete for the
// role, and the overall pair present where the role requires one.
func ValidateCompletion(a *Appraisal, rows []AppraisalGoal, role Role) error {
	if role != RoleReviewer {
		complete, total := CompletionCount(rows, role)
		if complete < total {
			return evaluationIncomplete(total-complete, total)
		}
	}
	switch role {
	case RoleAppraiser:
		if !validRating(a.AppraiserOverallRating) || !hasText(a.AppraiserOverallComment) {
			return &Error{Code: "evaluation_incomplete", Message: "an overall rating and comment are required"}
		}
	case RoleReviewer:
		if !validRating(a.ReviewerOverallRating) || !hasText(a.ReviewerOverallComment) {
			return &Error{Code: "evaluation_incomplete", Message: "an overall rating and comment are required"}
		}
	}
	return nil
}
