package appraisal

import "time"

// View is an appraisal as one participant is allowed to see it. Fields the
// guard hides for the viewer's role at the current status are nil, so the
// filtering happens before anything crosses the wire.
type View struct {
	ID                      string     `json:"id"`
	AppraiseeID             string     `json:"appraiseeId"`
	AppraiserID             string     `json:"appraiserId"`
	ReviewerID              string     `json:"reviewerId"`
	TypeID                  string     `json:"appraisalTypeId"`
	RangeID                 *string    `json:"rangeId,omitempty"`
	StartDate               time.Time  `json:"startDate"`
	EndDate                 time.Time  `json:"endDate"`
	Status                  Status     `json:"status"`
	ViewerRole              Role       `json:"viewerRole"`
	AppraiserOverallRating  *int       `json:"appraiserOverallRating,omitempty"`
	AppraiserOverallComment *string    `json:"appraiserOverallComment,omitempty"`
	ReviewerOverallRating   *int       `json:"reviewerOverallRating,omitempty"`
	ReviewerOverallComment  *string    `json:"reviewerOverallComment,omitempty"`
	Goals                   []GoalView `json:"appraisalGoals"`
	TotalWeightage          int        `json:"totalWeightage"`
	RemainingWeightage      int        `json:"remainingWeightage"`
}

type GoalView struct {
	ID               string  `json:"id"`
	Goal             Goal    `json:"goal"`
	SelfRating       *int    `json:"selfRating,omitempty"`
	SelfComment      *string `json:"selfComment,omitempty"`
	AppraiserRating  *int    `json:"appraiserRating,omitempty"`
	AppraiserComment *string `json:"appraiserComment,omitempty"`
}

func RenderView(guard *Guard, a *Appraisal, rows []AppraisalGoal, viewer Role) View {
	view := View{
		ID:                 a.ID,
		AppraiseeID:        a.AppraiseeID,
		AppraiserID:        a.AppraiserID,
		ReviewerID:         a.ReviewerID,
		TypeID:             a.TypeID,
		RangeID:            a.RangeID,
		StartDate:          a.StartDate,
		EndDate:            a.EndDate,
		Status:             a.Status,
		ViewerRole:         viewer,
		TotalWeightage:     TotalWeightage(goalsOf(rows)),
		RemainingWeightage: RemainingWeightage(goalsOf(rows)),
	}

	if guard.CanView(viewer, a.Status, FieldAppraiserOverallRating) {
		view.AppraiserOverallRating = a.AppraiserOverallRating
	}
	if guard.CanView(viewer, a.Status, FieldAppraiserOverallComment) {
		view.AppraiserOverallComment = a.AppraiserOverallComment
	}
	if guard.CanView(viewer, a.Status, FieldReviewerOverallRating) {
		view.ReviewerOverallRating = a.ReviewerOverallRating
	}
	if guard.CanView(viewer, a.Status, FieldReviewerOverallComment) {
		view.ReviewerOverallComment = a.ReviewerOverallComment
	}

	view.Goals = make([]GoalView, 0, len(rows))
	for _, row := range rows {
		goalView := GoalView{ID: row.ID, Goal: row.Goal}
		if guard.CanView(viewer, a.Status, FieldSelfRating) {
			goalView.SelfRating = row.SelfRating
		}
		if guard.CanView(viewer, a.Status, FieldSelfComment) {
			goalView.SelfComment = row.SelfComment
		}
		if guard.CanView(viewer, a.Status, FieldAppraiserRating) {
			goalView.AppraiserRating = row.AppraiserRating
		}
		if guard.CanView(viewer, a.Status, FieldAppraiserComment) {
			goalView.AppraiserComment = row.AppraiserComment
		}
		view.Goals = append(view.Goals, goalView)
	}
	return view
}
