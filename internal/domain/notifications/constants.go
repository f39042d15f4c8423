package notifications

const (
	TypeAppraisalSubmitted = "appraisal_submitted"
	TypeSelfAssessmentDue  = "self_assessment_due"
	TypeAppraiserTurn      = "appraiser_evaluation_due"
	TypeReviewerTurn       = "reviewer_evaluation_due"
	TypeAppraisalCompleted = "appraisal_completed"
	TypeGoalAttached       = "goal_attached"
)
