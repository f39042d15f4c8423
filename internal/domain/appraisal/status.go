package appraisal

type Status string

const (
	StatusDraft               Status = "draft"
	StatusSubmitted           Status = "submitted"
	StatusSelfAssessment      Status = "self_assessment"
	StatusAppraiserEvaluation Status = "appraiser_evaluation"
	StatusReviewerEvaluation  Status = "reviewer_evaluation"
	StatusComplete            Status = "complete"
)

// statusSuccessor is the only legal adjacency. Anything not in this table is
// a skip, a regression, or an unknown status.
var statusSuccessor = map[Status]Status{
	StatusDraft:               StatusSubmitted,
	StatusSubmitted:           StatusSelfAssessment,
	StatusSelfAssessment:      StatusAppraiserEvaluation,
	StatusAppraiserEvaluation: StatusReviewerEvaluation,
	StatusReviewerEvaluation:  StatusComplete,
}

// transitionOwner maps each transition target to the role that may trigger
// it. Statuses name the stage in progress: the appraiser submits the draft,
// the appraisee starts and then completes the self assessment, the appraiser
// completes their evaluation, and the reviewer closes the cycle.
var transitionOwner = map[Status]Role{
	StatusSubmitted:           RoleAppraiser,
	StatusSelfAssessment:      RoleAppraisee,
	StatusAppraiserEvaluation: RoleAppraisee,
	StatusReviewerEvaluation:  RoleAppraiser,
	StatusComplete:            RoleReviewer,
}

func ValidStatus(status Status) bool {
	if status == StatusComplete {
		return true
	}
	_, ok := statusSuccessor[status]
	return ok
}

func (s Status) Next() (Status, bool) {
	next, ok := statusSuccessor[s]
	return next, ok
}

func (s Status) Terminal() bool {
	return s == StatusComplete
}

// TransitionOwner reports which role may trigger the transition into target.
func TransitionOwner(target Status) Role {
	return transitionOwner[target]
}

// RequestTransition validates target against the fixed order, the draft-exit
// gates, and the acting role, then advances the appraisal in memory. Callers
// persist the change with the previous status as a guard so a stale write can
// neither regress nor skip a stage.
func RequestTransition(a *Appraisal, goals []Goal, target Status, actor Role) error {
	next, ok := a.Status.Next()
	if !ok || next != target {
		return ErrInvalidTransition
	}
	if a.Status == StatusDraft {
		if len(goals) == 0 {
			return ErrNoGoals
		}
		if !WeightageComplete(goals) {
			return ErrWeightageNot100
		}
	}
	if transitionOwner[target] != actor {
		return ErrWrongActor
	}
	a.Status = target
	return nil
}
