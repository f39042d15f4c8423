package appraisal

import (
	"context"
	"fmt"
	"time"

	"appraisal/internal/domain/notifications"
	"appraisal/internal/domain/templates"
)

type Service struct {
	store  StoreAPI
	guard  *Guard
	notify *notifications.Service
}

func NewService(store StoreAPI, guard *Guard, notify *notifications.Service) *Service {
	return &Service{store: store, guard: guard, notify: notify}
}

func (s *Service) Guard() *Guard {
	return s.guard
}

type CreateInput struct {
	AppraiseeID string    `json:"appraiseeId"`
	AppraiserID string    `json:"appraiserId"`
	ReviewerID  string    `json:"reviewerId"`
	TypeID      string    `json:"appraisalTypeId"`
	RangeID     *string   `json:"rangeId,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// Create opens a new appraisal in draft. The actor must be the employee named
// as appraiser, the three participants must be distinct people, and their
// levels must rise from appraisee to appraiser to reviewer.
func (s *Service) Create(ctx context.Context, actorEmployeeID string, in CreateInput) (Appraisal, error) {
	if err := s.validateParticipants(ctx, actorEmployeeID, in); err != nil {
		return Appraisal{}, err
	}

	a := Appraisal{
		AppraiseeID: in.AppraiseeID,
		AppraiserID: in.AppraiserID,
		ReviewerID:  in.ReviewerID,
		TypeID:      in.TypeID,
		RangeID:     in.RangeID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      StatusDraft,
	}
	id, err := s.store.CreateAppraisal(ctx, a)
	if err != nil {
		return Appraisal{}, err
	}
	return s.store.GetAppraisal(ctx, id)
}

func (s *Service) Get(ctx context.Context, appraisalID, actorEmployeeID string) (View, error) {
	a, role, err := s.load(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return View{}, err
	}
	rows, err := s.store.ListAppraisalGoals(ctx, a.ID)
	if err != nil {
		return View{}, err
	}
	return RenderView(s.guard, &a, rows, role), nil
}

// List returns the actor's appraisals with the same visibility filtering the
// detail view applies: overall evaluation fields the guard hides for the
// actor's role at each appraisal's status come back nil.
func (s *Service) List(ctx context.Context, actorEmployeeID string) ([]Appraisal, error) {
	appraisals, err := s.store.ListAppraisalsFor(ctx, actorEmployeeID)
	if err != nil {
		return nil, err
	}
	for i := range appraisals {
		s.redactOveralls(&appraisals[i], appraisals[i].RoleOf(actorEmployeeID))
	}
	return appraisals, nil
}

func (s *Service) redactOveralls(a *Appraisal, viewer Role) {
	if !s.guard.CanView(viewer, a.Status, FieldAppraiserOverallRating) {
		a.AppraiserOverallRating = nil
	}
	if !s.guard.CanView(viewer, a.Status, FieldAppraiserOverallComment) {
		a.AppraiserOverallComment = nil
	}
	if !s.guard.CanView(viewer, a.Status, FieldReviewerOverallRating) {
		a.ReviewerOverallRating = nil
	}
	if !s.guard.CanView(viewer, a.Status, FieldReviewerOverallComment) {
		a.ReviewerOverallComment = nil
	}
}

func (s *Service) UpdateDetails(ctx context.Context, appraisalID, actorEmployeeID string, in CreateInput) (Appraisal, error) {
	a, role, err := s.load(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return Appraisal{}, err
	}
	if !s.guard.CanEdit(role, a.Status, FieldDetails) {
		if a.Status != StatusDraft {
			return Appraisal{}, ErrNotDraft
		}
		return Appraisal{}, ErrForbidden
	}
	if err := s.validateParticipants(ctx, actorEmployeeID, in); err != nil {
		return Appraisal{}, err
	}

	a.AppraiseeID = in.AppraiseeID
	a.AppraiserID = in.AppraiserID
	a.ReviewerID = in.ReviewerID
	a.TypeID = in.TypeID
	a.RangeID = in.RangeID
	a.StartDate = in.StartDate
	a.EndDate = in.EndDate
	if err := s.store.UpdateAppraisalDetails(ctx, a); err != nil {
		return Appraisal{}, err
	}
	return s.store.GetAppraisal(ctx, a.ID)
}

func (s *Service) Delete(ctx context.Context, appraisalID, actorEmployeeID string) error {
	a, role, err := s.load(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return err
	}
	if role != RoleAppraiser {
		return ErrForbidden
	}
	if a.Status != StatusDraft {
		return ErrNotDraft
	}
	return s.store.DeleteAppraisal(ctx, a.ID)
}

// AttachGoal runs the two-phase attach: create the durable goal, then join it
// to the appraisal, deleting the created row if the join fails. The add path
// also enforces the remaining-allowance bound the composer shows.
func (s *Service) AttachGoal(ctx context.Context, appraisalID, actorEmployeeID string, form GoalForm) (AppraisalGoal, error) {
	a, rows, err := s.loadForGoalChange(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return AppraisalGoal{}, err
	}

	goal, err := goalFromForm(form)
	if err != nil {
		return AppraisalGoal{}, err
	}
	remaining := RemainingWeightage(goalsOf(rows))
	if goal.Weightage > remaining {
		return AppraisalGoal{}, weightageExceedsRemaining(remaining)
	}

	attached, err := s.attachWithCompensation(ctx, a.ID, goal)
	if err != nil {
		return AppraisalGoal{}, err
	}
	s.notifyGoalAttached(ctx, a, fmt.Sprintf("goal %q", attached.Goal.Title))
	return attached, nil
}

// AttachExistingGoal joins an already-created goal to the appraisal.
func (s *Service) AttachExistingGoal(ctx context.Context, appraisalID, actorEmployeeID, goalID string) (AppraisalGoal, error) {
	a, rows, err := s.loadForGoalChange(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return AppraisalGoal{}, err
	}
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return AppraisalGoal{}, err
	}
	remaining := RemainingWeightage(goalsOf(rows))
	if goal.Weightage > remaining {
		return AppraisalGoal{}, weightageExceedsRemaining(remaining)
	}
	joinID, err := s.store.AttachGoal(ctx, a.ID, goal.ID)
	if err != nil {
		return AppraisalGoal{}, err
	}
	s.notifyGoalAttached(ctx, a, fmt.Sprintf("goal %q", goal.Title))
	return AppraisalGoal{ID: joinID, AppraisalID: a.ID, Goal: goal}, nil
}

func (s *Service) UpdateGoal(ctx context.Context, appraisalID, goalID, actorEmployeeID string, form GoalForm) (AppraisalGoal, error) {
	a, rows, err := s.loadForGoalChange(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return AppraisalGoal{}, err
	}

	var current *AppraisalGoal
	for i := range rows {
		if rows[i].Goal.ID == goalID {
			current = &rows[i]
			break
		}
	}
	if current == nil {
		return AppraisalGoal{}, ErrGoalNotFound
	}

	goal, err := goalFromForm(form)
	if err != nil {
		return AppraisalGoal{}, err
	}
	// The goal's own previous weight is handed back before checking the cap.
	remaining := RemainingWeightage(goalsOf(rows)) + current.Goal.Weightage
	if remaining > WeightageCap {
		remaining = WeightageCap
	}
	if goal.Weightage > remaining {
		return AppraisalGoal{}, weightageExceedsRemaining(remaining)
	}

	goal.ID = goalID
	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return AppraisalGoal{}, err
	}
	current.Goal = goal
	updated := *current
	updated.AppraisalID = a.ID
	return updated, nil
}

func (s *Service) RemoveGoal(ctx context.Context, appraisalID, goalID, actorEmployeeID string) error {
	_, _, err := s.loadForGoalChange(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return err
	}
	return s.store.RemoveGoal(ctx, appraisalID, goalID)
}

type ImportResult struct {
	Attached []AppraisalGoal `json:"attached"`
	Warnings []ImportWarning `json:"warnings"`
}

// ImportFromTemplates stages one goal per template in the selected headers
// and attaches them all. Template weightage is carried unmodified, so the
// working set may pass 100% here; the draft-exit gate still enforces the
// exact total. All attachments run inside one saga: a failure rolls back
// every goal created by this import.
func (s *Service) ImportFromTemplates(ctx context.Context, appraisalID, actorEmployeeID string, headers []templates.Header) (ImportResult, error) {
	a, rows, err := s.loadForGoalChange(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return ImportResult{}, err
	}

	manager := NewGoalSetManager(rows)
	staged, warnings := manager.ImportFromTemplates(headers)
	result := ImportResult{Warnings: warnings}

	var steps []sagaStep
	attached := make([]AppraisalGoal, len(staged))
	for i, item := range staged {
		i, goal := i, item.Goal
		var goalID string
		steps = append(steps,
			sagaStep{
				name: fmt.Sprintf("create goal %q", goal.Title),
				run: func(ctx context.Context) error {
					id, err := s.store.CreateGoal(ctx, goal)
					if err != nil {
						return err
					}
					goalID = id
					return nil
				},
				compensate: func(ctx context.Context) error {
					return s.store.DeleteGoal(ctx, goalID)
				},
			},
			sagaStep{
				name: fmt.Sprintf("attach goal %q", goal.Title),
				run: func(ctx context.Context) error {
					joinID, err := s.store.AttachGoal(ctx, a.ID, goalID)
					if err != nil {
						return err
					}
					goal.ID = goalID
					attached[i] = AppraisalGoal{ID: joinID, AppraisalID: a.ID, Goal: goal}
					return nil
				},
			},
		)
	}
	if err := runSaga(ctx, steps); err != nil {
		return ImportResult{}, err
	}
	result.Attached = attached
	if len(attached) > 0 {
		s.notifyGoalAttached(ctx, a, fmt.Sprintf("%d imported goals", len(attached)))
	}
	return result, nil
}

// RequestTransition validates and executes a plain status transition, such
// as submitting a draft or the appraisee starting the self assessment.
func (s *Service) RequestTransition(ctx context.Context, appraisalID, actorEmployeeID string, target Status) (Appraisal, error) {
	a, role, err := s.load(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return Appraisal{}, err
	}
	rows, err := s.store.ListAppraisalGoals(ctx, a.ID)
	if err != nil {
		return Appraisal{}, err
	}

	from := a.Status
	if err := RequestTransition(&a, goalsOf(rows), target, role); err != nil {
		return Appraisal{}, err
	}
	if err := s.store.UpdateStatus(ctx, a.ID, from, a.Status); err != nil {
		return Appraisal{}, err
	}
	s.notifyTransition(ctx, a)
	return a, nil
}

// SubmitEvaluation validates one role's payload for completeness, merges it,
// and advances the status — persisting payload and transition as a single
// transaction so neither can land without the other.
func (s *Service) SubmitEvaluation(ctx context.Context, appraisalID, actorEmployeeID string, asRole Role, payload EvaluationPayload) (View, error) {
	a, role, err := s.load(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return View{}, err
	}
	if role != asRole {
		return View{}, ErrForbidden
	}
	if a.Status != evaluationStage[role] {
		return View{}, wrongStage(role, a.Status)
	}

	rows, err := s.store.ListAppraisalGoals(ctx, a.ID)
	if err != nil {
		return View{}, err
	}
	if err := ApplyEvaluation(&a, rows, role, payload); err != nil {
		return View{}, err
	}
	if err := ValidateCompletion(&a, rows, role); err != nil {
		return View{}, err
	}

	from := a.Status
	target, _ := a.Status.Next()
	if err := RequestTransition(&a, goalsOf(rows), target, role); err != nil {
		return View{}, err
	}
	if err := s.store.SaveEvaluation(ctx, a, rows, from); err != nil {
		return View{}, err
	}
	s.notifyTransition(ctx, a)
	return RenderView(s.guard, &a, rows, role), nil
}

// Completion reports submit eligibility for the acting role.
func (s *Service) Completion(ctx context.Context, appraisalID, actorEmployeeID string) (complete, total int, err error) {
	a, role, err := s.load(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return 0, 0, err
	}
	rows, err := s.store.ListAppraisalGoals(ctx, a.ID)
	if err != nil {
		return 0, 0, err
	}
	complete, total = CompletionCount(rows, role)
	return complete, total, nil
}

func (s *Service) load(ctx context.Context, appraisalID, actorEmployeeID string) (Appraisal, Role, error) {
	a, err := s.store.GetAppraisal(ctx, appraisalID)
	if err != nil {
		return Appraisal{}, RoleNone, err
	}
	role := a.RoleOf(actorEmployeeID)
	if role == RoleNone {
		return Appraisal{}, RoleNone, ErrNotParticipant
	}
	return a, role, nil
}

func (s *Service) loadForGoalChange(ctx context.Context, appraisalID, actorEmployeeID string) (Appraisal, []AppraisalGoal, error) {
	a, role, err := s.load(ctx, appraisalID, actorEmployeeID)
	if err != nil {
		return Appraisal{}, nil, err
	}
	if !s.guard.CanEdit(role, a.Status, FieldGoals) {
		if role == RoleAppraiser {
			return Appraisal{}, nil, ErrGoalsLocked
		}
		return Appraisal{}, nil, ErrForbidden
	}
	rows, err := s.store.ListAppraisalGoals(ctx, a.ID)
	if err != nil {
		return Appraisal{}, nil, err
	}
	return a, rows, nil
}

func (s *Service) attachWithCompensation(ctx context.Context, appraisalID string, goal Goal) (AppraisalGoal, error) {
	var attached AppraisalGoal
	var goalID string
	steps := []sagaStep{
		{
			name: "create goal",
			run: func(ctx context.Context) error {
				id, err := s.store.CreateGoal(ctx, goal)
				if err != nil {
					return err
				}
				goalID = id
				return nil
			},
			compensate: func(ctx context.Context) error {
				return s.store.DeleteGoal(ctx, goalID)
			},
		},
		{
			name: "attach goal",
			run: func(ctx context.Context) error {
				joinID, err := s.store.AttachGoal(ctx, appraisalID, goalID)
				if err != nil {
					return err
				}
				goal.ID = goalID
				attached = AppraisalGoal{ID: joinID, AppraisalID: appraisalID, Goal: goal}
				return nil
			},
		},
	}
	if err := runSaga(ctx, steps); err != nil {
		return AppraisalGoal{}, err
	}
	return attached, nil
}

func (s *Service) validateParticipants(ctx context.Context, actorEmployeeID string, in CreateInput) error {
	if in.AppraiseeID == in.AppraiserID || in.AppraiseeID == in.ReviewerID || in.AppraiserID == in.ReviewerID {
		return &Error{Code: "invalid_participants", Message: "appraisee, appraiser and reviewer must be three different people"}
	}
	if actorEmployeeID != in.AppraiserID {
		return ErrForbidden
	}
	if in.EndDate.Before(in.StartDate) {
		return &Error{Code: "invalid_period", Message: "start date must be on or before end date"}
	}
	appraisee, err := s.store.EmployeeRefByID(ctx, in.AppraiseeID)
	if err != nil {
		return invalidRefOr(err, "appraiseeId")
	}
	appraiser, err := s.store.EmployeeRefByID(ctx, in.AppraiserID)
	if err != nil {
		return invalidRefOr(err, "appraiserId")
	}
	reviewer, err := s.store.EmployeeRefByID(ctx, in.ReviewerID)
	if err != nil {
		return invalidRefOr(err, "reviewerId")
	}
	if !(appraisee.Level < appraiser.Level && appraiser.Level < reviewer.Level) {
		return &Error{Code: "invalid_hierarchy", Message: "appraisee level must be below appraiser level, and appraiser level below reviewer level"}
	}
	if ok, err := s.store.TypeExists(ctx, in.TypeID); err != nil {
		return err
	} else if !ok {
		return invalidReference("appraisalTypeId")
	}
	if in.RangeID != nil {
		if ok, err := s.store.RangeExists(ctx, *in.RangeID, in.TypeID); err != nil {
			return err
		} else if !ok {
			return invalidReference("rangeId")
		}
	}
	return nil
}

func (s *Service) notifyTransition(ctx context.Context, a Appraisal) {
	if s.notify == nil {
		return
	}
	switch a.Status {
	case StatusSubmitted:
		s.notifyEmployee(ctx, a.AppraiseeID, notifications.TypeAppraisalSubmitted,
			"Appraisal submitted", "Your appraisal has been submitted. Start your self assessment when ready.")
	case StatusSelfAssessment:
		s.notifyEmployee(ctx, a.AppraiseeID, notifications.TypeSelfAssessmentDue,
			"Self assessment started", "Rate and comment each goal to complete your self assessment.")
	case StatusAppraiserEvaluation:
		s.notifyEmployee(ctx, a.AppraiserID, notifications.TypeAppraiserTurn,
			"Appraiser evaluation due", "The self assessment is complete. Your evaluation is now open.")
	case StatusReviewerEvaluation:
		s.notifyEmployee(ctx, a.ReviewerID, notifications.TypeReviewerTurn,
			"Reviewer evaluation due", "The appraiser evaluation is complete. Your review is now open.")
	case StatusComplete:
		s.notifyEmployee(ctx, a.AppraiseeID, notifications.TypeAppraisalCompleted,
			"Appraisal complete", "Your appraisal cycle is complete. All evaluations are now visible.")
		s.notifyEmployee(ctx, a.AppraiserID, notifications.TypeAppraisalCompleted,
			"Appraisal complete", "The appraisal cycle you appraised is complete.")
	}
}

func (s *Service) notifyGoalAttached(ctx context.Context, a Appraisal, what string) {
	if s.notify == nil {
		return
	}
	s.notifyEmployee(ctx, a.AppraiseeID, notifications.TypeGoalAttached,
		"Goal added to your appraisal", fmt.Sprintf("Your appraiser added %s to your appraisal.", what))
}

func (s *Service) notifyEmployee(ctx context.Context, employeeID, ntype, title, body string) {
	ref, err := s.store.EmployeeRefByID(ctx, employeeID)
	if err != nil {
		return
	}
	s.notify.Notify(ctx, ref.UserID, ntype, title, body)
}

func invalidRefOr(err error, field string) error {
	if err == ErrNotFound {
		return invalidReference(field)
	}
	return err
}
