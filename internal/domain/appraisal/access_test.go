package appraisal

import "testing"

func TestGuardHidesEvaluationsUntilComplete(t *testing.T) {
	g := NewGuard()

	hiddenFromAppraisee := []Field{
		FieldAppraiserRating, FieldAppraiserComment,
		FieldAppraiserOverallRating, FieldAppraiserOverallComment,
		FieldReviewerOverallRating, FieldReviewerOverallComment,
	}
	for _, status := range allStatuses {
		for _, field := range hiddenFromAppraisee {
			got := g.CanView(RoleAppraisee, status, field)
			want := status == StatusComplete
			if got != want {
				t.Fatalf("appraisee view %s at %s = %v, want %v", field, status, got, want)
			}
		}
		for _, field := range []Field{FieldReviewerOverallRating, FieldReviewerOverallComment} {
			got := g.CanView(RoleAppraiser, status, field)
			want := status == StatusComplete
			if got != want {
				t.Fatalf("appraiser view %s at %s = %v, want %v", field, status, got, want)
			}
		}
	}
}

func TestGuardSelfAssessmentAlwaysVisible(t *testing.T) {
	g := NewGuard()
	for _, role := range allRoles {
		for _, status := range allStatuses {
			if !g.CanView(role, status, FieldSelfRating) {
				t.Fatalf("%s cannot view self rating at %s", role, status)
			}
			if !g.CanView(role, status, FieldSelfComment) {
				t.Fatalf("%s cannot view self comment at %s", role, status)
			}
		}
	}
}

func TestGuardEditWindows(t *testing.T) {
	g := NewGuard()

	type window struct {
		role   Role
		status Status
		fields []Field
	}
	windows := []window{
		{RoleAppraiser, StatusDraft, []Field{FieldDetails, FieldGoals}},
		{RoleAppraisee, StatusSelfAssessment, []Field{FieldSelfRating, FieldSelfComment}},
		{RoleAppraiser, StatusAppraiserEvaluation, []Field{
			FieldAppraiserRating, FieldAppraiserComment,
			FieldAppraiserOverallRating, FieldAppraiserOverallComment,
		}},
		{RoleReviewer, StatusReviewerEvaluation, []Field{FieldReviewerOverallRating, FieldReviewerOverallComment}},
	}

	granted := map[permKey]bool{}
	for _, win := range windows {
		for _, field := range win.fields {
			granted[permKey{win.role, win.status, field}] = true
		}
	}

	for _, role := range allRoles {
		for _, status := range allStatuses {
			for _, field := range allFields {
				got := g.CanEdit(role, status, field)
				want := granted[permKey{role, status, field}]
				if got != want {
					t.Fatalf("CanEdit(%s, %s, %s) = %v, want %v", role, status, field, got, want)
				}
			}
		}
	}
}

func TestNothingEditableAfterComplete(t *testing.T) {
	g := NewGuard()
	for _, role := range allRoles {
		for _, field := range allFields {
			if g.CanEdit(role, StatusComplete, field) {
				t.Fatalf("%s may edit %s after completion", role, field)
			}
		}
	}
}

func TestRenderViewFiltersHiddenFields(t *testing.T) {
	g := NewGuard()
	rating := 4
	comment := "solid quarter"
	a := Appraisal{
		ID:                      "a1",
		AppraiseeID:             "e1",
		AppraiserID:             "e2",
		ReviewerID:              "e3",
		Status:                  StatusAppraiserEvaluation,
		AppraiserOverallRating:  &rating,
		AppraiserOverallComment: &comment,
	}
	rows := []AppraisalGoal{{
		ID:               "ag1",
		Goal:             Goal{ID: "g1", Weightage: 100},
		SelfRating:       &rating,
		SelfComment:      &comment,
		AppraiserRating:  &rating,
		AppraiserComment: &comment,
	}}

	asAppraisee := RenderView(g, &a, rows, RoleAppraisee)
	if asAppraisee.AppraiserOverallRating != nil || asAppraisee.AppraiserOverallComment != nil {
		t.Fatal("appraisee sees appraiser overall before completion")
	}
	if asAppraisee.Goals[0].AppraiserRating != nil || asAppraisee.Goals[0].AppraiserComment != nil {
		t.Fatal("appraisee sees appraiser per-goal evaluation before completion")
	}
	if asAppraisee.Goals[0].SelfRating == nil {
		t.Fatal("appraisee lost own self assessment")
	}

	asReviewer := RenderView(g, &a, rows, RoleReviewer)
	if asReviewer.Goals[0].AppraiserRating == nil || asReviewer.AppraiserOverallRating == nil {
		t.Fatal("reviewer cannot see appraiser evaluation")
	}

	a.Status = StatusComplete
	asAppraiseeDone := RenderView(g, &a, rows, RoleAppraisee)
	if asAppraiseeDone.AppraiserOverallRating == nil || asAppraiseeDone.Goals[0].AppraiserRating == nil {
		t.Fatal("appraisee still blocked after completion")
	}
}

func TestRenderViewWeightageTotals(t *testing.T) {
	g := NewGuard()
	a := Appraisal{Status: StatusDraft}
	rows := []AppraisalGoal{
		{Goal: Goal{Weightage: 30}},
		{Goal: Goal{Weightage: 45}},
	}
	view := RenderView(g, &a, rows, RoleAppraiser)
	if view.TotalWeightage != 75 {
		t.Fatalf("TotalWeightage = %d, want 75", view.TotalWeightage)
	}
	if view.RemainingWeightage != 25 {
		t.Fatalf("RemainingWeightage = %d, want 25", view.RemainingWeightage)
	}
}
