package appraisal

import (
	"errors"
	"testing"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func code(err error) string {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Code
	}
	return ""
}

func TestIsGoalComplete(t *testing.T) {
	tests := []struct {
		name string
		row  AppraisalGoal
		role Role
		want bool
	}{
		{name: "appraisee rated and commented", row: AppraisalGoal{SelfRating: intPtr(4), SelfComment: strPtr("done")}, role: RoleAppraisee, want: true},
		{name: "appraisee missing comment", row: AppraisalGoal{SelfRating: intPtr(4)}, role: RoleAppraisee, want: false},
		{name: "appraisee blank comment", row: AppraisalGoal{SelfRating: intPtr(4), SelfComment: strPtr("   ")}, role: RoleAppraisee, want: false},
		{name: "appraisee missing rating", row: AppraisalGoal{SelfComment: strPtr("done")}, role: RoleAppraisee, want: false},
		{name: "appraiser complete", row: AppraisalGoal{AppraiserRating: intPtr(3), AppraiserComment: strPtr("fine")}, role: RoleAppraiser, want: true},
		{name: "reviewer always complete", row: AppraisalGoal{}, role: RoleReviewer, want: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := IsGoalComplete(tc.row, tc.role); got != tc.want {
				t.Fatalf("IsGoalComplete = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompletionCount(t *testing.T) {
	rows := []AppraisalGoal{
		{SelfRating: intPtr(5), SelfComment: strPtr("good")},
		{SelfRating: intPtr(3)},
		{},
	}
	complete, total := CompletionCount(rows, RoleAppraisee)
	if complete != 1 || total != 3 {
		t.Fatalf("CompletionCount = (%d, %d), want (1, 3)", complete, total)
	}
}

func TestApplyEvaluationRejects(t *testing.T) {
	rows := []AppraisalGoal{{Goal: Goal{ID: "g1"}}}

	a := Appraisal{}
	err := ApplyEvaluation(&a, rows, RoleAppraisee, EvaluationPayload{
		Goals: map[string]GoalEvaluation{"missing": {Rating: intPtr(3)}},
	})
	if err != ErrGoalNotFound {
		t.Fatalf("unknown goal id: got %v, want ErrGoalNotFound", err)
	}

	err = ApplyEvaluation(&a, rows, RoleAppraisee, EvaluationPayload{
		Goals: map[string]GoalEvaluation{"g1": {Rating: intPtr(6)}},
	})
	if code(err) != "rating_out_of_bounds" {
		t.Fatalf("rating 6: got %v, want rating_out_of_bounds", err)
	}

	err = ApplyEvaluation(&a, rows, RoleReviewer, EvaluationPayload{
		Goals: map[string]GoalEvaluation{"g1": {Rating: intPtr(3)}},
	})
	if err != ErrForbidden {
		t.Fatalf("reviewer per-goal write: got %v, want ErrForbidden", err)
	}

	err = ApplyEvaluation(&a, rows, RoleReviewer, EvaluationPayload{OverallRating: intPtr(0)})
	if code(err) != "rating_out_of_bounds" {
		t.Fatalf("overall rating 0: got %v, want rating_out_of_bounds", err)
	}
}

func TestApplyEvaluationMergesByRole(t *testing.T) {
	rows := []AppraisalGoal{{Goal: Goal{ID: "g1"}}, {Goal: Goal{ID: "g2"}}}
	a := Appraisal{}

	err := ApplyEvaluation(&a, rows, RoleAppraisee, EvaluationPayload{
		Goals: map[string]GoalEvaluation{
			"g1": {Rating: intPtr(4), Comment: strPtr("hit the target")},
		},
	})
	if err != nil {
		t.Fatalf("ApplyEvaluation failed: %v", err)
	}
	if rows[0].SelfRating == nil || *rows[0].SelfRating != 4 {
		t.Fatal("self rating not merged")
	}
	if rows[0].AppraiserRating != nil {
		t.Fatal("appraisee write leaked into appraiser fields")
	}
	if rows[1].SelfRating != nil {
		t.Fatal("untouched goal mutated")
	}

	err = ApplyEvaluation(&a, rows, RoleAppraiser, EvaluationPayload{
		Goals:          map[string]GoalEvaluation{"g2": {Rating: intPtr(2), Comment: strPtr("below bar")}},
		OverallRating:  intPtr(3),
		OverallComment: strPtr("mixed results"),
	})
	if err != nil {
		t.Fatalf("ApplyEvaluation failed: %v", err)
	}
	if rows[1].AppraiserRating == nil || *rows[1].AppraiserRating != 2 {
		t.Fatal("appraiser rating not merged")
	}
	if a.AppraiserOverallRating == nil || *a.AppraiserOverallRating != 3 {
		t.Fatal("appraiser overall not merged")
	}
	if a.ReviewerOverallRating != nil {
		t.Fatal("appraiser write leaked into reviewer overall")
	}
}

func TestValidateCompletion(t *testing.T) {
	rows := []AppraisalGoal{
		{Goal: Goal{ID: "g1"}, SelfRating: intPtr(4), SelfComment: strPtr("ok")},
		{Goal: Goal{ID: "g2"}},
	}
	a := Appraisal{}

	err := ValidateCompletion(&a, rows, RoleAppraisee)
	if code(err) != "evaluation_incomplete" {
		t.Fatalf("partial self assessment: got %v, want evaluation_incomplete", err)
	}

	rows[1].SelfRating = intPtr(3)
	rows[1].SelfComment = strPtr("fair")
	if err := ValidateCompletion(&a, rows, RoleAppraisee); err != nil {
		t.Fatalf("complete self assessment rejected: %v", err)
	}

	// The appraiser needs per-goal pairs plus an overall pair.
	rows[0].AppraiserRating = intPtr(4)
	rows[0].AppraiserComment = strPtr("good")
	rows[1].AppraiserRating = intPtr(3)
	rows[1].AppraiserComment = strPtr("fine")
	if err := ValidateCompletion(&a, rows, RoleAppraiser); code(err) != "evaluation_incomplete" {
		t.Fatalf("missing appraiser overall: got %v, want evaluation_incomplete", err)
	}
	a.AppraiserOverallRating = intPtr(4)
	a.AppraiserOverallComment = strPtr("strong quarter")
	if err := ValidateCompletion(&a, rows, RoleAppraiser); err != nil {
		t.Fatalf("complete appraiser evaluation rejected: %v", err)
	}

	// The reviewer is exempt from per-goal completeness but not the overall.
	if err := ValidateCompletion(&a, rows, RoleReviewer); code(err) != "evaluation_incomplete" {
		t.Fatalf("missing reviewer overall: got %v, want evaluation_incomplete", err)
	}
	a.ReviewerOverallRating = intPtr(4)
	a.ReviewerOverallComment = strPtr("agreed")
	if err := ValidateCompletion(&a, rows, RoleReviewer); err != nil {
		t.Fatalf("complete reviewer evaluation rejected: %v", err)
	}
}
