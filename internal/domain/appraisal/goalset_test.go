package appraisal

import (
	"context"
	"errors"
	"testing"

	"appraisal/internal/domain/templates"
)

func validForm() GoalForm {
	return GoalForm{
		Title:             "Ship reporting pipeline",
		Description:       "Deliver the quarterly reporting pipeline",
		PerformanceFactor: "Execution",
		Importance:        "High",
		Weightage:         40,
		Categories:        []string{"delivery"},
	}
}

func TestStageGoalAssignsTempID(t *testing.T) {
	m := NewGoalSetManager(nil)
	staged, err := m.StageGoal(validForm())
	if err != nil {
		t.Fatalf("StageGoal failed: %v", err)
	}
	if staged.TempID == "" {
		t.Fatal("expected a temp id")
	}
	if staged.Goal.ID != "" {
		t.Fatal("staged goal must not carry a persistent id")
	}
	if len(m.Staged()) != 1 {
		t.Fatalf("staged count = %d, want 1", len(m.Staged()))
	}
}

func TestGoalFormValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*GoalForm)
		wantCode string
	}{
		{name: "blank title", mutate: func(f *GoalForm) { f.Title = "  " }, wantCode: "incomplete_goal"},
		{name: "blank description", mutate: func(f *GoalForm) { f.Description = "" }, wantCode: "incomplete_goal"},
		{name: "blank factor", mutate: func(f *GoalForm) { f.PerformanceFactor = "" }, wantCode: "incomplete_goal"},
		{name: "bad importance", mutate: func(f *GoalForm) { f.Importance = "Urgent" }, wantCode: "incomplete_goal"},
		{name: "no categories", mutate: func(f *GoalForm) { f.Categories = nil }, wantCode: "incomplete_goal"},
		{name: "blank categories", mutate: func(f *GoalForm) { f.Categories = []string{" ", ""} }, wantCode: "incomplete_goal"},
		{name: "zero weight", mutate: func(f *GoalForm) { f.Weightage = 0 }, wantCode: "weightage_out_of_bounds"},
		{name: "over weight", mutate: func(f *GoalForm) { f.Weightage = 101 }, wantCode: "weightage_out_of_bounds"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)
			_, err := goalFromForm(form)
			var derr *Error
			if !errors.As(err, &derr) {
				t.Fatalf("expected domain error, got %v", err)
			}
			if derr.Code != tc.wantCode {
				t.Fatalf("code = %s, want %s", derr.Code, tc.wantCode)
			}
		})
	}
}

func TestStagedSetMayExceedCap(t *testing.T) {
	m := NewGoalSetManager([]AppraisalGoal{{Goal: Goal{Weightage: 80}}})
	form := validForm()
	form.Weightage = 60
	if _, err := m.StageGoal(form); err != nil {
		t.Fatalf("staging past 100%% should be allowed, got %v", err)
	}
	if got := m.TotalWeightage(); got != 140 {
		t.Fatalf("TotalWeightage = %d, want 140", got)
	}
	if got := m.RemainingWeightage(); got != 0 {
		t.Fatalf("RemainingWeightage = %d, want 0", got)
	}
}

func TestEditAndRemoveStagedGoal(t *testing.T) {
	m := NewGoalSetManager(nil)
	staged, err := m.StageGoal(validForm())
	if err != nil {
		t.Fatalf("StageGoal failed: %v", err)
	}

	form := validForm()
	form.Weightage = 70
	updated, err := m.EditStagedGoal(staged.TempID, form)
	if err != nil {
		t.Fatalf("EditStagedGoal failed: %v", err)
	}
	if updated.Goal.Weightage != 70 {
		t.Fatalf("weightage = %d, want 70", updated.Goal.Weightage)
	}

	if err := m.RemoveStagedGoal(staged.TempID); err != nil {
		t.Fatalf("RemoveStagedGoal failed: %v", err)
	}
	if err := m.RemoveStagedGoal(staged.TempID); err != ErrGoalNotFound {
		t.Fatalf("expected ErrGoalNotFound on second remove, got %v", err)
	}
	if _, err := m.EditStagedGoal("missing", form); err != ErrGoalNotFound {
		t.Fatalf("expected ErrGoalNotFound for unknown temp id, got %v", err)
	}
}

func TestImportFromTemplatesSkipsUncategorized(t *testing.T) {
	m := NewGoalSetManager(nil)
	headers := []templates.Header{{
		ID:    "h1",
		Title: "Engineering",
		Templates: []templates.Template{
			{ID: "t1", Title: "Delivery", Description: "Ship on time", PerformanceFactor: "Execution", Importance: "High", Weightage: 60, Categories: []string{"delivery"}},
			{ID: "t2", Title: "Orphan", Description: "No category", PerformanceFactor: "Execution", Importance: "Low", Weightage: 20},
			{ID: "t3", Title: "Quality", Description: "Low defects", PerformanceFactor: "Craft", Importance: "Medium", Weightage: 60, Categories: []string{"quality"}},
		},
	}}

	staged, warnings := m.ImportFromTemplates(headers)
	if len(staged) != 2 {
		t.Fatalf("staged = %d, want 2", len(staged))
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	if warnings[0].TemplateID != "t2" {
		t.Fatalf("warned template = %s, want t2", warnings[0].TemplateID)
	}
	// Weightage carries over untouched, even past the cap.
	if got := m.TotalWeightage(); got != 120 {
		t.Fatalf("TotalWeightage = %d, want 120", got)
	}
}

func TestRunSagaCompensatesInReverse(t *testing.T) {
	var order []string
	steps := []sagaStep{
		{
			name:       "one",
			run:        func(context.Context) error { order = append(order, "run-one"); return nil },
			compensate: func(context.Context) error { order = append(order, "undo-one"); return nil },
		},
		{
			name:       "two",
			run:        func(context.Context) error { order = append(order, "run-two"); return nil },
			compensate: func(context.Context) error { order = append(order, "undo-two"); return nil },
		},
		{
			name: "three",
			run:  func(context.Context) error { return errors.New("boom") },
		},
	}

	err := runSaga(context.Background(), steps)
	if err == nil {
		t.Fatal("expected saga failure")
	}
	want := []string{"run-one", "run-two", "undo-two", "undo-one"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
