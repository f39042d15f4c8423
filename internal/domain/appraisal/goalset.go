package appraisal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"appraisal/internal/domain/templates"
)

// GoalSetManager holds the working goal set of a single appraisal: goals the
// caller is still composing (staged, temporary ids) alongside goals already
// attached. Staged goals never reach the database through this type; the
// service attaches them with the two-phase saga below.
type GoalSetManager struct {
	staged    []StagedGoal
	persisted []AppraisalGoal
}

func NewGoalSetManager(persisted []AppraisalGoal) *GoalSetManager {
	return &GoalSetManager{persisted: persisted}
}

// StageGoal validates the form and adds the goal to the working set under a
// temporary id. Only the per-goal weightage bound applies here; the working
// set may pass 100% until submission.
func (m *GoalSetManager) StageGoal(form GoalForm) (StagedGoal, error) {
	goal, err := goalFromForm(form)
	if err != nil {
		return StagedGoal{}, err
	}
	staged := StagedGoal{TempID: uuid.NewString(), Goal: goal}
	m.staged = append(m.staged, staged)
	return staged, nil
}

func (m *GoalSetManager) EditStagedGoal(tempID string, form GoalForm) (StagedGoal, error) {
	goal, err := goalFromForm(form)
	if err != nil {
		return StagedGoal{}, err
	}
	for i := range m.staged {
		if m.staged[i].TempID == tempID {
			m.staged[i].Goal = goal
			return m.staged[i], nil
		}
	}
	return StagedGoal{}, ErrGoalNotFound
}

func (m *GoalSetManager) RemoveStagedGoal(tempID string) error {
	for i := range m.staged {
		if m.staged[i].TempID == tempID {
			m.staged = append(m.staged[:i], m.staged[i+1:]...)
			return nil
		}
	}
	return ErrGoalNotFound
}

func (m *GoalSetManager) Staged() []StagedGoal {
	out := make([]StagedGoal, len(m.staged))
	copy(out, m.staged)
	return out
}

// Goals returns the combined working set, staged and persisted.
func (m *GoalSetManager) Goals() []Goal {
	goals := goalsOf(m.persisted)
	for _, staged := range m.staged {
		goals = append(goals, staged.Goal)
	}
	return goals
}

func (m *GoalSetManager) TotalWeightage() int {
	return TotalWeightage(m.Goals())
}

func (m *GoalSetManager) RemainingWeightage() int {
	return RemainingWeightage(m.Goals())
}

type ImportWarning struct {
	HeaderID   string `json:"headerId"`
	TemplateID string `json:"templateId"`
	Title      string `json:"title"`
	Reason     string `json:"reason"`
}

// ImportFromTemplates stages one goal per template inside each header,
// carrying the template's weightage unmodified. Templates without a category
// are skipped with a warning rather than failing the import.
func (m *GoalSetManager) ImportFromTemplates(headers []templates.Header) ([]StagedGoal, []ImportWarning) {
	var staged []StagedGoal
	var warnings []ImportWarning
	for _, header := range headers {
		for _, tmpl := range header.Templates {
			if len(tmpl.Categories) == 0 {
				warnings = append(warnings, ImportWarning{
					HeaderID:   header.ID,
					TemplateID: tmpl.ID,
					Title:      tmpl.Title,
					Reason:     "template has no category and was skipped",
				})
				continue
			}
			goal, err := goalFromForm(GoalForm{
				Title:             tmpl.Title,
				Description:       tmpl.Description,
				PerformanceFactor: tmpl.PerformanceFactor,
				Importance:        tmpl.Importance,
				Weightage:         tmpl.Weightage,
				Categories:        tmpl.Categories,
			})
			if err != nil {
				warnings = append(warnings, ImportWarning{
					HeaderID:   header.ID,
					TemplateID: tmpl.ID,
					Title:      tmpl.Title,
					Reason:     err.Error(),
				})
				continue
			}
			item := StagedGoal{TempID: uuid.NewString(), Goal: goal}
			m.staged = append(m.staged, item)
			staged = append(staged, item)
		}
	}
	return staged, warnings
}

func goalFromForm(form GoalForm) (Goal, error) {
	if strings.TrimSpace(form.Title) == "" {
		return Goal{}, incompleteGoal("title")
	}
	if strings.TrimSpace(form.Description) == "" {
		return Goal{}, incompleteGoal("description")
	}
	if strings.TrimSpace(form.PerformanceFactor) == "" {
		return Goal{}, incompleteGoal("performance factor")
	}
	importance := Importance(strings.TrimSpace(form.Importance))
	if !ValidImportance(importance) {
		return Goal{}, incompleteGoal("importance")
	}
	categories := make([]string, 0, len(form.Categories))
	for _, category := range form.Categories {
		if trimmed := strings.TrimSpace(category); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}
	if len(categories) == 0 {
		return Goal{}, incompleteGoal("at least one category")
	}
	if !CanAdmitWeightage(form.Weightage) {
		return Goal{}, weightageOutOfBounds()
	}
	return Goal{
		Title:             strings.TrimSpace(form.Title),
		Description:       strings.TrimSpace(form.Description),
		PerformanceFactor: strings.TrimSpace(form.PerformanceFactor),
		Importance:        importance,
		Weightage:         form.Weightage,
		Categories:        categories,
	}, nil
}

// sagaStep is one persistence action paired with its compensating action.
type sagaStep struct {
	name       string
	run        func(context.Context) error
	compensate func(context.Context) error
}

// runSaga executes steps in order. When one fails, the compensations of the
// steps already completed run in reverse, so a failure partway through leaves
// no partially-applied state behind. Compensation failures are logged and do
// not mask the original error.
func runSaga(ctx context.Context, steps []sagaStep) error {
	var done []sagaStep
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			for i := len(done) - 1; i >= 0; i-- {
				if done[i].compensate == nil {
					continue
				}
				if cerr := done[i].compensate(ctx); cerr != nil {
					slog.Error("saga compensation failed", "step", done[i].name, "err", cerr)
				}
			}
			return fmt.Errorf("%s: %w", step.name, err)
		}
		done = append(done, step)
	}
	return nil
}
