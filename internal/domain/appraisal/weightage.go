package appraisal

// WeightageCap is the total every attached goal set must reach before an
// appraisal leaves draft.
const WeightageCap = 100

func TotalWeightage(goals []Goal) int {
	total := 0
	for _, goal := range goals {
		total += goal.Weightage
	}
	return total
}

func RemainingWeightage(goals []Goal) int {
	remaining := WeightageCap - TotalWeightage(goals)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanAdmitWeightage checks the per-goal bound only. The running total is
// deliberately not consulted here: a working set may pass 100% while the user
// composes it, and the exact-100 rule is enforced at the draft-exit
// transition instead.
func CanAdmitWeightage(weight int) bool {
	return weight >= 1 && weight <= WeightageCap
}

func WeightageComplete(goals []Goal) bool {
	return TotalWeightage(goals) == WeightageCap
}
