package appraisal

type Field string

const (
	FieldDetails                 Field = "details"
	FieldGoals                   Field = "goals"
	FieldSelfRating              Field = "selfRating"
	FieldSelfComment             Field = "selfComment"
	FieldAppraiserRating         Field = "appraiserRating"
	FieldAppraiserComment        Field = "appraiserComment"
	FieldAppraiserOverallRating  Field = "appraiserOverallRating"
	FieldAppraiserOverallComment Field = "appraiserOverallComment"
	FieldReviewerOverallRating   Field = "reviewerOverallRating"
	FieldReviewerOverallComment  Field = "reviewerOverallComment"
)

var allFields = []Field{
	FieldDetails,
	FieldGoals,
	FieldSelfRating,
	FieldSelfComment,
	FieldAppraiserRating,
	FieldAppraiserComment,
	FieldAppraiserOverallRating,
	FieldAppraiserOverallComment,
	FieldReviewerOverallRating,
	FieldReviewerOverallComment,
}

var allStatuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusSelfAssessment,
	StatusAppraiserEvaluation,
	StatusReviewerEvaluation,
	StatusComplete,
}

var allRoles = []Role{RoleAppraisee, RoleAppraiser, RoleReviewer}

type permission struct {
	view bool
	edit bool
}

type permKey struct {
	role   Role
	status Status
	field  Field
}

// Guard answers read/write questions from a fixed (role, status, field)
// table built once at construction. The table is the single authorization
// surface for evaluation data; handlers and services consult it rather than
// re-deriving rules.
type Guard struct {
	matrix map[permKey]permission
}

func NewGuard() *Guard {
	g := &Guard{matrix: make(map[permKey]permission, len(allRoles)*len(allStatuses)*len(allFields))}

	// Everything starts readable and frozen.
	for _, role := range allRoles {
		for _, status := range allStatuses {
			for _, field := range allFields {
				g.matrix[permKey{role, status, field}] = permission{view: true}
			}
		}
	}

	// The appraisee does not see appraiser or reviewer output until the
	// cycle is complete. The appraiser likewise sees reviewer output only
	// once it exists.
	for _, status := range allStatuses {
		if status == StatusComplete {
			continue
		}
		g.hide(RoleAppraisee, status,
			FieldAppraiserRating, FieldAppraiserComment,
			FieldAppraiserOverallRating, FieldAppraiserOverallComment,
			FieldReviewerOverallRating, FieldReviewerOverallComment)
		g.hide(RoleAppraiser, status, FieldReviewerOverallRating, FieldReviewerOverallComment)
	}

	// One writable window per role, matching stage ownership.
	g.grant(RoleAppraiser, StatusDraft, FieldDetails, FieldGoals)
	g.grant(RoleAppraisee, StatusSelfAssessment, FieldSelfRating, FieldSelfComment)
	g.grant(RoleAppraiser, StatusAppraiserEvaluation,
		FieldAppraiserRating, FieldAppraiserComment,
		FieldAppraiserOverallRating, FieldAppraiserOverallComment)
	g.grant(RoleReviewer, StatusReviewerEvaluation, FieldReviewerOverallRating, FieldReviewerOverallComment)

	return g
}

func (g *Guard) hide(role Role, status Status, fields ...Field) {
	for _, field := range fields {
		key := permKey{role, status, field}
		perm := g.matrix[key]
		perm.view = false
		g.matrix[key] = perm
	}
}

func (g *Guard) grant(role Role, status Status, fields ...Field) {
	for _, field := range fields {
		key := permKey{role, status, field}
		perm := g.matrix[key]
		perm.edit = true
		g.matrix[key] = perm
	}
}

func (g *Guard) CanView(role Role, status Status, field Field) bool {
	return g.matrix[permKey{role, status, field}].view
}

func (g *Guard) CanEdit(role Role, status Status, field Field) bool {
	return g.matrix[permKey{role, status, field}].edit
}

// EvaluationFields lists the fields a role writes during its stage.
func EvaluationFields(role Role) []Field {
	switch role {
	case RoleAppraisee:
		return []Field{FieldSelfRating, FieldSelfComment}
	case RoleAppraiser:
		return []Field{FieldAppraiserRating, FieldAppraiserComment, FieldAppraiserOverallRating, FieldAppraiserOverallComment}
	case RoleReviewer:
		return []Field{FieldReviewerOverallRating, FieldReviewerOverallComment}
	}
	return nil
}
