// Package reports renders completed appraisals as downloadable documents.
package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"appraisal/internal/domain/appraisal"
)

type Service struct {
	store appraisal.StoreAPI
}

func NewService(store appraisal.StoreAPI) *Service {
	return &Service{store: store}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefInt(value *int) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *value)
}

// SummaryPDF renders the full evaluation record of a completed appraisal.
// Only participants may request it, and only once the cycle is complete,
// since completion is what makes all evaluations mutually visible.
func (s *Service) SummaryPDF(ctx context.Context, appraisalID, actorEmployeeID string) ([]byte, error) {
	a, err := s.store.GetAppraisal(ctx, appraisalID)
	if err != nil {
		return nil, err
	}
	if a.RoleOf(actorEmployeeID) == appraisal.RoleNone {
		return nil, appraisal.ErrNotParticipant
	}
	if a.Status != appraisal.StatusComplete {
		return nil, &appraisal.Error{Code: "not_complete", Message: "the summary report is available once the appraisal is complete"}
	}
	rows, err := s.store.ListAppraisalGoals(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	appraisee, err := s.store.EmployeeRefByID(ctx, a.AppraiseeID)
	if err != nil {
		return nil, err
	}
	appraiser, err := s.store.EmployeeRefByID(ctx, a.AppraiserID)
	if err != nil {
		return nil, err
	}
	reviewer, err := s.store.EmployeeRefByID(ctx, a.ReviewerID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Appraisal Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Appraisee: %s %s (%s)", appraisee.FirstName, appraisee.LastName, appraisee.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Appraiser: %s %s", appraiser.FirstName, appraiser.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Reviewer: %s %s", reviewer.FirstName, reviewer.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", a.StartDate.Format("2006-01-02"), a.EndDate.Format("2006-01-02")))
	pdf.Ln(10)

	for i, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, fmt.Sprintf("Goal %d: %s (weightage %d%%, %s)", i+1, row.Goal.Title, row.Goal.Weightage, row.Goal.Importance), "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("Self: %s - %s", derefInt(row.SelfRating), deref(row.SelfComment)), "", "L", false)
		pdf.MultiCell(0, 6, fmt.Sprintf("Appraiser: %s - %s", derefInt(row.AppraiserRating), deref(row.AppraiserComment)), "", "L", false)
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Overall")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("Appraiser overall: %s - %s", derefInt(a.AppraiserOverallRating), deref(a.AppraiserOverallComment)), "", "L", false)
	pdf.MultiCell(0, 6, fmt.Sprintf("Reviewer overall: %s - %s", derefInt(a.ReviewerOverallRating), deref(a.ReviewerOverallComment)), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
