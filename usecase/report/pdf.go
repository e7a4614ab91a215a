package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/daydone/backend/domain"
)

const (
	pdfMargin   = 15.0
	pdfBarWidth = 120.0
	pdfBarH     = 4.0
)

// PDF renders the report to an A4 document with the same sections as the
// JSON export. State is untouched on failure.
func (s *Service) PDF(ctx context.Context) ([]byte, string, error) {
	r := s.Build(ctx)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Todo List Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", r.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, fmt.Sprintf("Total Todos: %d", r.TotalTodos))
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Completed: %d    Pending: %d", r.CompletedTodos, r.PendingTodos), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	sectionTitle(pdf, "Accuracy")
	percentBar(pdf, "Daily", r.DailyAccuracy)
	percentBar(pdf, "Weekly", r.WeeklyAccuracy)
	percentBar(pdf, "Monthly", r.MonthlyAccuracy)
	pdf.Ln(3)

	sectionTitle(pdf, fmt.Sprintf("Current Streak: %d days", r.CurrentStreak))
	pdf.Ln(3)

	sectionTitle(pdf, "Category Stats")
	for _, stat := range r.CategoryStats {
		countBar(pdf, string(stat.Category), stat.Completed, stat.Total)
	}
	pdf.Ln(3)

	sectionTitle(pdf, "Priority Stats")
	for _, stat := range r.PriorityStats {
		countBar(pdf, string(stat.Priority), stat.Completed, stat.Total)
	}
	pdf.Ln(3)

	if len(r.Todos) > 0 {
		sectionTitle(pdf, "Todos")
		pdf.SetFont("Helvetica", "", 10)
		for _, t := range r.Todos {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s  (%s, %s)", mark, t.Text, t.Category, t.Priority)
			if t.DueDate != "" {
				line += fmt.Sprintf("  due %s", t.DueDate)
				if t.DueTime != "" {
					line += fmt.Sprintf(" %s", t.DueTime)
				}
			}
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "render report pdf", err)
	}
	return buf.Bytes(), fmt.Sprintf("todo-report-%s.pdf", r.GeneratedAt.Format(domain.DueDateLayout)), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func percentBar(pdf *gofpdf.Fpdf, label string, percent int) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(40, 6, fmt.Sprintf("%s: %d%%", label, percent), "", 0, "L", false, 0, "")
	drawBar(pdf, float64(percent)/100)
}

func countBar(pdf *gofpdf.Fpdf, label string, completed, total int) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(40, 6, fmt.Sprintf("%s: %d/%d", label, completed, total), "", 0, "L", false, 0, "")
	ratio := 0.0
	if total > 0 {
		ratio = float64(completed) / float64(total)
	}
	drawBar(pdf, ratio)
}

func drawBar(pdf *gofpdf.Fpdf, ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	x, y := pdf.GetXY()
	pdf.SetFillColor(230, 230, 230)
	pdf.Rect(x, y+1, pdfBarWidth, pdfBarH, "F")
	if ratio > 0 {
		pdf.SetFillColor(76, 175, 80)
		pdf.Rect(x, y+1, pdfBarWidth*ratio, pdfBarH, "F")
	}
	pdf.Ln(7)
}
