package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/grunt24/grading-api/internal/dto"
	"github.com/grunt24/grading-api/internal/scoring"
	appErrors "github.com/grunt24/grading-api/pkg/errors"
	"github.com/grunt24/grading-api/pkg/export"
)

var sheetColumns = []export.Column{
	{Key: "student_number", Label: "Student No.", Width: 24},
	{Key: "student", Label: "Student"},
	{Key: "subject", Label: "Subject", Width: 24},
	{Key: "quiz", Label: "Quiz", Width: 16},
	{Key: "class_standing", Label: "Class Standing", Width: 24},
	{Key: "sep", Label: "SEP", Width: 14},
	{Key: "project", Label: "Project", Width: 16},
	{Key: "exam", Label: "Exam", Width: 16},
	{Key: "total", Label: "Total", Width: 16},
	{Key: "rounded", Label: "Rounded", Width: 18},
	{Key: "grade_point", Label: "Grade Point", Width: 20},
}

// ExportService turns calculated grades into downloadable grade sheets.
type ExportService struct {
	title  string
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(title string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(title) == "" {
		title = "Grade Sheet"
	}
	return &ExportService{title: title, logger: logger, now: time.Now}
}

// MidtermSheet lays out midterm results, one row per record.
func (s *ExportService) MidtermSheet(grades []scoring.MidtermGrade, title string) export.Sheet {
	rows := make([]map[string]string, 0, len(grades))
	for _, g := range grades {
		row := identityRow(g.GradeRecord)
		if b := g.MidtermBreakdown; b != nil {
			fillBreakdownRow(row, b.QuizWeighted, b.ClassStandingWeighted, b.SEPWeighted, b.ProjectWeighted,
				b.MidtermExamWeighted, b.TotalMidtermGrade, b.TotalMidtermGradeRounded, b.GradePointEquivalent)
		}
		rows = append(rows, row)
	}
	return s.sheet(scoring.TermMidterm, title, rows)
}

// FinalsSheet lays out finals results, one row per record.
func (s *ExportService) FinalsSheet(grades []scoring.FinalsGrade, title string) export.Sheet {
	rows := make([]map[string]string, 0, len(grades))
	for _, g := range grades {
		row := identityRow(g.GradeRecord)
		if b := g.FinalsBreakdown; b != nil {
			fillBreakdownRow(row, b.QuizWeighted, b.ClassStandingWeighted, b.SEPWeighted, b.ProjectWeighted,
				b.FinalsWeightedTotal, b.TotalFinalsGrade, b.TotalFinalsGradeRounded, b.GradePointEquivalent)
		}
		rows = append(rows, row)
	}
	return s.sheet(scoring.TermFinals, title, rows)
}

// Render encodes the sheet in the requested format.
func (s *ExportService) Render(term scoring.Term, format string, sheet export.Sheet) (*dto.ExportFile, error) {
	renderer, err := export.ForFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnsupportedFormat.Code, appErrors.ErrUnsupportedFormat.Status, fmt.Sprintf("format %q is not supported, use csv or pdf", format))
	}
	body, err := renderer.Render(sheet)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render grade sheet")
	}
	file := &dto.ExportFile{
		Filename:    s.buildFilename(term, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}
	s.logger.Debug("grade sheet rendered",
		zap.String("term", string(term)),
		zap.String("filename", file.Filename),
		zap.Int("rows", len(sheet.Rows)),
		zap.Int("bytes", len(body)))
	return file, nil
}

func (s *ExportService) sheet(term scoring.Term, title string, rows []map[string]string) export.Sheet {
	if strings.TrimSpace(title) == "" {
		title = s.title
	}
	return export.Sheet{
		Title:    title,
		Subtitle: fmt.Sprintf("%s grades, generated %s", termLabel(term), s.now().UTC().Format("2006-01-02 15:04 UTC")),
		Columns:  sheetColumns,
		Rows:     rows,
	}
}

func termLabel(term scoring.Term) string {
	switch term {
	case scoring.TermMidterm:
		return "Midterm"
	case scoring.TermFinals:
		return "Finals"
	default:
		return string(term)
	}
}

func (s *ExportService) buildFilename(term scoring.Term, ext string) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_grades_%s.%s", sanitizeFilename(string(term)), timestamp, ext)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func identityRow(r scoring.GradeRecord) map[string]string {
	subject := r.SubjectCode
	if subject == "" {
		subject = r.SubjectName
	}
	return map[string]string{
		"student_number": r.StudentNumber,
		"student":        r.StudentFullName,
		"subject":        subject,
	}
}

func fillBreakdownRow(row map[string]string, quiz, classStanding, sep, project, exam, total, rounded, point float64) {
	row["quiz"] = formatScore(quiz)
	row["class_standing"] = formatScore(classStanding)
	row["sep"] = formatScore(sep)
	row["project"] = formatScore(project)
	row["exam"] = formatScore(exam)
	row["total"] = formatScore(total)
	row["rounded"] = fmt.Sprintf("%.0f", rounded)
	row["grade_point"] = formatScore(point)
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
