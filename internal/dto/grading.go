package dto

import "github.com/grunt24/grading-api/internal/scoring"

// UpdateGradePercentageRequest replaces the component weights. Every weight
// is a fraction between 0 and 1.
type UpdateGradePercentageRequest struct {
	QuizWeighted          *float64 `json:"quizWeighted" validate:"required,gte=0,lte=1"`
	ClassStandingWeighted *float64 `json:"classStandingWeighted" validate:"required,gte=0,lte=1"`
	SEPWeighted           *float64 `json:"sepWeighted" validate:"required,gte=0,lte=1"`
	ProjectWeighted       *float64 `json:"projectWeighted" validate:"required,gte=0,lte=1"`
	MidtermWeighted       *float64 `json:"midtermWeighted" validate:"required,gte=0,lte=1"`
	FinalsWeighted        *float64 `json:"finalsWeighted" validate:"required,gte=0,lte=1"`
}

// GradeEquivalentRequest describes one band of the grade-point table.
type GradeEquivalentRequest struct {
	MinPercentage *float64 `json:"minPercentage" validate:"omitempty,gte=0,lte=100"`
	MaxPercentage float64  `json:"maxPercentage" validate:"gte=0,lte=100"`
	GradePoint    float64  `json:"gradePoint" validate:"gt=0"`
	Description   *string  `json:"description" validate:"omitempty,max=120"`
}

// ReplaceGradeEquivalentsRequest replaces the whole table. Order is lookup order.
type ReplaceGradeEquivalentsRequest struct {
	Equivalents []GradeEquivalentRequest `json:"equivalents" validate:"required,min=1,dive"`
}

// CalculateGradesRequest carries a batch of records for one term.
type CalculateGradesRequest struct {
	Records []scoring.GradeRecord `json:"records" validate:"required,min=1"`
}

// CourseGradeItem pairs the midterm and finals records of one student and subject.
type CourseGradeItem struct {
	Midterm scoring.GradeRecord `json:"midterm"`
	Finals  scoring.GradeRecord `json:"finals"`
}

// CourseGradeRequest carries a batch of course grade pairs.
type CourseGradeRequest struct {
	Items []CourseGradeItem `json:"items" validate:"required,min=1"`
}

// ExportGradesRequest asks for a rendered grade sheet.
type ExportGradesRequest struct {
	Term    string                `json:"term" validate:"required,oneof=midterm finals"`
	Format  string                `json:"format" validate:"required"`
	Title   string                `json:"title" validate:"omitempty,max=120"`
	Records []scoring.GradeRecord `json:"records" validate:"required,min=1"`
}

// MidtermBatch is the result of a midterm calculation request.
type MidtermBatch struct {
	Grades   []scoring.MidtermGrade
	Computed bool
	CacheHit bool
}

// FinalsBatch is the result of a finals calculation request.
type FinalsBatch struct {
	Grades   []scoring.FinalsGrade
	Computed bool
	CacheHit bool
}

// CourseGradeResult holds both term breakdowns and the course grade when it
// could be computed.
type CourseGradeResult struct {
	Midterm scoring.MidtermGrade `json:"midterm"`
	Finals  scoring.FinalsGrade  `json:"finals"`
	Course  *scoring.CourseGrade `json:"course,omitempty"`
}

// CourseBatch is the result of a course grade request.
type CourseBatch struct {
	Results  []CourseGradeResult
	Computed bool
	CacheHit bool
}

// ExportFile is a rendered grade sheet.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
