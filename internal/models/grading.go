package models

import (
	"time"

	"github.com/grunt24/grading-api/internal/scoring"
)

// GradePercentage is the stored weight row used by every calculation.
type GradePercentage struct {
	ID                    string    `db:"id" json:"id"`
	QuizWeighted          float64   `db:"quiz_weighted" json:"quizWeighted"`
	ClassStandingWeighted float64   `db:"class_standing_weighted" json:"classStandingWeighted"`
	SEPWeighted           float64   `db:"sep_weighted" json:"sepWeighted"`
	ProjectWeighted       float64   `db:"project_weighted" json:"projectWeighted"`
	MidtermWeighted       float64   `db:"midterm_weighted" json:"midtermWeighted"`
	FinalsWeighted        float64   `db:"finals_weighted" json:"finalsWeighted"`
	UpdatedAt             time.Time `db:"updated_at" json:"updatedAt"`
}

// WeightConfig exposes the row in the engine's camel key spelling.
func (p *GradePercentage) WeightConfig() scoring.WeightConfig {
	if p == nil {
		return nil
	}
	return scoring.WeightConfig{
		scoring.KeyQuizWeighted:          p.QuizWeighted,
		scoring.KeyClassStandingWeighted: p.ClassStandingWeighted,
		scoring.KeySEPWeighted:           p.SEPWeighted,
		scoring.KeyProjectWeighted:       p.ProjectWeighted,
		scoring.KeyMidtermWeighted:       p.MidtermWeighted,
		scoring.KeyFinalsWeighted:        p.FinalsWeighted,
	}
}

// GradeEquivalent is one stored band of the grade-point table.
type GradeEquivalent struct {
	ID            string    `db:"id" json:"id"`
	MinPercentage *float64  `db:"min_percentage" json:"minPercentage"`
	MaxPercentage float64   `db:"max_percentage" json:"maxPercentage"`
	GradePoint    float64   `db:"grade_point" json:"gradePoint"`
	Description   *string   `db:"description" json:"description,omitempty"`
	SortOrder     int       `db:"sort_order" json:"sortOrder"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// GradeScale converts ordered rows into the lookup table.
func GradeScale(rows []GradeEquivalent) scoring.GradeScale {
	if len(rows) == 0 {
		return nil
	}
	scale := make(scoring.GradeScale, 0, len(rows))
	for _, row := range rows {
		band := scoring.GradeBand{
			MaxPercentage: row.MaxPercentage,
			GradePoint:    row.GradePoint,
		}
		if row.MinPercentage != nil {
			lower := *row.MinPercentage
			band.MinPercentage = &lower
		}
		if row.Description != nil {
			band.Description = *row.Description
		}
		scale = append(scale, band)
	}
	return scale
}
