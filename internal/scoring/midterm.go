package scoring

// MidtermBreakdown carries every value derived for a midterm record.
type MidtermBreakdown struct {
	TotalQuizScore               float64 `json:"totalQuizScore"`
	QuizPG                       float64 `json:"quizPG"`
	QuizWeighted                 float64 `json:"quizWeighted"`
	ClassStandingTotalScore      float64 `json:"classStandingTotalScore"`
	ClassStandingPG              float64 `json:"classStandingPG"`
	ClassStandingAverage         float64 `json:"classStandingAverage"`
	ClassStandingWeighted        float64 `json:"classStandingWeighted"`
	SEPPG                        float64 `json:"seppg"`
	SEPWeighted                  float64 `json:"sepweighted"`
	ProjectPG                    float64 `json:"projectPG"`
	ProjectWeighted              float64 `json:"projectWeighted"`
	TotalScorePrelimAndMidterm   float64 `json:"totalScorePrelimAndMidterm"`
	OverallPrelimAndMidterm      float64 `json:"overallPrelimAndMidterm"`
	CombinedPrelimMidtermAverage float64 `json:"combinedPrelimMidtermAverage"`
	MidtermPG                    float64 `json:"midtermPG"`
	MidtermExamWeighted          float64 `json:"midtermExamWeighted"`
	TotalMidtermGrade            float64 `json:"totalMidtermGrade"`
	TotalMidtermGradeRounded     float64 `json:"totalMidtermGradeRounded"`
	GradePointEquivalent         float64 `json:"gradePointEquivalent"`
}

// MidtermGrade is a grade record merged with its midterm breakdown. The
// breakdown is nil when weights or scale were not available.
type MidtermGrade struct {
	GradeRecord
	*MidtermBreakdown
}

// Computed reports whether the breakdown was calculated.
func (g MidtermGrade) Computed() bool {
	return g.MidtermBreakdown != nil
}

// CalculateMidterm scores a midterm record. Without weights or a grade scale
// the record is returned untouched.
func CalculateMidterm(record GradeRecord, weights WeightConfig, scale GradeScale) MidtermGrade {
	if weights == nil || len(scale) == 0 {
		return MidtermGrade{GradeRecord: record}
	}
	r := record.sanitized()
	w := weights.ResolveWeights(TermMidterm)
	c := aggregate(r, w)

	examScore := r.PrelimScore.Float() + r.MidtermScore.Float()
	examTotal := r.PrelimTotal.Float() + r.MidtermTotal.Float()
	examPG := NormalizeRawScore(examScore, examTotal)
	examWeighted := weigh(examPG, w.Exam)
	total, rounded, point := c.composite(examWeighted, scale)

	return MidtermGrade{
		GradeRecord: r,
		MidtermBreakdown: &MidtermBreakdown{
			TotalQuizScore:               c.totalQuizScore,
			QuizPG:                       c.quizPG,
			QuizWeighted:                 c.quizWeighted,
			ClassStandingTotalScore:      c.classStandingTotalScore,
			ClassStandingPG:              c.classStandingPG,
			ClassStandingAverage:         c.classStandingAverage,
			ClassStandingWeighted:        c.classStandingWeighted,
			SEPPG:                        c.sepPG,
			SEPWeighted:                  c.sepWeighted,
			ProjectPG:                    c.projectPG,
			ProjectWeighted:              c.projectWeighted,
			TotalScorePrelimAndMidterm:   examScore,
			OverallPrelimAndMidterm:      examTotal,
			CombinedPrelimMidtermAverage: examPG,
			MidtermPG:                    examPG,
			MidtermExamWeighted:          examWeighted,
			TotalMidtermGrade:            total,
			TotalMidtermGradeRounded:     rounded,
			GradePointEquivalent:         point,
		},
	}
}
