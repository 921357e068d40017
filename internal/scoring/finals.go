package scoring

// FinalsBreakdown carries every value derived for a finals record.
type FinalsBreakdown struct {
	TotalQuizScore          float64 `json:"totalQuizScore"`
	QuizPG                  float64 `json:"quizPG"`
	QuizWeighted            float64 `json:"quizWeighted"`
	ClassStandingTotalScore float64 `json:"classStandingTotalScore"`
	ClassStandingPG         float64 `json:"classStandingPG"`
	ClassStandingAverage    float64 `json:"classStandingAverage"`
	ClassStandingWeighted   float64 `json:"classStandingWeighted"`
	SEPPG                   float64 `json:"seppg"`
	SEPWeighted             float64 `json:"sepWeighted"`
	ProjectPG               float64 `json:"projectPG"`
	ProjectWeighted         float64 `json:"projectWeighted"`
	CombinedFinalsAverage   float64 `json:"combinedFinalsAverage"`
	FinalsPG                float64 `json:"finalsPG"`
	FinalsWeightedTotal     float64 `json:"finalsWeightedTotal"`
	TotalFinalsGrade        float64 `json:"totalFinalsGrade"`
	TotalFinalsGradeRounded float64 `json:"totalFinalsGradeRounded"`
	GradePointEquivalent    float64 `json:"gradePointEquivalent"`
}

// FinalsGrade is a grade record merged with its finals breakdown.
type FinalsGrade struct {
	GradeRecord
	*FinalsBreakdown
}

// Computed reports whether the breakdown was calculated.
func (g FinalsGrade) Computed() bool {
	return g.FinalsBreakdown != nil
}

// CalculateFinals scores a finals record, using the single finals exam pair
// in place of prelim and midterm.
func CalculateFinals(record GradeRecord, weights WeightConfig, scale GradeScale) FinalsGrade {
	if weights == nil || len(scale) == 0 {
		return FinalsGrade{GradeRecord: record}
	}
	r := record.sanitized()
	w := weights.ResolveWeights(TermFinals)
	c := aggregate(r, w)

	examPG := NormalizeRawScore(r.FinalsScore.Float(), r.FinalsTotal.Float())
	examWeighted := weigh(examPG, w.Exam)
	total, rounded, point := c.composite(examWeighted, scale)

	return FinalsGrade{
		GradeRecord: r,
		FinalsBreakdown: &FinalsBreakdown{
			TotalQuizScore:          c.totalQuizScore,
			QuizPG:                  c.quizPG,
			QuizWeighted:            c.quizWeighted,
			ClassStandingTotalScore: c.classStandingTotalScore,
			ClassStandingPG:         c.classStandingPG,
			ClassStandingAverage:    c.classStandingAverage,
			ClassStandingWeighted:   c.classStandingWeighted,
			SEPPG:                   c.sepPG,
			SEPWeighted:             c.sepWeighted,
			ProjectPG:               c.projectPG,
			ProjectWeighted:         c.projectWeighted,
			CombinedFinalsAverage:   examPG,
			FinalsPG:                examPG,
			FinalsWeightedTotal:     examWeighted,
			TotalFinalsGrade:        total,
			TotalFinalsGradeRounded: rounded,
			GradePointEquivalent:    point,
		},
	}
}
