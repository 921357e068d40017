package scoring

// components holds the term-independent part of a grade breakdown.
type components struct {
	totalQuizScore          float64
	quizPG                  float64
	quizWeighted            float64
	classStandingTotalScore float64
	classStandingPG         float64
	classStandingAverage    float64
	classStandingWeighted   float64
	sepPG                   float64
	sepWeighted             float64
	projectPG               float64
	projectWeighted         float64
}

func weigh(pg, weight float64) float64 {
	return round2(pg * weight)
}

func aggregateQuizzes(items []QuizItem, weight float64) (total, pg, weighted float64) {
	var possible float64
	for _, q := range items {
		total += q.QuizScore.Float()
		possible += q.TotalQuizScore.Float()
	}
	pg = NormalizeRawScore(total, possible)
	return total, pg, weigh(pg, weight)
}

func aggregateClassStanding(r GradeRecord, weight float64) (possible, pg, average, weighted float64) {
	var score float64
	for _, cs := range r.ClassStandingItems {
		score += cs.Score.Float()
		possible += cs.Total.Float()
	}
	pg = NormalizeRawScore(score, possible)
	average = round2((r.RecitationScore.Float() + r.AttendanceScore.Float() + pg) / 3)
	return possible, pg, average, weigh(average, weight)
}

// aggregate computes quiz, class standing, SEP and project for a sanitized record.
func aggregate(r GradeRecord, w Weights) components {
	var c components
	c.totalQuizScore, c.quizPG, c.quizWeighted = aggregateQuizzes(r.Quizzes, w.Quiz)
	c.classStandingTotalScore, c.classStandingPG, c.classStandingAverage, c.classStandingWeighted = aggregateClassStanding(r, w.ClassStanding)
	c.sepPG = r.SEPScore.Float()
	c.sepWeighted = weigh(c.sepPG, w.SEP)
	c.projectPG = r.ProjectScore.Float()
	c.projectWeighted = weigh(c.projectPG, w.Project)
	return c
}

// composite sums the weighted components with the exam part and classifies it.
func (c components) composite(examWeighted float64, scale GradeScale) (total, rounded, point float64) {
	total = round2(c.quizWeighted + c.classStandingWeighted + c.sepWeighted + c.projectWeighted + examWeighted)
	rounded = roundHalfUp(total)
	return total, rounded, scale.GradePoint(rounded)
}
