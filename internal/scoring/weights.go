package scoring

// Weight key pairs. The grading API has emitted both spellings over time.
const (
	KeyQuizWeighted          = "quizWeighted"
	KeyQuizWeightedAlt       = "QuizWeighted"
	KeyClassStandingWeighted = "classStandingWeighted"
	KeyClassStandingAlt      = "ClassStandingWeighted"
	KeySEPWeighted           = "sepWeighted"
	KeySEPWeightedAlt        = "SEPWeighted"
	KeyProjectWeighted       = "projectWeighted"
	KeyProjectWeightedAlt    = "ProjectWeighted"
	KeyMidtermWeighted       = "midtermWeighted"
	KeyMidtermWeightedAlt    = "MidtermWeighted"
	KeyFinalsWeighted        = "finalsWeighted"
	KeyFinalsWeightedAlt     = "FinalsWeighted"
)

// WeightConfig maps weight names to fractions between 0 and 1.
type WeightConfig map[string]interface{}

// Resolve returns the weight stored under camelKey, falling back to pascalKey
// and then to 0.
func (w WeightConfig) Resolve(camelKey, pascalKey string) float64 {
	if w == nil {
		return 0
	}
	if v, ok := w[camelKey]; ok && v != nil {
		return toNumber(v)
	}
	if v, ok := w[pascalKey]; ok && v != nil {
		return toNumber(v)
	}
	return 0
}

// Weights holds resolved component weights.
type Weights struct {
	Quiz          float64 `json:"quizWeighted"`
	ClassStanding float64 `json:"classStandingWeighted"`
	SEP           float64 `json:"sepWeighted"`
	Project       float64 `json:"projectWeighted"`
	Exam          float64 `json:"examWeighted"`
}

// Sum adds all component weights.
func (w Weights) Sum() float64 {
	return w.Quiz + w.ClassStanding + w.SEP + w.Project + w.Exam
}

// ResolveWeights returns the component weights applied for the given term.
func (w WeightConfig) ResolveWeights(term Term) Weights {
	weights := Weights{
		Quiz:          w.Resolve(KeyQuizWeighted, KeyQuizWeightedAlt),
		ClassStanding: w.Resolve(KeyClassStandingWeighted, KeyClassStandingAlt),
		SEP:           w.Resolve(KeySEPWeighted, KeySEPWeightedAlt),
		Project:       w.Resolve(KeyProjectWeighted, KeyProjectWeightedAlt),
	}
	switch term {
	case TermFinals:
		weights.Exam = w.Resolve(KeyFinalsWeighted, KeyFinalsWeightedAlt)
	default:
		weights.Exam = w.Resolve(KeyMidtermWeighted, KeyMidtermWeightedAlt)
	}
	return weights
}
