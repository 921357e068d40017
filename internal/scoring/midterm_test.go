package scoring

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(department string) GradeRecord {
	return GradeRecord{
		ID:              7,
		StudentID:       101,
		SubjectID:       12,
		StudentFullName: "Dela Cruz, Juan",
		Department:      department,
		SubjectCode:     "IT101",
		Quizzes: []QuizItem{
			{Label: "Q1", QuizScore: 8, TotalQuizScore: 10},
			{Label: "Q2", QuizScore: 9, TotalQuizScore: 10},
		},
		ClassStandingItems: []ClassStandingItem{{Label: "CS1", Score: 18, Total: 20}},
		RecitationScore:    90,
		AttendanceScore:    100,
		SEPScore:           0,
		ProjectScore:       85,
		PrelimScore:        40,
		PrelimTotal:        50,
		MidtermScore:       42,
		MidtermTotal:       50,
	}
}

func sampleWeights() WeightConfig {
	return WeightConfig{
		"quizWeighted":          0.3,
		"classStandingWeighted": 0.3,
		"sepWeighted":           0,
		"projectWeighted":       0.1,
		"midtermWeighted":       0.3,
		"finalsWeighted":        0.3,
	}
}

func TestCalculateMidtermScenario(t *testing.T) {
	scale := GradeScale{{MinPercentage: pct(85), MaxPercentage: 100, GradePoint: 1.25}}

	got := CalculateMidterm(sampleRecord("BSIT"), sampleWeights(), scale)
	require.True(t, got.Computed())

	assert.InDelta(t, 17.0, got.TotalQuizScore, 1e-9)
	assert.InDelta(t, 85.00, got.QuizPG, 1e-9)
	assert.InDelta(t, 25.50, got.QuizWeighted, 1e-9)
	assert.InDelta(t, 20.0, got.ClassStandingTotalScore, 1e-9)
	assert.InDelta(t, 90.00, got.ClassStandingPG, 1e-9)
	assert.InDelta(t, 93.33, got.ClassStandingAverage, 1e-9)
	assert.InDelta(t, 28.00, got.ClassStandingWeighted, 1e-9)
	assert.InDelta(t, 0.0, got.SEPWeighted, 1e-9)
	assert.InDelta(t, 85.0, got.ProjectPG, 1e-9)
	assert.InDelta(t, 8.50, got.ProjectWeighted, 1e-9)
	assert.InDelta(t, 82.0, got.TotalScorePrelimAndMidterm, 1e-9)
	assert.InDelta(t, 100.0, got.OverallPrelimAndMidterm, 1e-9)
	assert.InDelta(t, 82.00, got.CombinedPrelimMidtermAverage, 1e-9)
	assert.InDelta(t, 82.00, got.MidtermPG, 1e-9)
	assert.InDelta(t, 24.60, got.MidtermExamWeighted, 1e-9)
	assert.InDelta(t, 86.60, got.TotalMidtermGrade, 1e-9)
	assert.Equal(t, 87.0, got.TotalMidtermGradeRounded)
	assert.Equal(t, 1.25, got.GradePointEquivalent)

	assert.Equal(t, "Dela Cruz, Juan", got.StudentFullName)
	assert.Equal(t, 101, got.StudentID)
}

func TestCalculateMidtermPassThrough(t *testing.T) {
	record := sampleRecord("BSED")
	record.SEPScore = 70

	withoutWeights := CalculateMidterm(record, nil, standardScale())
	assert.False(t, withoutWeights.Computed())
	assert.Equal(t, record, withoutWeights.GradeRecord)

	withoutScale := CalculateMidterm(record, sampleWeights(), GradeScale{})
	assert.False(t, withoutScale.Computed())
	assert.Equal(t, record, withoutScale.GradeRecord)

	want, err := json.Marshal(record)
	require.NoError(t, err)
	got, err := json.Marshal(withoutScale)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestCalculateMidtermEmptyWeightsStillComputes(t *testing.T) {
	got := CalculateMidterm(sampleRecord("BSIT"), WeightConfig{}, standardScale())
	require.True(t, got.Computed())
	assert.Equal(t, 0.0, got.TotalMidtermGrade)
	assert.Equal(t, FailingGradePoint, got.GradePointEquivalent)
}

func TestCalculateMidtermSEPGating(t *testing.T) {
	weights := WeightConfig{"quizWeighted": 0.2, "classStandingWeighted": 0.2, "sepWeighted": 0.2, "projectWeighted": 0.1, "midtermWeighted": 0.3}

	for _, dept := range []string{"BSED", "bsed", " BSEd "} {
		record := sampleRecord(dept)
		record.SEPScore = 80
		got := CalculateMidterm(record, weights, standardScale())
		assert.Equal(t, 80.0, got.SEPPG, dept)
		assert.InDelta(t, 16.0, got.SEPWeighted, 1e-9, dept)
		assert.Equal(t, 80.0, got.SEPScore.Float(), dept)
	}

	for _, dept := range []string{"BSIT", "", "BSED-MATH"} {
		record := sampleRecord(dept)
		record.SEPScore = 80
		got := CalculateMidterm(record, weights, standardScale())
		assert.Equal(t, 0.0, got.SEPPG, dept)
		assert.Equal(t, 0.0, got.SEPWeighted, dept)
		assert.Equal(t, 0.0, got.SEPScore.Float(), dept)
	}
}

func TestCalculateMidtermFailingFloorIgnoresScale(t *testing.T) {
	record := GradeRecord{
		Quizzes:      []QuizItem{{QuizScore: 5, TotalQuizScore: 10}},
		PrelimScore:  30,
		PrelimTotal:  50,
		MidtermScore: 35,
		MidtermTotal: 50,
	}
	everyonePasses := GradeScale{{MinPercentage: nil, MaxPercentage: 100, GradePoint: 1.0}}

	got := CalculateMidterm(record, sampleWeights(), everyonePasses)
	require.True(t, got.Computed())
	require.LessOrEqual(t, got.TotalMidtermGradeRounded, float64(FailingThreshold))
	assert.Equal(t, FailingGradePoint, got.GradePointEquivalent)
}

func TestCalculateMidtermDoesNotMutateInput(t *testing.T) {
	record := sampleRecord("BSIT")
	record.SEPScore = 90
	record.Quizzes[0].QuizScore = Score(math.NaN())

	_ = CalculateMidterm(record, sampleWeights(), standardScale())
	assert.Equal(t, 90.0, float64(record.SEPScore))
	assert.True(t, math.IsNaN(float64(record.Quizzes[0].QuizScore)))
}

func TestCalculateMidtermIdempotent(t *testing.T) {
	record := sampleRecord("BSED")
	record.SEPScore = 77
	first := CalculateMidterm(record, sampleWeights(), standardScale())
	second := CalculateMidterm(record, sampleWeights(), standardScale())
	assert.Equal(t, first, second)

	again := CalculateMidterm(first.GradeRecord, sampleWeights(), standardScale())
	assert.Equal(t, first, again)
}

func TestCalculateMidtermWeightedSumBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		parts := []float64{rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64()}
		sum := 0.0
		for _, p := range parts {
			sum += p
		}
		weights := WeightConfig{
			"quizWeighted":          parts[0] / sum,
			"classStandingWeighted": parts[1] / sum,
			"sepWeighted":           parts[2] / sum,
			"projectWeighted":       parts[3] / sum,
			"midtermWeighted":       parts[4] / sum,
		}
		quizTotal := rng.Float64()*50 + 1
		csTotal := rng.Float64()*50 + 1
		prelimTotal := rng.Float64()*100 + 1
		midtermTotal := rng.Float64()*100 + 1
		record := GradeRecord{
			Department:         "BSED",
			Quizzes:            []QuizItem{{QuizScore: Score(rng.Float64() * quizTotal), TotalQuizScore: Score(quizTotal)}},
			ClassStandingItems: []ClassStandingItem{{Score: Score(rng.Float64() * csTotal), Total: Score(csTotal)}},
			RecitationScore:    Score(rng.Float64() * 100),
			AttendanceScore:    Score(rng.Float64() * 100),
			SEPScore:           Score(rng.Float64() * 100),
			ProjectScore:       Score(rng.Float64() * 100),
			PrelimScore:        Score(rng.Float64() * prelimTotal),
			PrelimTotal:        Score(prelimTotal),
			MidtermScore:       Score(rng.Float64() * midtermTotal),
			MidtermTotal:       Score(midtermTotal),
		}
		got := CalculateMidterm(record, weights, standardScale())
		require.True(t, got.Computed())
		assert.GreaterOrEqual(t, got.TotalMidtermGrade, -0.01)
		assert.LessOrEqual(t, got.TotalMidtermGrade, 100.01)
	}
}

func TestCalculateNeverPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	odd := []float64{0, -1, -1e9, 1e12, math.NaN(), math.Inf(1), math.Inf(-1), 0.5, 100}
	pickOdd := func() Score { return Score(odd[rng.Intn(len(odd))]) }
	weightValues := []interface{}{nil, "x", "0.3", -2, 0.25, math.NaN(), true, struct{}{}, []string{"a"}}
	pickWeight := func() interface{} { return weightValues[rng.Intn(len(weightValues))] }

	for i := 0; i < 1000; i++ {
		record := GradeRecord{
			Department:         []string{"BSED", "BSIT", "", "bsed"}[rng.Intn(4)],
			RecitationScore:    pickOdd(),
			AttendanceScore:    pickOdd(),
			SEPScore:           pickOdd(),
			ProjectScore:       pickOdd(),
			PrelimScore:        pickOdd(),
			PrelimTotal:        pickOdd(),
			MidtermScore:       pickOdd(),
			MidtermTotal:       pickOdd(),
			FinalsScore:        pickOdd(),
			FinalsTotal:        pickOdd(),
			Quizzes:            []QuizItem{{QuizScore: pickOdd(), TotalQuizScore: pickOdd()}},
			ClassStandingItems: []ClassStandingItem{{Score: pickOdd(), Total: pickOdd()}},
		}
		weights := WeightConfig{
			KeyQuizWeighted:       pickWeight(),
			KeyClassStandingAlt:   pickWeight(),
			KeySEPWeighted:        pickWeight(),
			KeyProjectWeightedAlt: pickWeight(),
			KeyMidtermWeighted:    pickWeight(),
			KeyFinalsWeightedAlt:  pickWeight(),
		}
		lower := float64(pickOdd())
		scale := GradeScale{{MinPercentage: &lower, MaxPercentage: float64(pickOdd()), GradePoint: float64(pickOdd())}}

		require.NotPanics(t, func() {
			m := CalculateMidterm(record, weights, scale)
			f := CalculateFinals(record, weights, scale)
			_, _ = CalculateCourseGrade(m, f, scale)
			_, err := json.Marshal(m)
			require.NoError(t, err)
			_, err = json.Marshal(f)
			require.NoError(t, err)
		})
	}
}

func TestMidtermGradeJSONKeys(t *testing.T) {
	got := CalculateMidterm(sampleRecord("BSIT"), sampleWeights(), standardScale())
	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{
		"studentFullName", "quizzes", "totalQuizScore", "quizPG", "quizWeighted",
		"classStandingTotalScore", "classStandingPG", "classStandingAverage", "classStandingWeighted",
		"seppg", "sepweighted", "projectPG", "projectWeighted", "totalScorePrelimAndMidterm",
		"overallPrelimAndMidterm", "combinedPrelimMidtermAverage", "midtermPG", "midtermExamWeighted",
		"totalMidtermGrade", "totalMidtermGradeRounded", "gradePointEquivalent",
	} {
		assert.Contains(t, decoded, key)
	}
	assert.NotContains(t, decoded, "sepWeighted")
}

const looseRecordJSON = `{
	"id": 1,
	"studentId": "S-001",
	"fullname": "Juan",
	"email": "j@x",
	"studentNumber": 2024001,
	"department": "BSIT",
	"quizzes": [
		{"label": "Q1", "quizScore": 8, "totalQuizScore": 10, "quizId": 55},
		{"label": "Q2", "quizScore": "9", "totalQuizScore": 10, "quizId": 56}
	],
	"classStandingItems": [{"label": "CS1", "score": 18, "total": 20, "itemId": 9}],
	"recitationScore": "90",
	"attendanceScore": 100,
	"sepScore": 95,
	"projectScore": 85,
	"prelimScore": 40,
	"prelimTotal": 50,
	"midtermScore": 42,
	"midtermTotal": 50
}`

func TestMidtermPassThroughKeepsInputObject(t *testing.T) {
	var record GradeRecord
	require.NoError(t, json.Unmarshal([]byte(looseRecordJSON), &record))
	assert.Equal(t, 0, record.StudentID)
	assert.Equal(t, "2024001", record.StudentNumber)

	for name, got := range map[string]MidtermGrade{
		"no weights": CalculateMidterm(record, nil, standardScale()),
		"no scale":   CalculateMidterm(record, sampleWeights(), nil),
	} {
		raw, err := json.Marshal(got)
		require.NoError(t, err, name)
		assert.JSONEq(t, looseRecordJSON, string(raw), name)
	}
}

func TestMidtermComputedKeepsUnknownKeys(t *testing.T) {
	var record GradeRecord
	require.NoError(t, json.Unmarshal([]byte(looseRecordJSON), &record))

	got := CalculateMidterm(record, sampleWeights(), standardScale())
	require.True(t, got.Computed())
	assert.InDelta(t, 86.60, got.TotalMidtermGrade, 1e-9)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "S-001", decoded["studentId"])
	assert.Equal(t, "Juan", decoded["fullname"])
	assert.Equal(t, "j@x", decoded["email"])
	assert.Equal(t, 2024001.0, decoded["studentNumber"])
	assert.Equal(t, 90.0, decoded["recitationScore"])
	assert.Equal(t, 0.0, decoded["sepScore"])
	assert.Equal(t, 86.6, decoded["totalMidtermGrade"])
	assert.NotContains(t, decoded, "finalsScore")
	assert.NotContains(t, decoded, "subjectCode")

	quizzes, ok := decoded["quizzes"].([]interface{})
	require.True(t, ok)
	require.Len(t, quizzes, 2)
	second := quizzes[1].(map[string]interface{})
	assert.Equal(t, 56.0, second["quizId"])
	assert.Equal(t, 9.0, second["quizScore"])
	items := decoded["classStandingItems"].([]interface{})
	assert.Equal(t, 9.0, items[0].(map[string]interface{})["itemId"])
}

func TestMidtermGradeDecodesBreakdown(t *testing.T) {
	var record GradeRecord
	require.NoError(t, json.Unmarshal([]byte(looseRecordJSON), &record))
	raw, err := json.Marshal(CalculateMidterm(record, sampleWeights(), standardScale()))
	require.NoError(t, err)

	var grade MidtermGrade
	require.NoError(t, json.Unmarshal(raw, &grade))
	require.True(t, grade.Computed())
	assert.Equal(t, 87.0, grade.TotalMidtermGradeRounded)
	assert.JSONEq(t, `"Juan"`, string(grade.raw["fullname"]))

	again, err := json.Marshal(grade)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(again))
}

func TestGradeRecordRejectsNonObject(t *testing.T) {
	var record GradeRecord
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &record))
	require.NoError(t, json.Unmarshal([]byte(`null`), &record))
	assert.Equal(t, GradeRecord{}, record)
}
