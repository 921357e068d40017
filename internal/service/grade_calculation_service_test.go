package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grunt24/grading-api/internal/dto"
	"github.com/grunt24/grading-api/internal/models"
	"github.com/grunt24/grading-api/internal/scoring"
	appErrors "github.com/grunt24/grading-api/pkg/errors"
)

type stubConfigSource struct {
	weights  scoring.WeightConfig
	scale    scoring.GradeScale
	cacheHit bool
	err      error
}

func (s *stubConfigSource) WeightConfig(ctx context.Context) (scoring.WeightConfig, bool, error) {
	return s.weights, s.cacheHit, s.err
}

func (s *stubConfigSource) Scale(ctx context.Context) (scoring.GradeScale, bool, error) {
	return s.scale, s.cacheHit, s.err
}

func configuredSource() *stubConfigSource {
	return &stubConfigSource{
		weights: storedPercentage().WeightConfig(),
		scale:   models.GradeScale(storedEquivalents()),
	}
}

func midtermRecord() scoring.GradeRecord {
	return scoring.GradeRecord{
		StudentID:          101,
		StudentNumber:      "2024-0001",
		StudentFullName:    "Dela Cruz, Juan",
		Department:         "BSIT",
		SubjectCode:        "IT101",
		Quizzes:            []scoring.QuizItem{{QuizScore: 8, TotalQuizScore: 10}, {QuizScore: 9, TotalQuizScore: 10}},
		ClassStandingItems: []scoring.ClassStandingItem{{Score: 18, Total: 20}},
		RecitationScore:    90,
		AttendanceScore:    100,
		SEPScore:           95,
		ProjectScore:       85,
		PrelimScore:        40,
		PrelimTotal:        50,
		MidtermScore:       42,
		MidtermTotal:       50,
	}
}

func finalsRecord() scoring.GradeRecord {
	r := midtermRecord()
	r.PrelimScore, r.PrelimTotal, r.MidtermScore, r.MidtermTotal = 0, 0, 0, 0
	r.FinalsScore, r.FinalsTotal = 45, 50
	return r
}

func newCalculationService(source gradeConfigSource, metrics *MetricsService, maxBatch int) *GradeCalculationService {
	svc := NewGradeCalculationService(GradeCalculationServiceParams{
		Config:       source,
		Metrics:      metrics,
		Logger:       zap.NewNop(),
		MaxBatchSize: maxBatch,
	})
	svc.export.now = func() time.Time { return time.Date(2024, 10, 1, 8, 30, 0, 0, time.UTC) }
	return svc
}

func TestGradeCalculationServiceMidterm(t *testing.T) {
	metrics := NewMetricsService()
	svc := newCalculationService(configuredSource(), metrics, 0)

	result, err := svc.CalculateMidterm(context.Background(), dto.CalculateGradesRequest{Records: []scoring.GradeRecord{midtermRecord()}})
	require.NoError(t, err)
	assert.True(t, result.Computed)
	require.Len(t, result.Grades, 1)

	grade := result.Grades[0]
	require.True(t, grade.Computed())
	assert.InDelta(t, 86.60, grade.TotalMidtermGrade, 1e-9)
	assert.Equal(t, 87.0, grade.TotalMidtermGradeRounded)
	assert.Equal(t, 1.25, grade.GradePointEquivalent)
	assert.Equal(t, scoring.Score(0), grade.SEPScore)
	assert.Equal(t, uint64(1), metrics.Snapshot().GradesComputed)
}

func TestGradeCalculationServiceFinals(t *testing.T) {
	source := configuredSource()
	source.cacheHit = true
	svc := newCalculationService(source, nil, 0)

	result, err := svc.CalculateFinals(context.Background(), dto.CalculateGradesRequest{Records: []scoring.GradeRecord{finalsRecord(), finalsRecord()}})
	require.NoError(t, err)
	assert.True(t, result.CacheHit)
	require.Len(t, result.Grades, 2)
	assert.InDelta(t, 89.0, result.Grades[1].TotalFinalsGrade, 1e-9)
	assert.Equal(t, 1.25, result.Grades[1].GradePointEquivalent)
}

func TestGradeCalculationServiceUnconfigured(t *testing.T) {
	metrics := NewMetricsService()
	svc := newCalculationService(&stubConfigSource{}, metrics, 0)

	record := midtermRecord()
	result, err := svc.CalculateMidterm(context.Background(), dto.CalculateGradesRequest{Records: []scoring.GradeRecord{record}})
	require.NoError(t, err)
	assert.False(t, result.Computed)
	assert.False(t, result.Grades[0].Computed())
	assert.Equal(t, record, result.Grades[0].GradeRecord)
	assert.Equal(t, uint64(1), metrics.Snapshot().GradesSkipped)
}

func TestGradeCalculationServiceBatchLimits(t *testing.T) {
	svc := newCalculationService(configuredSource(), nil, 2)
	ctx := context.Background()

	_, err := svc.CalculateMidterm(ctx, dto.CalculateGradesRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	records := []scoring.GradeRecord{midtermRecord(), midtermRecord(), midtermRecord()}
	_, err = svc.CalculateFinals(ctx, dto.CalculateGradesRequest{Records: records})
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErrors.FromError(err).Status)
}

func TestGradeCalculationServiceConfigFailure(t *testing.T) {
	source := &stubConfigSource{err: appErrors.Wrap(errors.New("db down"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade percentage")}
	svc := newCalculationService(source, nil, 0)

	_, err := svc.CalculateMidterm(context.Background(), dto.CalculateGradesRequest{Records: []scoring.GradeRecord{midtermRecord()}})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}

func TestGradeCalculationServiceCourse(t *testing.T) {
	svc := newCalculationService(configuredSource(), nil, 0)

	result, err := svc.CalculateCourse(context.Background(), dto.CourseGradeRequest{
		Items: []dto.CourseGradeItem{{Midterm: midtermRecord(), Finals: finalsRecord()}},
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	course := result.Results[0].Course
	require.NotNil(t, course)
	assert.InDelta(t, 87.80, course.ComputedFinalCourseGrade, 1e-9)
	assert.Equal(t, 88.0, course.RoundedFinalCourseGrade)
	assert.Equal(t, 1.25, course.GradePointEquivalent)
	assert.Equal(t, "Dela Cruz, Juan", course.StudentName)
}

func TestGradeCalculationServiceCourseUnconfigured(t *testing.T) {
	svc := newCalculationService(&stubConfigSource{}, nil, 0)

	result, err := svc.CalculateCourse(context.Background(), dto.CourseGradeRequest{
		Items: []dto.CourseGradeItem{{Midterm: midtermRecord(), Finals: finalsRecord()}},
	})
	require.NoError(t, err)
	assert.False(t, result.Computed)
	assert.Nil(t, result.Results[0].Course)
}

func TestGradeCalculationServiceExportCSV(t *testing.T) {
	svc := newCalculationService(configuredSource(), nil, 0)

	file, err := svc.Export(context.Background(), dto.ExportGradesRequest{
		Term:    "midterm",
		Format:  "csv",
		Records: []scoring.GradeRecord{midtermRecord()},
	})
	require.NoError(t, err)
	assert.Equal(t, "midterm_grades_20241001_083000.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Student No.", rows[0][0])
	assert.Equal(t, []string{"2024-0001", "Dela Cruz, Juan", "IT101", "25.50", "28.00", "0.00", "8.50", "24.60", "86.60", "87", "1.25"}, rows[1])
}

func TestGradeCalculationServiceExportPDF(t *testing.T) {
	svc := newCalculationService(configuredSource(), nil, 0)

	file, err := svc.Export(context.Background(), dto.ExportGradesRequest{
		Term:    "finals",
		Format:  "PDF",
		Title:   "IT101 Finals",
		Records: []scoring.GradeRecord{finalsRecord()},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestGradeCalculationServiceExportRejects(t *testing.T) {
	svc := newCalculationService(configuredSource(), nil, 0)
	ctx := context.Background()

	_, err := svc.Export(ctx, dto.ExportGradesRequest{Term: "midterm", Format: "xlsx", Records: []scoring.GradeRecord{midtermRecord()}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFormat.Code, appErrors.FromError(err).Code)

	_, err = svc.Export(ctx, dto.ExportGradesRequest{Term: "prelim", Format: "csv", Records: []scoring.GradeRecord{midtermRecord()}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
