package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grunt24/grading-api/internal/dto"
	"github.com/grunt24/grading-api/internal/scoring"
	appErrors "github.com/grunt24/grading-api/pkg/errors"
)

const defaultMaxBatchSize = 500

type gradeConfigSource interface {
	WeightConfig(ctx context.Context) (scoring.WeightConfig, bool, error)
	Scale(ctx context.Context) (scoring.GradeScale, bool, error)
}

// GradeCalculationServiceParams groups the service dependencies.
type GradeCalculationServiceParams struct {
	Config       gradeConfigSource
	Export       *ExportService
	Metrics      *MetricsService
	Validator    *validator.Validate
	Logger       *zap.Logger
	MaxBatchSize int
}

// GradeCalculationService runs batches of records through the scoring engine
// using the stored weights and grade equivalents.
type GradeCalculationService struct {
	config       gradeConfigSource
	export       *ExportService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	maxBatchSize int
}

// NewGradeCalculationService constructs the service.
func NewGradeCalculationService(params GradeCalculationServiceParams) *GradeCalculationService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.MaxBatchSize <= 0 {
		params.MaxBatchSize = defaultMaxBatchSize
	}
	if params.Export == nil {
		params.Export = NewExportService("", params.Logger)
	}
	return &GradeCalculationService{
		config:       params.Config,
		export:       params.Export,
		metrics:      params.Metrics,
		validator:    params.Validator,
		logger:       params.Logger,
		maxBatchSize: params.MaxBatchSize,
	}
}

type engineInputs struct {
	weights  scoring.WeightConfig
	scale    scoring.GradeScale
	cacheHit bool
}

func (in engineInputs) ready() bool {
	return in.weights != nil && len(in.scale) > 0
}

// CalculateMidterm scores every record of the batch for the midterm term.
func (s *GradeCalculationService) CalculateMidterm(ctx context.Context, req dto.CalculateGradesRequest) (*dto.MidtermBatch, error) {
	if err := s.validateBatch(req, len(req.Records)); err != nil {
		return nil, err
	}
	in, err := s.inputs(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	grades := make([]scoring.MidtermGrade, len(req.Records))
	computed := 0
	for i, record := range req.Records {
		grades[i] = scoring.CalculateMidterm(record, in.weights, in.scale)
		if grades[i].Computed() {
			computed++
		}
	}
	s.observe(scoring.TermMidterm, computed, len(grades), time.Since(start))

	return &dto.MidtermBatch{Grades: grades, Computed: in.ready(), CacheHit: in.cacheHit}, nil
}

// CalculateFinals scores every record of the batch for the finals term.
func (s *GradeCalculationService) CalculateFinals(ctx context.Context, req dto.CalculateGradesRequest) (*dto.FinalsBatch, error) {
	if err := s.validateBatch(req, len(req.Records)); err != nil {
		return nil, err
	}
	in, err := s.inputs(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	grades := make([]scoring.FinalsGrade, len(req.Records))
	computed := 0
	for i, record := range req.Records {
		grades[i] = scoring.CalculateFinals(record, in.weights, in.scale)
		if grades[i].Computed() {
			computed++
		}
	}
	s.observe(scoring.TermFinals, computed, len(grades), time.Since(start))

	return &dto.FinalsBatch{Grades: grades, Computed: in.ready(), CacheHit: in.cacheHit}, nil
}

// CalculateCourse scores both terms of every pair and averages them into the
// final course grade.
func (s *GradeCalculationService) CalculateCourse(ctx context.Context, req dto.CourseGradeRequest) (*dto.CourseBatch, error) {
	if err := s.validateBatch(req, len(req.Items)); err != nil {
		return nil, err
	}
	in, err := s.inputs(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]dto.CourseGradeResult, len(req.Items))
	computed := 0
	for i, item := range req.Items {
		result := dto.CourseGradeResult{
			Midterm: scoring.CalculateMidterm(item.Midterm, in.weights, in.scale),
			Finals:  scoring.CalculateFinals(item.Finals, in.weights, in.scale),
		}
		if course, ok := scoring.CalculateCourseGrade(result.Midterm, result.Finals, in.scale); ok {
			result.Course = &course
			computed++
		}
		results[i] = result
	}
	s.observe("course", computed, len(results), time.Since(start))

	return &dto.CourseBatch{Results: results, Computed: in.ready(), CacheHit: in.cacheHit}, nil
}

// Export calculates the batch and renders it as a grade sheet.
func (s *GradeCalculationService) Export(ctx context.Context, req dto.ExportGradesRequest) (*dto.ExportFile, error) {
	if err := s.validateBatch(req, len(req.Records)); err != nil {
		return nil, err
	}
	batch := dto.CalculateGradesRequest{Records: req.Records}

	switch term := scoring.Term(req.Term); term {
	case scoring.TermMidterm:
		result, err := s.CalculateMidterm(ctx, batch)
		if err != nil {
			return nil, err
		}
		return s.export.Render(term, req.Format, s.export.MidtermSheet(result.Grades, req.Title))
	default:
		result, err := s.CalculateFinals(ctx, batch)
		if err != nil {
			return nil, err
		}
		return s.export.Render(term, req.Format, s.export.FinalsSheet(result.Grades, req.Title))
	}
}

func (s *GradeCalculationService) validateBatch(req interface{}, size int) error {
	if size > s.maxBatchSize {
		return appErrors.Clone(appErrors.ErrBatchTooLarge, fmt.Sprintf("batch of %d exceeds the limit of %d", size, s.maxBatchSize))
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return nil
}

func (s *GradeCalculationService) inputs(ctx context.Context) (engineInputs, error) {
	weights, weightsHit, err := s.config.WeightConfig(ctx)
	if err != nil {
		return engineInputs{}, err
	}
	scale, scaleHit, err := s.config.Scale(ctx)
	if err != nil {
		return engineInputs{}, err
	}
	in := engineInputs{weights: weights, scale: scale, cacheHit: weightsHit && scaleHit}
	if !in.ready() {
		s.logger.Warn("grade configuration incomplete, returning records unchanged",
			zap.Bool("weights", weights != nil),
			zap.Int("bands", len(scale)))
	}
	return in, nil
}

func (s *GradeCalculationService) observe(term scoring.Term, computed, total int, elapsed time.Duration) {
	s.metrics.ObserveGradeBatch(string(term), computed, total-computed)
	s.logger.Debug("grade batch calculated",
		zap.String("term", string(term)),
		zap.Int("records", total),
		zap.Int("computed", computed),
		zap.Duration("elapsed", elapsed))
}
