package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grunt24/grading-api/internal/dto"
	"github.com/grunt24/grading-api/internal/models"
	"github.com/grunt24/grading-api/internal/scoring"
	appErrors "github.com/grunt24/grading-api/pkg/errors"
)

const weightSumTolerance = 0.001

type gradeConfigRepository interface {
	GetPercentage(ctx context.Context) (*models.GradePercentage, error)
	UpsertPercentage(ctx context.Context, pct *models.GradePercentage) error
	ListEquivalents(ctx context.Context) ([]models.GradeEquivalent, error)
	ReplaceEquivalents(ctx context.Context, rows []models.GradeEquivalent) error
}

// GradeConfigServiceParams groups the service dependencies.
type GradeConfigServiceParams struct {
	Repo      gradeConfigRepository
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	CacheTTL  time.Duration
}

// GradeConfigService reads and maintains the weights and grade equivalents.
type GradeConfigService struct {
	repo      gradeConfigRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewGradeConfigService constructs the service.
func NewGradeConfigService(params GradeConfigServiceParams) *GradeConfigService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &GradeConfigService{
		repo:      params.Repo,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: params.Validator,
		logger:    params.Logger,
		cacheTTL:  params.CacheTTL,
	}
}

// Percentage returns the stored weights. A nil result means nothing is configured.
func (s *GradeConfigService) Percentage(ctx context.Context) (*models.GradePercentage, bool, error) {
	var cached models.GradePercentage
	if hit, _ := s.cache.Get(ctx, CacheKeyWeights, &cached); hit {
		return &cached, true, nil
	}

	start := time.Now()
	pct, err := s.repo.GetPercentage(ctx)
	s.metrics.ObserveDBQuery("grade_percentage", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade percentage")
	}
	s.storeCache(ctx, CacheKeyWeights, pct)
	return pct, false, nil
}

// WeightConfig returns the weights in engine form, nil when unconfigured.
func (s *GradeConfigService) WeightConfig(ctx context.Context) (scoring.WeightConfig, bool, error) {
	pct, hit, err := s.Percentage(ctx)
	if err != nil {
		return nil, false, err
	}
	return pct.WeightConfig(), hit, nil
}

// Equivalents returns the stored grade bands in lookup order.
func (s *GradeConfigService) Equivalents(ctx context.Context) ([]models.GradeEquivalent, bool, error) {
	var cached []models.GradeEquivalent
	if hit, _ := s.cache.Get(ctx, CacheKeyEquivalents, &cached); hit {
		return cached, true, nil
	}

	start := time.Now()
	rows, err := s.repo.ListEquivalents(ctx)
	s.metrics.ObserveDBQuery("grade_equivalents", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade equivalents")
	}
	if rows == nil {
		rows = []models.GradeEquivalent{}
	}
	if len(rows) > 0 {
		s.storeCache(ctx, CacheKeyEquivalents, rows)
	}
	return rows, false, nil
}

// storeCache caches a configuration read. Write failures are logged and ignored.
func (s *GradeConfigService) storeCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Debug("grade configuration not cached", zap.String("key", key), zap.Error(err))
	}
}

// Scale returns the equivalents as a lookup table, empty when unconfigured.
func (s *GradeConfigService) Scale(ctx context.Context) (scoring.GradeScale, bool, error) {
	rows, hit, err := s.Equivalents(ctx)
	if err != nil {
		return nil, false, err
	}
	return models.GradeScale(rows), hit, nil
}

// UpdatePercentage validates and stores new weights. The four shared weights
// plus either exam weight must add up to one.
func (s *GradeConfigService) UpdatePercentage(ctx context.Context, req dto.UpdateGradePercentageRequest) (*models.GradePercentage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidWeights.Code, appErrors.ErrInvalidWeights.Status, "weights must be fractions between 0 and 1")
	}
	pct := &models.GradePercentage{
		QuizWeighted:          *req.QuizWeighted,
		ClassStandingWeighted: *req.ClassStandingWeighted,
		SEPWeighted:           *req.SEPWeighted,
		ProjectWeighted:       *req.ProjectWeighted,
		MidtermWeighted:       *req.MidtermWeighted,
		FinalsWeighted:        *req.FinalsWeighted,
	}
	config := pct.WeightConfig()
	for _, term := range []scoring.Term{scoring.TermMidterm, scoring.TermFinals} {
		sum := config.ResolveWeights(term).Sum()
		if math.Abs(sum-1) > weightSumTolerance {
			return nil, appErrors.Clone(appErrors.ErrInvalidWeights, fmt.Sprintf("%s weights add up to %.3f, expected 1", term, sum))
		}
	}

	current, err := s.repo.GetPercentage(ctx)
	switch {
	case err == nil:
		pct.ID = current.ID
	case !errors.Is(err, sql.ErrNoRows):
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade percentage")
	}

	if err := s.repo.UpsertPercentage(ctx, pct); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save grade percentage")
	}
	s.invalidate(ctx)
	s.logger.Info("grade percentage updated", zap.String("id", pct.ID))
	return pct, nil
}

// ReplaceEquivalents validates and stores a new grade-point table.
func (s *GradeConfigService) ReplaceEquivalents(ctx context.Context, req dto.ReplaceGradeEquivalentsRequest) ([]models.GradeEquivalent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidScale.Code, appErrors.ErrInvalidScale.Status, "grade equivalents are invalid")
	}
	rows := make([]models.GradeEquivalent, 0, len(req.Equivalents))
	for i, band := range req.Equivalents {
		if band.MinPercentage != nil && *band.MinPercentage > band.MaxPercentage {
			return nil, appErrors.Clone(appErrors.ErrInvalidScale, fmt.Sprintf("band %d: minimum %.2f exceeds maximum %.2f", i+1, *band.MinPercentage, band.MaxPercentage))
		}
		rows = append(rows, models.GradeEquivalent{
			MinPercentage: band.MinPercentage,
			MaxPercentage: band.MaxPercentage,
			GradePoint:    band.GradePoint,
			Description:   band.Description,
		})
	}

	if err := s.repo.ReplaceEquivalents(ctx, rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save grade equivalents")
	}
	s.invalidate(ctx)
	s.logger.Info("grade equivalents replaced", zap.Int("bands", len(rows)))
	return rows, nil
}

func (s *GradeConfigService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cachePatternGrading); err != nil {
		s.logger.Warn("grade config cache not invalidated", zap.Error(err))
	}
}
