package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grunt24/grading-api/internal/dto"
	"github.com/grunt24/grading-api/internal/middleware"
	appErrors "github.com/grunt24/grading-api/pkg/errors"
	"github.com/grunt24/grading-api/pkg/response"
)

type gradeCalculationService interface {
	CalculateMidterm(ctx context.Context, req dto.CalculateGradesRequest) (*dto.MidtermBatch, error)
	CalculateFinals(ctx context.Context, req dto.CalculateGradesRequest) (*dto.FinalsBatch, error)
	CalculateCourse(ctx context.Context, req dto.CourseGradeRequest) (*dto.CourseBatch, error)
	Export(ctx context.Context, req dto.ExportGradesRequest) (*dto.ExportFile, error)
}

// GradeCalculationHandler runs grade records through the scoring engine.
type GradeCalculationHandler struct {
	service gradeCalculationService
}

// NewGradeCalculationHandler constructs handler.
func NewGradeCalculationHandler(service gradeCalculationService) *GradeCalculationHandler {
	return &GradeCalculationHandler{service: service}
}

// Midterm godoc
// @Summary Calculate midterm grades
// @Description Records are returned unchanged with computed=false when weights or equivalents are not configured.
// @Tags GradeCalculation
// @Accept json
// @Produce json
// @Param payload body dto.CalculateGradesRequest true "Grade records"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /grade-calculation/midterm [post]
func (h *GradeCalculationHandler) Midterm(c *gin.Context) {
	req, ok := bindBatch(c)
	if !ok {
		return
	}
	result, err := h.service.CalculateMidterm(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondBatch(c, result.Grades, len(result.Grades), result.Computed, result.CacheHit)
}

// Finals godoc
// @Summary Calculate finals grades
// @Tags GradeCalculation
// @Accept json
// @Produce json
// @Param payload body dto.CalculateGradesRequest true "Grade records"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /grade-calculation/finals [post]
func (h *GradeCalculationHandler) Finals(c *gin.Context) {
	req, ok := bindBatch(c)
	if !ok {
		return
	}
	result, err := h.service.CalculateFinals(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondBatch(c, result.Grades, len(result.Grades), result.Computed, result.CacheHit)
}

// Course godoc
// @Summary Calculate final course grades
// @Tags GradeCalculation
// @Accept json
// @Produce json
// @Param payload body dto.CourseGradeRequest true "Midterm and finals record pairs"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grade-calculation/course [post]
func (h *GradeCalculationHandler) Course(c *gin.Context) {
	var req dto.CourseGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course grade payload"))
		return
	}
	result, err := h.service.CalculateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondBatch(c, result.Results, len(result.Results), result.Computed, result.CacheHit)
}

// Export godoc
// @Summary Export a grade sheet
// @Tags GradeCalculation
// @Accept json
// @Produce text/csv,application/pdf
// @Param payload body dto.ExportGradesRequest true "Term, format and records"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /grade-calculation/export [post]
func (h *GradeCalculationHandler) Export(c *gin.Context) {
	var req dto.ExportGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	file, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func bindBatch(c *gin.Context) (dto.CalculateGradesRequest, bool) {
	var req dto.CalculateGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade records payload"))
		return req, false
	}
	return req, true
}

func respondBatch(c *gin.Context, data interface{}, count int, computed, cacheHit bool) {
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetMeta(c, "computed", computed)
	middleware.SetMeta(c, "count", count)
	response.JSON(c, http.StatusOK, data, middleware.ExtractMeta(c))
}
