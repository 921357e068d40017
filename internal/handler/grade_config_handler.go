package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grunt24/grading-api/internal/dto"
	"github.com/grunt24/grading-api/internal/middleware"
	"github.com/grunt24/grading-api/internal/models"
	appErrors "github.com/grunt24/grading-api/pkg/errors"
	"github.com/grunt24/grading-api/pkg/response"
)

type gradeConfigService interface {
	Percentage(ctx context.Context) (*models.GradePercentage, bool, error)
	Equivalents(ctx context.Context) ([]models.GradeEquivalent, bool, error)
	UpdatePercentage(ctx context.Context, req dto.UpdateGradePercentageRequest) (*models.GradePercentage, error)
	ReplaceEquivalents(ctx context.Context, req dto.ReplaceGradeEquivalentsRequest) ([]models.GradeEquivalent, error)
}

// GradeConfigHandler exposes the component weights and the grade-point table.
type GradeConfigHandler struct {
	service gradeConfigService
}

// NewGradeConfigHandler constructs handler.
func NewGradeConfigHandler(service gradeConfigService) *GradeConfigHandler {
	return &GradeConfigHandler{service: service}
}

// GetPercentage godoc
// @Summary Get component weights
// @Tags GradeCalculation
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grade-calculation/grade-percentage [get]
func (h *GradeConfigHandler) GetPercentage(c *gin.Context) {
	pct, hit, err := h.service.Percentage(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if pct == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "grade percentage not configured"))
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, pct, middleware.ExtractMeta(c))
}

// UpdatePercentage godoc
// @Summary Replace component weights
// @Tags GradeCalculation
// @Accept json
// @Produce json
// @Param payload body dto.UpdateGradePercentageRequest true "Weights"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grade-calculation/grade-percentage [put]
func (h *GradeConfigHandler) UpdatePercentage(c *gin.Context) {
	var req dto.UpdateGradePercentageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidWeights.Code, http.StatusBadRequest, "invalid weights payload"))
		return
	}
	pct, err := h.service.UpdatePercentage(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pct)
}

// ListEquivalents godoc
// @Summary List grade-point equivalents
// @Tags GradeCalculation
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grade-calculation/equivalents [get]
func (h *GradeConfigHandler) ListEquivalents(c *gin.Context) {
	rows, hit, err := h.service.Equivalents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	middleware.SetMeta(c, "count", len(rows))
	response.JSON(c, http.StatusOK, rows, middleware.ExtractMeta(c))
}

// ReplaceEquivalents godoc
// @Summary Replace grade-point equivalents
// @Tags GradeCalculation
// @Accept json
// @Produce json
// @Param payload body dto.ReplaceGradeEquivalentsRequest true "Bands in lookup order"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grade-calculation/equivalents [put]
func (h *GradeConfigHandler) ReplaceEquivalents(c *gin.Context) {
	var req dto.ReplaceGradeEquivalentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidScale.Code, http.StatusBadRequest, "invalid grade equivalents payload"))
		return
	}
	rows, err := h.service.ReplaceEquivalents(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{"count": len(rows)})
}
