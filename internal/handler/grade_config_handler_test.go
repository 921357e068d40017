package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grunt24/grading-api/internal/dto"
	"github.com/grunt24/grading-api/internal/models"
	appErrors "github.com/grunt24/grading-api/pkg/errors"
)

type gradeConfigServiceMock struct {
	pct         *models.GradePercentage
	equivalents []models.GradeEquivalent
	hit         bool
	updateErr   error
	updateReq   *dto.UpdateGradePercentageRequest
	replaceReq  *dto.ReplaceGradeEquivalentsRequest
}

func (m *gradeConfigServiceMock) Percentage(ctx context.Context) (*models.GradePercentage, bool, error) {
	return m.pct, m.hit, nil
}

func (m *gradeConfigServiceMock) Equivalents(ctx context.Context) ([]models.GradeEquivalent, bool, error) {
	return m.equivalents, m.hit, nil
}

func (m *gradeConfigServiceMock) UpdatePercentage(ctx context.Context, req dto.UpdateGradePercentageRequest) (*models.GradePercentage, error) {
	m.updateReq = &req
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &models.GradePercentage{ID: "pct-1", QuizWeighted: *req.QuizWeighted}, nil
}

func (m *gradeConfigServiceMock) ReplaceEquivalents(ctx context.Context, req dto.ReplaceGradeEquivalentsRequest) ([]models.GradeEquivalent, error) {
	m.replaceReq = &req
	return []models.GradeEquivalent{{ID: "eq-1", MaxPercentage: 100, GradePoint: 1}}, nil
}

func newJSONContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGradeConfigHandlerGetPercentage(t *testing.T) {
	handler := NewGradeConfigHandler(&gradeConfigServiceMock{pct: &models.GradePercentage{ID: "pct-1", QuizWeighted: 0.3}, hit: true})
	c, w := newJSONContext(http.MethodGet, "/grade-calculation/grade-percentage", nil)

	handler.GetPercentage(c)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env["data"], &data))
	assert.Equal(t, 0.3, data["quizWeighted"])
	assert.Contains(t, string(env["meta"]), `"cache_hit":true`)
}

func TestGradeConfigHandlerGetPercentageMissing(t *testing.T) {
	handler := NewGradeConfigHandler(&gradeConfigServiceMock{})
	c, w := newJSONContext(http.MethodGet, "/grade-calculation/grade-percentage", nil)

	handler.GetPercentage(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGradeConfigHandlerUpdatePercentage(t *testing.T) {
	svc := &gradeConfigServiceMock{}
	handler := NewGradeConfigHandler(svc)
	body := []byte(`{"quizWeighted":0.3,"classStandingWeighted":0.3,"sepWeighted":0,"projectWeighted":0.1,"midtermWeighted":0.3,"finalsWeighted":0.3}`)
	c, w := newJSONContext(http.MethodPut, "/grade-calculation/grade-percentage", body)

	handler.UpdatePercentage(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.updateReq)
	require.NotNil(t, svc.updateReq.SEPWeighted)
	assert.Equal(t, 0.0, *svc.updateReq.SEPWeighted)
}

func TestGradeConfigHandlerUpdatePercentageErrors(t *testing.T) {
	handler := NewGradeConfigHandler(&gradeConfigServiceMock{})
	c, w := newJSONContext(http.MethodPut, "/grade-calculation/grade-percentage", []byte(`invalid`))
	handler.UpdatePercentage(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrInvalidWeights.Code)

	handler = NewGradeConfigHandler(&gradeConfigServiceMock{updateErr: appErrors.Clone(appErrors.ErrInvalidWeights, "midterm weights add up to 0.900, expected 1")})
	c, w = newJSONContext(http.MethodPut, "/grade-calculation/grade-percentage", []byte(`{"quizWeighted":0.2}`))
	handler.UpdatePercentage(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expected 1")
}

func TestGradeConfigHandlerEquivalents(t *testing.T) {
	lower := 97.0
	svc := &gradeConfigServiceMock{equivalents: []models.GradeEquivalent{{ID: "eq-1", MinPercentage: &lower, MaxPercentage: 100, GradePoint: 1}}}
	handler := NewGradeConfigHandler(svc)

	c, w := newJSONContext(http.MethodGet, "/grade-calculation/equivalents", nil)
	handler.ListEquivalents(c)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(env["data"], &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 97.0, rows[0]["minPercentage"])
	assert.Contains(t, string(env["meta"]), `"count":1`)

	body := []byte(`{"equivalents":[{"minPercentage":97,"maxPercentage":100,"gradePoint":1},{"maxPercentage":73,"gradePoint":5}]}`)
	c, w = newJSONContext(http.MethodPut, "/grade-calculation/equivalents", body)
	handler.ReplaceEquivalents(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.replaceReq)
	assert.Len(t, svc.replaceReq.Equivalents, 2)
	assert.Nil(t, svc.replaceReq.Equivalents[1].MinPercentage)
}
