package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal_final_backend/internal/consultation/catalog"
	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/llm"
	"portal_final_backend/internal/consultation/orchestrator"
	"portal_final_backend/internal/consultation/service"
	"portal_final_backend/internal/consultation/transport"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOrchestrator struct {
	result domain.ConsultationResult
	err    error
}

func (s stubOrchestrator) Process(ctx context.Context, input llm.ExtractionInput, opts orchestrator.Options) (domain.ConsultationResult, error) {
	return s.result, s.err
}

func newTestHandler(t *testing.T, orch service.Orchestrator, communities []domain.Community) *Handler {
	t.Helper()
	store := catalog.NewStore(communities)
	svc := service.New(store, orch, nil)
	return New(svc)
}

func TestProcessText_Success(t *testing.T) {
	h := newTestHandler(t, stubOrchestrator{result: domain.ConsultationResult{ConsultationID: "c1"}}, nil)

	router := gin.New()
	router.POST("/api/process-text", h.ProcessText)

	body := strings.NewReader(`{"text":"client needs assisted living"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/process-text", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp transport.ConsultationResultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "c1", resp.ConsultationID)
}

func TestProcessText_MissingTextRejected(t *testing.T) {
	h := newTestHandler(t, stubOrchestrator{}, nil)

	router := gin.New()
	router.POST("/api/process-text", h.ProcessText)

	req := httptest.NewRequest(http.MethodPost, "/api/process-text", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCommunities_ReturnsCatalog(t *testing.T) {
	h := newTestHandler(t, stubOrchestrator{}, []domain.Community{
		{CommunityID: 1, CareLevel: domain.CareLevelAssistedLiving, MonthlyFee: 4000},
	})

	router := gin.New()
	router.GET("/api/communities", h.ListCommunities)

	req := httptest.NewRequest(http.MethodGet, "/api/communities", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Communities []transport.CommunityResponse `json:"communities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Communities, 1)
	assert.Equal(t, 1, out.Communities[0].CommunityID)
}

func TestGetCommunity_NotFoundMapsTo404(t *testing.T) {
	h := newTestHandler(t, stubOrchestrator{}, nil)

	router := gin.New()
	router.GET("/api/communities/:id", h.GetCommunity)

	req := httptest.NewRequest(http.MethodGet, "/api/communities/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCommunity_InvalidCareLevelRejected(t *testing.T) {
	h := newTestHandler(t, stubOrchestrator{}, nil)

	router := gin.New()
	router.POST("/api/communities", h.CreateCommunity)

	req := httptest.NewRequest(http.MethodPost, "/api/communities", strings.NewReader(`{"community_id":5,"care_level":"Nonsense","monthly_fee":1000}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCommunity_ReturnsCommunityID(t *testing.T) {
	h := newTestHandler(t, stubOrchestrator{}, nil)

	router := gin.New()
	router.POST("/api/communities", h.CreateCommunity)

	req := httptest.NewRequest(http.MethodPost, "/api/communities", strings.NewReader(`{"community_id":5,"care_level":"Assisted Living","monthly_fee":3000}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var out struct {
		CommunityID int `json:"community_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 5, out.CommunityID)
}

func TestUpdateCommunity_ReturnsMessage(t *testing.T) {
	h := newTestHandler(t, stubOrchestrator{}, []domain.Community{
		{CommunityID: 3, CareLevel: domain.CareLevelAssistedLiving, MonthlyFee: 3000},
	})

	router := gin.New()
	router.PUT("/api/communities/:id", h.UpdateCommunity)

	req := httptest.NewRequest(http.MethodPut, "/api/communities/3", strings.NewReader(`{"community_id":3,"care_level":"Assisted Living","monthly_fee":3500}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "community updated", out.Message)
}

func TestDeleteCommunity_RemovesRow(t *testing.T) {
	h := newTestHandler(t, stubOrchestrator{}, []domain.Community{
		{CommunityID: 7, CareLevel: domain.CareLevelIndependentLiving},
	})

	router := gin.New()
	router.DELETE("/api/communities/:id", h.DeleteCommunity)

	req := httptest.NewRequest(http.MethodDelete, "/api/communities/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "community deleted", out.Message)
}

func TestStats_ReportsCatalogSummary(t *testing.T) {
	h := newTestHandler(t, stubOrchestrator{}, []domain.Community{
		{CommunityID: 1, CareLevel: domain.CareLevelAssistedLiving, MonthlyFee: 2000, WorksWithPlacement: true},
		{CommunityID: 2, CareLevel: domain.CareLevelAssistedLiving, MonthlyFee: 4000},
	})

	router := gin.New()
	router.GET("/api/stats", h.Stats)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out catalog.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 2, out.TotalCommunities)
	assert.Equal(t, 3000.0, out.AverageMonthlyFee)
	assert.Equal(t, 1, out.WorkingWithPlacement)
}
