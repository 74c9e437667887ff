package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"kyc-screening/internal/models"
	"kyc-screening/internal/report"
	"kyc-screening/internal/services"
	servicemocks "kyc-screening/internal/services/mocks"
	"kyc-screening/internal/storage"
	"kyc-screening/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testMocks struct {
	screening *servicemocks.MockScreeningService
	sanctions *servicemocks.MockSanctionsService
	reports   *servicemocks.MockReportService
}

func setupTestRouter() (*gin.Engine, *testMocks) {
	gin.SetMode(gin.TestMode)
	m := &testMocks{
		screening: new(servicemocks.MockScreeningService),
		sanctions: new(servicemocks.MockSanctionsService),
		reports:   new(servicemocks.MockReportService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	RegisterRoutes(router.Group("/api/v1"), NewHandlers(m.screening, m.sanctions, m.reports))
	return router, m
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func testCustomer() models.Customer {
	return models.Customer{
		CustomerCode:    "CUST001",
		FullNameEn:      "Karim Mostafa",
		DateOfBirth:     "1985-03-12",
		NationalityCode: "EG",
		IDType:          "PASSPORT",
		IDNumber:        "A7654321",
	}
}

func TestHandlers_ScreenCustomer_Success(t *testing.T) {
	router, m := setupTestRouter()

	response := &models.ScreeningResponse{
		Screening: &models.Screening{
			ScreeningID:  "SCR20240615103000ABCD",
			CustomerCode: "CUST001",
			Result:       models.ResultClear,
			RiskLevel:    models.RiskLow,
		},
		Saved: true,
	}
	m.screening.On("ScreenCustomer", mock.Anything, mock.MatchedBy(func(req *models.ScreeningRequest) bool {
		return req.Customer.CustomerCode == "CUST001" && req.ScreeningType == "ONBOARDING"
	})).Return(response, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/screenings", models.ScreeningRequest{
		Customer:      testCustomer(),
		ScreeningType: "ONBOARDING",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var result models.ScreeningResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "SCR20240615103000ABCD", result.Screening.ScreeningID)
	assert.True(t, result.Saved)

	m.screening.AssertExpectations(t)
}

func TestHandlers_ScreenCustomer_InvalidJSON(t *testing.T) {
	router, m := setupTestRouter()

	w := doRequest(router, http.MethodPost, "/api/v1/screenings", "invalid json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w), "error")
	m.screening.AssertNotCalled(t, "ScreenCustomer", mock.Anything, mock.Anything)
}

func TestHandlers_ScreenCustomer_ValidationError(t *testing.T) {
	router, m := setupTestRouter()

	verr := &validation.Error{Messages: []string{"id_number is required"}}
	m.screening.On("ScreenCustomer", mock.Anything, mock.Anything).Return(nil, verr)

	w := doRequest(router, http.MethodPost, "/api/v1/screenings", models.ScreeningRequest{Customer: testCustomer()})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	result := decodeBody(t, w)
	assert.Equal(t, validation.ErrValidation.Error(), result["error"])
	assert.Equal(t, []any{"id_number is required"}, result["details"])
}

func TestHandlers_ScreenCustomer_UnknownScreeningType(t *testing.T) {
	router, m := setupTestRouter()

	_, typeErr := validation.NormalizeScreeningType("quarterly")
	m.screening.On("ScreenCustomer", mock.Anything, mock.MatchedBy(func(req *models.ScreeningRequest) bool {
		return req.ScreeningType == "quarterly"
	})).Return(nil, typeErr)
	m.screening.On("ScreenBatch", mock.Anything, mock.Anything).Return(nil, typeErr)

	w := doRequest(router, http.MethodPost, "/api/v1/screenings", models.ScreeningRequest{
		Customer:      testCustomer(),
		ScreeningType: "quarterly",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	details := decodeBody(t, w)["details"].([]any)
	require.Len(t, details, 1)
	assert.Contains(t, details[0], "screening_type")

	w = doRequest(router, http.MethodPost, "/api/v1/screenings/batch", models.BatchScreeningRequest{
		Customers:     []models.Customer{testCustomer()},
		ScreeningType: "quarterly",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_ScreenCustomer_ServiceError(t *testing.T) {
	router, m := setupTestRouter()

	m.screening.On("ScreenCustomer", mock.Anything, mock.Anything).Return(nil, errors.New("database is locked"))

	w := doRequest(router, http.MethodPost, "/api/v1/screenings", models.ScreeningRequest{Customer: testCustomer()})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to screen customer", decodeBody(t, w)["error"])
}

func TestHandlers_ScreenBatch(t *testing.T) {
	router, m := setupTestRouter()

	m.screening.On("ScreenBatch", mock.Anything, mock.MatchedBy(func(req *models.BatchScreeningRequest) bool {
		return len(req.Customers) == 2
	})).Return(&models.BatchScreeningResponse{RequestID: "batch_1", Total: 2, Succeeded: 2}, nil)

	second := testCustomer()
	second.CustomerCode = "CUST002"
	w := doRequest(router, http.MethodPost, "/api/v1/screenings/batch", models.BatchScreeningRequest{
		Customers: []models.Customer{testCustomer(), second},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var result models.BatchScreeningResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Succeeded)
}

func TestHandlers_ScreenBatch_Empty(t *testing.T) {
	router, m := setupTestRouter()

	w := doRequest(router, http.MethodPost, "/api/v1/screenings/batch", `{"customers": []}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	m.screening.AssertNotCalled(t, "ScreenBatch", mock.Anything, mock.Anything)
}

func TestHandlers_GenerateScreenings(t *testing.T) {
	router, m := setupTestRouter()

	m.screening.On("ScreenBatch", mock.Anything, mock.MatchedBy(func(req *models.BatchScreeningRequest) bool {
		if len(req.Customers) != 3 || req.PerformedBy != "generator" {
			return false
		}
		for _, c := range req.Customers {
			if c.CustomerCode == "" || c.NationalityCode == "" {
				return false
			}
		}
		return true
	})).Return(&models.BatchScreeningResponse{Total: 3, Succeeded: 3}, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/screenings/generate?risk=high&count=3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeBody(t, w)["succeeded"])
	m.screening.AssertExpectations(t)
}

func TestHandlers_GenerateScreenings_BadParams(t *testing.T) {
	router, m := setupTestRouter()

	for _, path := range []string{
		"/api/v1/screenings/generate?risk=extreme",
		"/api/v1/screenings/generate?count=0",
		"/api/v1/screenings/generate?count=1000",
	} {
		w := doRequest(router, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
	m.screening.AssertNotCalled(t, "ScreenBatch", mock.Anything, mock.Anything)
}

func TestHandlers_ListScreenings(t *testing.T) {
	router, m := setupTestRouter()

	m.screening.On("ListScreenings", mock.Anything, mock.MatchedBy(func(f models.ScreeningFilter) bool {
		return f.CustomerCode == "CUST001" && f.Result == models.ResultRejected && f.Limit == 20 && !f.Since.IsZero()
	})).Return([]*models.Screening{{ScreeningID: "SCR1"}}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/screenings?customer_code=CUST001&result=rejected&limit=20&days=7", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
	m.screening.AssertExpectations(t)
}

func TestHandlers_GetScreening(t *testing.T) {
	router, m := setupTestRouter()

	m.screening.On("GetScreening", mock.Anything, "SCR1").Return(&models.Screening{ScreeningID: "SCR1"}, nil)
	m.screening.On("GetScreening", mock.Anything, "SCR404").Return(nil, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/screenings/SCR1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SCR1", decodeBody(t, w)["screening_id"])

	w = doRequest(router, http.MethodGet, "/api/v1/screenings/SCR404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Screening not found", decodeBody(t, w)["error"])
}

func TestHandlers_GetReport(t *testing.T) {
	router, m := setupTestRouter()

	m.screening.On("GetReport", mock.Anything, "SCR1").Return(&models.Report{ReportID: "SCR-20240615-103000"}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/screenings/SCR1/report", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SCR-20240615-103000", decodeBody(t, w)["report_id"])
}

func TestHandlers_ReviewScreening(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantCode   int
	}{
		{"success", nil, http.StatusOK},
		{"invalid result", fmt.Errorf("%w: MAYBE", services.ErrInvalidReview), http.StatusBadRequest},
		{"not found", fmt.Errorf("screening SCR1: %w", storage.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := setupTestRouter()

			review := models.ReviewRequest{ReviewedBy: "officer", Result: "CLEAR", Notes: "false positive"}
			if tt.serviceErr != nil {
				m.screening.On("Review", mock.Anything, "SCR1", &review).Return(nil, tt.serviceErr)
			} else {
				m.screening.On("Review", mock.Anything, "SCR1", &review).
					Return(&models.Screening{ScreeningID: "SCR1", Result: models.ResultClear, ReviewedBy: "officer"}, nil)
			}

			w := doRequest(router, http.MethodPut, "/api/v1/screenings/SCR1/review", review)

			assert.Equal(t, tt.wantCode, w.Code)
			m.screening.AssertExpectations(t)
		})
	}
}

func TestHandlers_ReviewScreening_MissingReviewer(t *testing.T) {
	router, m := setupTestRouter()

	w := doRequest(router, http.MethodPut, "/api/v1/screenings/SCR1/review", `{"screening_result": "CLEAR"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	m.screening.AssertNotCalled(t, "Review", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlers_ClearScreenings(t *testing.T) {
	router, m := setupTestRouter()

	m.screening.On("ClearHistory", mock.Anything).Return(nil).Once()
	m.screening.On("ClearHistory", mock.Anything).Return(errors.New("disk I/O error")).Once()

	w := doRequest(router, http.MethodDelete, "/api/v1/screenings", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/v1/screenings", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	m.screening.AssertExpectations(t)
}

func TestHandlers_CacheStats(t *testing.T) {
	router, m := setupTestRouter()

	m.screening.On("CacheStats", mock.Anything).Return(map[string]int64{"screening_stats.CLEAR": 3}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/cache/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeBody(t, w)["screening_stats.CLEAR"])
}

func TestHandlers_Customers(t *testing.T) {
	router, m := setupTestRouter()

	customer := testCustomer()
	m.screening.On("ListCustomers", mock.Anything, defaultLimit).Return([]*models.Customer{&customer}, nil)
	m.screening.On("GetCustomer", mock.Anything, "CUST001").Return(&customer, nil)
	m.screening.On("GetCustomer", mock.Anything, "NOPE").Return(nil, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/customers?limit=10000", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = doRequest(router, http.MethodGet, "/api/v1/customers/CUST001", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Karim Mostafa", decodeBody(t, w)["full_name_en"])

	w = doRequest(router, http.MethodGet, "/api/v1/customers/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_SearchSanctions(t *testing.T) {
	router, m := setupTestRouter()

	m.sanctions.On("Search", mock.Anything, "hassan", 25, true).Return([]*models.SanctionSearchResult{
		{Sanction: models.Sanction{ID: 2, FullNameEn: "Mohamed Hassan"}, Score: 100},
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/sanctions?q=hassan&fuzzy=true&limit=25", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodeBody(t, w)
	assert.Equal(t, "hassan", result["query"])
	assert.Equal(t, float64(1), result["count"])

	w = doRequest(router, http.MethodGet, "/api/v1/sanctions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_GetSanction(t *testing.T) {
	router, m := setupTestRouter()

	m.sanctions.On("Get", mock.Anything, int64(2)).Return(&models.Sanction{ID: 2, FullNameEn: "Mohamed Hassan"}, nil)
	m.sanctions.On("Get", mock.Anything, int64(3)).Return(nil, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/sanctions/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/sanctions/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/sanctions/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_Statistics(t *testing.T) {
	router, m := setupTestRouter()

	m.reports.On("Statistics", mock.Anything).Return(&models.Statistics{TotalSanctions: 12}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/statistics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(12), decodeBody(t, w)["total_sanctions"])
}

func TestHandlers_Export(t *testing.T) {
	router, m := setupTestRouter()

	path := filepath.Join(t.TempDir(), "sanctions_20240615_103000.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffid,list_source\n"), 0o644))
	m.reports.On("Export", mock.Anything, "sanctions").Return(path, nil)
	m.reports.On("Export", mock.Anything, "transactions").
		Return("", fmt.Errorf("%w: transactions", report.ErrUnknownExport))

	w := doRequest(router, http.MethodGet, "/api/v1/export/sanctions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sanctions_20240615_103000.csv")
	assert.Contains(t, w.Body.String(), "id,list_source")

	w = doRequest(router, http.MethodGet, "/api/v1/export/transactions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_ComplianceReport(t *testing.T) {
	router, m := setupTestRouter()

	m.reports.On("ComplianceReport", mock.Anything, "activity", 7).
		Return(&models.ComplianceReport{Kind: "activity", Title: "Screening Activity Report"}, nil)
	m.reports.On("ComplianceReport", mock.Anything, "weekly", 0).
		Return(nil, fmt.Errorf("%w: weekly", report.ErrUnknownReport))

	w := doRequest(router, http.MethodGet, "/api/v1/reports/activity?days=7", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Screening Activity Report", decodeBody(t, w)["title"])

	w = doRequest(router, http.MethodGet, "/api/v1/reports/weekly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetupRouter_CommonEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "kyc_test_total", Help: "test"}))

	router := SetupRouter(NewHandlers(nil, nil, nil), reg)

	w := doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])

	w = doRequest(router, http.MethodGet, "/api/v1/events?limit=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w), "events")

	w = doRequest(router, http.MethodGet, "/api/v1/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kyc_test_total")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/screenings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
