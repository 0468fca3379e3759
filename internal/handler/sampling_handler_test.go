package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BoothMap-App/internal/domain/model"
	"BoothMap-App/internal/usecase"
)

type stubUseCase struct {
	states  []string
	regions []model.RegionInfo
	batch   *model.BatchResult
	lastRun *model.BatchResult
	err     error
}

func (s *stubUseCase) States(ctx context.Context) ([]string, error) {
	return s.states, s.err
}

func (s *stubUseCase) Regions(ctx context.Context, state, selectionType string) ([]model.RegionInfo, error) {
	return s.regions, s.err
}

func (s *stubUseCase) Process(ctx context.Context, req *usecase.ProcessRequest) (*model.BatchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastRun = s.batch
	return s.batch, nil
}

func (s *stubUseCase) LastRun() *model.BatchResult {
	return s.lastRun
}

func newTestRouter(uc usecase.BoothSamplingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewSamplingHandler(uc).RegisterRoutes(r)
	return r
}

func testBatch() *model.BatchResult {
	return &model.BatchResult{
		RunID:         "run-1",
		State:         "karnataka",
		SelectionType: model.SelectionTypeAssembly,
		Summary: []model.SummaryRow{{
			RegionCode:       "101",
			RegionName:       "Central",
			TotalBooths:      60,
			SelectedBooths:   24,
			Status:           model.StatusCompleted,
			SamplesRequested: 300,
		}},
		SelectedBooths: []model.SelectedBoothRecord{{
			State:    "karnataka",
			AC:       "101",
			Booth:    "7",
			Cluster:  0,
			Latitude: 12.5, Longitude: 77.5,
		}},
		Regions: []*model.RegionResult{{
			RegionCode:      "101",
			RegionName:      "Central",
			SelectionResult: &model.SelectionResult{TotalBooths: 60, IsComplete: true},
		}},
		TotalRegions:  1,
		Completed:     1,
		TotalBooths:   60,
		TotalSelected: 24,
	}
}

func TestGetStates(t *testing.T) {
	r := newTestRouter(&stubUseCase{states: []string{"goa", "karnataka"}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/states", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "karnataka")
}

func TestGetRegions_BadType(t *testing.T) {
	r := newTestRouter(&stubUseCase{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/regions/karnataka/acwise", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostProcess_Validation(t *testing.T) {
	r := newTestRouter(&stubUseCase{batch: testBatch()})

	tests := []struct {
		name string
		body string
	}{
		{"missing state", `{"selection_type":"assembly","samples_per_region":300}`},
		{"bad selection type", `{"state":"karnataka","selection_type":"AC wise","samples_per_region":300}`},
		{"non-positive samples", `{"state":"karnataka","selection_type":"assembly","samples_per_region":0}`},
		{"not json", `not-json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPostProcess_Success(t *testing.T) {
	stub := &stubUseCase{batch: testBatch()}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/process",
		strings.NewReader(`{"state":"karnataka","selection_type":"assembly","samples_per_region":300}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "run-1")
	assert.Contains(t, w.Body.String(), `"total_selected":24`)
}

func TestResults_NotFoundBeforeAnyRun(t *testing.T) {
	r := newTestRouter(&stubUseCase{})

	for _, path := range []string{
		"/api/results/summary",
		"/api/results/selected_booths",
		"/api/results/regions/101",
		"/api/download/summary",
		"/api/download/selected_booths",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestGetRegionResult(t *testing.T) {
	r := newTestRouter(&stubUseCase{lastRun: testBatch()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results/regions/101", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"region_code":"101"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results/regions/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadSummary_CSV(t *testing.T) {
	r := newTestRouter(&stubUseCase{lastRun: testBatch()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/download/summary", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "summary.csv")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "AC,AC_Name,Total_Booths,Selected_Booths,Status,Reason,Samples_Requested", lines[0])
	assert.Contains(t, lines[1], "101,Central,60,24,Completed")
}

func TestDownloadSelectedBooths_CSV(t *testing.T) {
	r := newTestRouter(&stubUseCase{lastRun: testBatch()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/download/selected_booths", nil))

	require.Equal(t, http.StatusOK, w.Code)
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "state,district,district_n,pc,pc_name,ac,ac_name,booth,booth_name,cluster,latitude,longitude", lines[0])
	assert.Contains(t, lines[1], "karnataka")
}
