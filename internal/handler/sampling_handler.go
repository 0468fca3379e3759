package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"BoothMap-App/internal/domain/model"
	"BoothMap-App/internal/domain/repository"
	"BoothMap-App/internal/usecase"
)

// SamplingHandler exposes the booth sampling API.
type SamplingHandler struct {
	useCase usecase.BoothSamplingUseCase
}

// NewSamplingHandler creates a new SamplingHandler instance.
func NewSamplingHandler(useCase usecase.BoothSamplingUseCase) *SamplingHandler {
	return &SamplingHandler{useCase: useCase}
}

// RegisterRoutes attaches all endpoints to the router.
func (h *SamplingHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/health", h.GetHealth)
	r.GET("/api/states", h.GetStates)
	r.GET("/api/regions/:state/:type", h.GetRegions)
	r.POST("/api/process", h.PostProcess)
	r.GET("/api/results/summary", h.GetSummary)
	r.GET("/api/results/selected_booths", h.GetSelectedBooths)
	r.GET("/api/results/regions/:code", h.GetRegionResult)
	r.GET("/api/download/summary", h.DownloadSummary)
	r.GET("/api/download/selected_booths", h.DownloadSelectedBooths)
}

// GetHealth is the liveness endpoint.
// GET /api/health
func (h *SamplingHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "BoothMap-App"})
}

// GetStates lists the states with data available.
// GET /api/states
func (h *SamplingHandler) GetStates(c *gin.Context) {
	states, err := h.useCase.States(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrLayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no state data found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to list states",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"states": states})
}

// GetRegions lists the regions of one state's AC or PC layer.
// GET /api/regions/:state/:type
func (h *SamplingHandler) GetRegions(c *gin.Context) {
	state := c.Param("state")
	selectionType := c.Param("type")
	if !model.IsSelectionType(selectionType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("type must be %q or %q", model.SelectionTypeAssembly, model.SelectionTypeParliamentary),
		})
		return
	}

	regions, err := h.useCase.Regions(c.Request.Context(), state, selectionType)
	if err != nil {
		if errors.Is(err, repository.ErrLayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "state data not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to load region list",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions, "count": len(regions)})
}

// PostProcess runs a sampling batch over all regions of a state.
// POST /api/process
func (h *SamplingHandler) PostProcess(c *gin.Context) {
	var req usecase.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if err := h.validateProcessRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation error",
			"details": err.Error(),
		})
		return
	}

	batch, err := h.useCase.Process(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrLayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   fmt.Sprintf("could not load layers for %s", req.State),
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "processing failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"run_id":         batch.RunID,
		"total_regions":  batch.TotalRegions,
		"completed":      batch.Completed,
		"total_booths":   batch.TotalBooths,
		"total_selected": batch.TotalSelected,
		"warnings":       batch.Warnings,
		"message":        fmt.Sprintf("Processing complete! Processed %d regions", batch.TotalRegions),
	})
}

func (h *SamplingHandler) validateProcessRequest(req *usecase.ProcessRequest) error {
	if req.State == "" {
		return &ValidationError{Field: "state", Message: "state is required"}
	}
	if !model.IsSelectionType(req.SelectionType) {
		return &ValidationError{
			Field:   "selection_type",
			Message: fmt.Sprintf("must be %q or %q", model.SelectionTypeAssembly, model.SelectionTypeParliamentary),
		}
	}
	if req.SamplesPerRegion <= 0 {
		return &ValidationError{Field: "samples_per_region", Message: "must be a positive integer"}
	}
	return nil
}

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// GetSummary returns the summary table of the last run.
// GET /api/results/summary
func (h *SamplingHandler) GetSummary(c *gin.Context) {
	batch := h.useCase.LastRun()
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": batch.RunID, "data": batch.Summary})
}

// GetSelectedBooths returns the selected booth records of the last run.
// GET /api/results/selected_booths
func (h *SamplingHandler) GetSelectedBooths(c *gin.Context) {
	batch := h.useCase.LastRun()
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": batch.RunID, "data": batch.SelectedBooths})
}

// GetRegionResult returns one region's full selection result, the feed
// consumed by the map renderer.
// GET /api/results/regions/:code
func (h *SamplingHandler) GetRegionResult(c *gin.Context) {
	batch := h.useCase.LastRun()
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results available"})
		return
	}
	region := batch.FindRegion(c.Param("code"))
	if region == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "region not found in last run"})
		return
	}
	c.JSON(http.StatusOK, region)
}

// DownloadSummary streams the summary table as CSV.
// GET /api/download/summary
func (h *SamplingHandler) DownloadSummary(c *gin.Context) {
	batch := h.useCase.LastRun()
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results available"})
		return
	}

	codeHeader, nameHeader := "AC", "AC_Name"
	if batch.SelectionType == model.SelectionTypeParliamentary {
		codeHeader, nameHeader = "PC", "PC_Name"
	}
	rows := [][]string{{codeHeader, nameHeader, "Total_Booths", "Selected_Booths", "Status", "Reason", "Samples_Requested"}}
	for _, row := range batch.Summary {
		rows = append(rows, []string{
			row.RegionCode,
			row.RegionName,
			strconv.Itoa(row.TotalBooths),
			strconv.Itoa(row.SelectedBooths),
			row.Status,
			row.Reason,
			strconv.Itoa(row.SamplesRequested),
		})
	}
	h.writeCSV(c, "summary.csv", rows)
}

// DownloadSelectedBooths streams the selected booth records as CSV.
// GET /api/download/selected_booths
func (h *SamplingHandler) DownloadSelectedBooths(c *gin.Context) {
	batch := h.useCase.LastRun()
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results available"})
		return
	}

	rows := [][]string{{"state", "district", "district_n", "pc", "pc_name", "ac", "ac_name", "booth", "booth_name", "cluster", "latitude", "longitude"}}
	for _, rec := range batch.SelectedBooths {
		rows = append(rows, []string{
			rec.State,
			rec.District,
			rec.DistrictName,
			rec.PC,
			rec.PCName,
			rec.AC,
			rec.ACName,
			rec.Booth,
			rec.BoothName,
			strconv.Itoa(rec.Cluster),
			strconv.FormatFloat(rec.Latitude, 'f', -1, 64),
			strconv.FormatFloat(rec.Longitude, 'f', -1, 64),
		})
	}
	h.writeCSV(c, "selected_booths.csv", rows)
}

func (h *SamplingHandler) writeCSV(c *gin.Context, filename string, rows [][]string) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to build CSV",
			"details": err.Error(),
		})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
