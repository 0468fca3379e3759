package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"BoothMap-App/internal/domain/helper"
	"BoothMap-App/internal/domain/model"
	"BoothMap-App/internal/domain/repository"
	"BoothMap-App/internal/domain/service"
)

// ProcessRequest are the batch-level parameters, applied uniformly to
// every region in the run.
type ProcessRequest struct {
	State            string `json:"state"`
	SelectionType    string `json:"selection_type"`
	SamplesPerRegion int    `json:"samples_per_region"`
}

// BoothSamplingUseCase orchestrates batch sampling over all regions of a
// state and keeps the last run in memory for the result endpoints.
type BoothSamplingUseCase interface {
	States(ctx context.Context) ([]string, error)
	Regions(ctx context.Context, state, selectionType string) ([]model.RegionInfo, error)
	Process(ctx context.Context, req *ProcessRequest) (*model.BatchResult, error)
	LastRun() *model.BatchResult
}

type boothSamplingUseCase struct {
	layers    repository.LayerRepository
	validator service.ContainmentValidator
	sampler   service.BoothSamplingService

	maxGoroutines int

	mu      sync.RWMutex
	lastRun *model.BatchResult
}

// NewBoothSamplingUseCase wires the batch orchestrator.
func NewBoothSamplingUseCase(
	layers repository.LayerRepository,
	validator service.ContainmentValidator,
	sampler service.BoothSamplingService,
) BoothSamplingUseCase {
	return &boothSamplingUseCase{
		layers:        layers,
		validator:     validator,
		sampler:       sampler,
		maxGoroutines: 5,
	}
}

// States lists the states with data available.
func (u *boothSamplingUseCase) States(ctx context.Context) ([]string, error) {
	return u.layers.ListStates(ctx)
}

// Regions returns the code/name list of a state's region layer.
func (u *boothSamplingUseCase) Regions(ctx context.Context, state, selectionType string) ([]model.RegionInfo, error) {
	layer, err := u.layers.RegionLayer(ctx, state, selectionType)
	if err != nil {
		return nil, err
	}

	infos := make([]model.RegionInfo, 0, len(layer.Regions))
	for _, r := range layer.Regions {
		infos = append(infos, model.RegionInfo{Code: r.Code, Name: r.Name})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos, nil
}

// regionOutcome carries one region's result through the fan-in channel.
type regionOutcome struct {
	result   *model.RegionResult
	warnings []string
}

// Process runs the full batch: load layers, validate containment per
// region, cluster and select, then assemble summary and export rows.
// Per-region failures degrade to incomplete results; only layer loading
// and code-column resolution are fatal to the batch.
func (u *boothSamplingUseCase) Process(ctx context.Context, req *ProcessRequest) (*model.BatchResult, error) {
	if !model.IsSelectionType(req.SelectionType) {
		return nil, fmt.Errorf("selection_type must be %q or %q", model.SelectionTypeAssembly, model.SelectionTypeParliamentary)
	}
	if req.SamplesPerRegion <= 0 {
		return nil, fmt.Errorf("samples_per_region must be positive")
	}

	regionLayer, err := u.layers.RegionLayer(ctx, req.State, req.SelectionType)
	if err != nil {
		return nil, fmt.Errorf("could not load %s region layer for %s: %w", req.SelectionType, req.State, err)
	}
	if len(regionLayer.Regions) == 0 {
		return nil, fmt.Errorf("no regions parseable for %s", req.State)
	}
	boothLayer, err := u.layers.BoothLayer(ctx, req.State)
	if err != nil {
		return nil, fmt.Errorf("could not load booth layer for %s: %w", req.State, err)
	}

	clustersPerRegion := service.AllocateClusters(req.SamplesPerRegion)
	log.Printf("🚀 sampling run started: state=%s type=%s regions=%d booths=%d clusters/region=%d",
		req.State, req.SelectionType, len(regionLayer.Regions), len(boothLayer.Booths), clustersPerRegion)
	start := time.Now()

	semaphore := make(chan struct{}, u.maxGoroutines)
	outcomes := make(chan regionOutcome, len(regionLayer.Regions))
	var wg sync.WaitGroup

	for _, region := range regionLayer.Regions {
		wg.Add(1)
		go func(region *model.Region) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			valid, warnings, err := u.validator.ValidBooths(boothLayer, regionLayer, region.Code)
			if err != nil {
				// Geometric inconsistency degrades to a zero result for
				// this region; the batch keeps going.
				failed := model.EmptyRegionResult(req.SamplesPerRegion, clustersPerRegion)
				failed.Reason = model.ReasonValidationFailed
				outcomes <- regionOutcome{
					result: &model.RegionResult{
						RegionCode:      region.Code,
						RegionName:      region.Name,
						SelectionResult: failed,
					},
					warnings: append(warnings, fmt.Sprintf("region %s: %v", region.Code, err)),
				}
				return
			}

			var selection *model.SelectionResult
			if len(valid) == 0 {
				selection = model.EmptyRegionResult(req.SamplesPerRegion, clustersPerRegion)
			} else {
				selection = u.sampler.Sample(valid, req.SamplesPerRegion)
			}
			outcomes <- regionOutcome{
				result: &model.RegionResult{
					RegionCode:      region.Code,
					RegionName:      region.Name,
					SelectionResult: selection,
				},
				warnings: warnings,
			}
		}(region)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	batch := &model.BatchResult{
		RunID:             uuid.NewString(),
		State:             req.State,
		SelectionType:     req.SelectionType,
		SamplesPerRegion:  req.SamplesPerRegion,
		ClustersPerRegion: clustersPerRegion,
	}
	seenWarnings := make(map[string]bool)
	for outcome := range outcomes {
		for _, w := range outcome.warnings {
			if !seenWarnings[w] {
				seenWarnings[w] = true
				batch.Warnings = append(batch.Warnings, w)
			}
		}
		batch.Regions = append(batch.Regions, outcome.result)
	}

	// Fan-in is order independent; presentation is sorted by code.
	sort.Slice(batch.Regions, func(i, j int) bool {
		return batch.Regions[i].RegionCode < batch.Regions[j].RegionCode
	})

	for _, r := range batch.Regions {
		batch.Summary = append(batch.Summary, model.SummaryRow{
			RegionCode:       r.RegionCode,
			RegionName:       r.RegionName,
			TotalBooths:      r.TotalBooths,
			SelectedBooths:   len(r.SelectedBooths),
			Status:           model.StatusFor(r.IsComplete),
			Reason:           r.Reason,
			SamplesRequested: req.SamplesPerRegion,
		})
		for _, booth := range r.SelectedBooths {
			batch.SelectedBooths = append(batch.SelectedBooths, extractBoothRecord(booth, req.State))
		}

		batch.TotalRegions++
		if r.IsComplete {
			batch.Completed++
		}
		batch.TotalBooths += r.TotalBooths
		batch.TotalSelected += len(r.SelectedBooths)
	}

	u.mu.Lock()
	u.lastRun = batch
	u.mu.Unlock()

	log.Printf("✅ sampling run finished in %v: regions=%d completed=%d selected=%d",
		time.Since(start), batch.TotalRegions, batch.Completed, batch.TotalSelected)
	return batch, nil
}

// LastRun returns the most recent batch result, or nil before any run.
func (u *boothSamplingUseCase) LastRun() *model.BatchResult {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.lastRun
}

// extractBoothRecord resolves the jurisdictional attributes of one
// selected booth through the alias tables. Missing fields stay empty;
// the state falls back to the run parameter when no column matches.
func extractBoothRecord(booth model.ClusteredBooth, state string) model.SelectedBoothRecord {
	attrs := booth.Attributes
	recordState := helper.Value(attrs, helper.StateAliases)
	if recordState == "" {
		recordState = state
	}
	return model.SelectedBoothRecord{
		State:        recordState,
		District:     helper.Value(attrs, helper.DistrictAliases),
		DistrictName: helper.Value(attrs, helper.DistrictNameAliases),
		PC:           helper.Value(attrs, helper.PCAliases),
		PCName:       helper.Value(attrs, helper.PCNameAliases),
		AC:           helper.Value(attrs, helper.ACAliases),
		ACName:       helper.Value(attrs, helper.ACNameAliases),
		Booth:        helper.Value(attrs, helper.BoothCodeAliases),
		BoothName:    helper.Value(attrs, helper.BoothNameAliases),
		Cluster:      booth.ClusterID,
		Latitude:     booth.Latitude,
		Longitude:    booth.Longitude,
	}
}
