package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/internal/analyzer"
	"github.com/tslens/tslens/internal/config"
	"github.com/tslens/tslens/internal/loader"
)

// AnalysisServiceImpl implements domain.AnalysisService. It loads the
// project once, runs the selected detectors as independent tasks over
// the immutable unit set, and merges their outputs into one result.
type AnalysisServiceImpl struct {
	cfg      *config.Config
	progress domain.ProgressManager
}

// NewAnalysisService creates a service with the given configuration
func NewAnalysisService(cfg *config.Config) *AnalysisServiceImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &AnalysisServiceImpl{cfg: cfg}
}

// NewAnalysisServiceWithProgress creates a service with progress tracking
func NewAnalysisServiceWithProgress(cfg *config.Config, pm domain.ProgressManager) *AnalysisServiceImpl {
	svc := NewAnalysisService(cfg)
	svc.progress = pm
	return svc
}

// AnalyzeProject runs one analysis over the project root. Fatal
// loader errors (missing root, missing manifest) propagate unmodified;
// per-file parse failures surface as warnings on the result.
func (s *AnalysisServiceImpl) AnalyzeProject(ctx context.Context, req *domain.AnalyzeRequest) (*domain.AnalysisResult, error) {
	project, err := s.loadProject(ctx, req.ProjectRoot)
	if err != nil {
		return nil, err
	}

	result := &domain.AnalysisResult{
		Performance:  domain.EmptyPerformanceReport(),
		MemoryLeaks:  domain.EmptyLeakReport(),
		Dependencies: domain.EmptyDependencyReport(),
	}
	for _, skipped := range project.Skipped {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("skipped %s: %s", skipped.Path, skipped.Reason))
	}

	// The detectors are read-only over the unit set and independent
	// of each other, so they run as parallel tasks. Each one writes a
	// distinct result field; the join below is the only merge point.
	g, _ := errgroup.WithContext(ctx)

	if req.DetectorEnabled(domain.DetectorPerformance) {
		g.Go(func() error {
			perf := analyzer.NewPerformanceAnalyzer(s.performanceConfig())
			result.Performance = perf.Analyze(project.Units)
			return nil
		})
	}

	if req.DetectorEnabled(domain.DetectorMemory) {
		g.Go(func() error {
			leaks := analyzer.NewLeakAnalyzer()
			result.MemoryLeaks = leaks.Analyze(project.Units)
			return nil
		})
	}

	if req.DetectorEnabled(domain.DetectorDependencies) {
		g.Go(func() error {
			// Graph construction completes before cycle detection
			// starts; detection queries assume a fully populated graph.
			graph := analyzer.NewDependencyGraphBuilder().Build(project.Units)
			cycles := analyzer.NewCycleDetector().DetectCycles(graph)
			result.Dependencies = &domain.DependencyReport{
				Graph:                graph,
				CircularDependencies: cycles,
				Metrics:              analyzer.GraphMetrics(graph),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeAnalysisError, "analysis failed", err)
	}

	result.ComputeSummary(time.Now())
	return result, nil
}

// loadProject parses the project with progress tracking when enabled
func (s *AnalysisServiceImpl) loadProject(ctx context.Context, root string) (*loader.Project, error) {
	l := loader.NewProjectLoader()
	l.MaxConcurrency = s.cfg.Runtime.MaxGoroutines

	if s.progress != nil && s.progress.IsInteractive() {
		// Total is unknown until collection finishes; -1 renders a spinner
		task := s.progress.StartTask("Parsing source files", -1)
		defer task.Complete()
		l.Progress = task
	}

	return l.Load(ctx, root)
}

func (s *AnalysisServiceImpl) performanceConfig() *analyzer.PerformanceConfig {
	return &analyzer.PerformanceConfig{
		ComplexityWarningThreshold:  s.cfg.Thresholds.ComplexityWarning,
		ComplexityCriticalThreshold: s.cfg.Thresholds.ComplexityCritical,
		LargeArrayThreshold:         s.cfg.Thresholds.LargeArraySize,
		ExcerptLimit:                config.DefaultExcerptLimit,
	}
}
