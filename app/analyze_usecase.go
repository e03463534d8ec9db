package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tslens/tslens/domain"
)

// AnalyzeUseCase orchestrates a full project analysis: run the
// detectors through the analysis service and render the result with
// the formatter.
type AnalyzeUseCase struct {
	service   domain.AnalysisService
	formatter domain.ResultFormatter
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(service domain.AnalysisService, formatter domain.ResultFormatter) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute performs the analysis and writes the formatted result
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req *domain.AnalyzeRequest) (*domain.AnalysisResult, error) {
	if uc.service == nil {
		return nil, domain.NewDomainError(domain.ErrCodeInvalidInput, "analysis service is not configured", nil)
	}
	if req == nil {
		return nil, domain.NewDomainError(domain.ErrCodeInvalidInput, "analyze request is nil", nil)
	}

	start := time.Now()
	result, err := uc.service.AnalyzeProject(ctx, req)
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(start).Milliseconds()

	if uc.formatter == nil {
		return result, nil
	}

	writer, cleanup, err := uc.resolveWriter(req)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := uc.formatter.Write(result, req.OutputFormat, writer); err != nil {
		return nil, err
	}
	return result, nil
}

// resolveWriter picks the output destination. A file path wins over
// the request writer; stdout is the fallback.
func (uc *AnalyzeUseCase) resolveWriter(req *domain.AnalyzeRequest) (io.Writer, func(), error) {
	if req.OutputPath != "" {
		if dir := filepath.Dir(req.OutputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, domain.NewOutputError(
					fmt.Sprintf("failed to create output directory %s", dir), err)
			}
		}
		file, err := os.Create(req.OutputPath)
		if err != nil {
			return nil, nil, domain.NewOutputError(
				fmt.Sprintf("failed to create output file %s", req.OutputPath), err)
		}
		return file, func() { _ = file.Close() }, nil
	}
	if req.OutputWriter != nil {
		return req.OutputWriter, func() {}, nil
	}
	return os.Stdout, func() {}, nil
}

// AnalyzeUseCaseBuilder builds an AnalyzeUseCase
type AnalyzeUseCaseBuilder struct {
	service   domain.AnalysisService
	formatter domain.ResultFormatter
}

// NewAnalyzeUseCaseBuilder creates a new builder
func NewAnalyzeUseCaseBuilder() *AnalyzeUseCaseBuilder {
	return &AnalyzeUseCaseBuilder{}
}

// WithService sets the analysis service
func (b *AnalyzeUseCaseBuilder) WithService(service domain.AnalysisService) *AnalyzeUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the result formatter
func (b *AnalyzeUseCaseBuilder) WithFormatter(formatter domain.ResultFormatter) *AnalyzeUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build creates the AnalyzeUseCase
func (b *AnalyzeUseCaseBuilder) Build() (*AnalyzeUseCase, error) {
	if b.service == nil {
		return nil, domain.NewDomainError(domain.ErrCodeInvalidInput, "analysis service is required", nil)
	}
	return &AnalyzeUseCase{
		service:   b.service,
		formatter: b.formatter,
	}, nil
}
