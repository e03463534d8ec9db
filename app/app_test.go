package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/service"
)

func newTestProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"package.json": "{}\n",
		"main.ts":      "import { helper } from './util';\nexport const out = helper;\n",
		"util.ts":      "export const helper = 1;\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return root
}

func newTestUseCase(t *testing.T) *AnalyzeUseCase {
	t.Helper()
	uc, err := NewAnalyzeUseCaseBuilder().
		WithService(service.NewAnalysisService(nil)).
		WithFormatter(service.NewOutputFormatter()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return uc
}

func TestAnalyzeUseCase_WritesToRequestWriter(t *testing.T) {
	var buf bytes.Buffer
	req := &domain.AnalyzeRequest{
		ProjectRoot:  newTestProject(t),
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &buf,
	}

	result, err := newTestUseCase(t).Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded["summary"]; !ok {
		t.Error("JSON output missing summary")
	}
}

func TestAnalyzeUseCase_WritesToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "reports", "result.json")
	req := &domain.AnalyzeRequest{
		ProjectRoot:  newTestProject(t),
		OutputFormat: domain.OutputFormatJSON,
		OutputPath:   outPath,
	}

	if _, err := newTestUseCase(t).Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(string(data), "summary") {
		t.Error("file output missing summary")
	}
}

func TestAnalyzeUseCase_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	req := &domain.AnalyzeRequest{
		ProjectRoot:  newTestProject(t),
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &buf,
	}

	if _, err := newTestUseCase(t).Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Summary") {
		t.Error("text output missing summary section")
	}
}

func TestAnalyzeUseCase_PropagatesLoaderErrors(t *testing.T) {
	req := &domain.AnalyzeRequest{
		ProjectRoot:  filepath.Join(t.TempDir(), "missing"),
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &bytes.Buffer{},
	}

	_, err := newTestUseCase(t).Execute(context.Background(), req)
	if !domain.IsProjectNotFound(err) {
		t.Errorf("expected PROJECT_NOT_FOUND, got %v", err)
	}
}

func TestAnalyzeUseCase_NilRequest(t *testing.T) {
	if _, err := newTestUseCase(t).Execute(context.Background(), nil); err == nil {
		t.Error("expected error for nil request")
	}
}

func TestBuilder_RequiresService(t *testing.T) {
	if _, err := NewAnalyzeUseCaseBuilder().Build(); err == nil {
		t.Error("builder without a service should fail")
	}
}

func TestAnalyzeUseCase_DurationRecorded(t *testing.T) {
	var buf bytes.Buffer
	req := &domain.AnalyzeRequest{
		ProjectRoot:  newTestProject(t),
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &buf,
	}

	result, err := newTestUseCase(t).Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Duration < 0 {
		t.Errorf("duration = %d, expected non-negative", result.Duration)
	}
}
