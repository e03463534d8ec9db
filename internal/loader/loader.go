package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/tslens/tslens/domain"
	"github.com/tslens/tslens/internal/parser"
)

// manifestCandidates are the project manifest files searched walking
// upward from the project root
var manifestCandidates = []string{
	"package.json",
	"tsconfig.json",
	"jsconfig.json",
}

// skipDirs are directories never descended into during collection
var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".git":         true,
	"coverage":     true,
}

// sourceExtensions are the file extensions loaded as source units
var sourceExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".mjs": true, ".cjs": true, ".mts": true, ".cts": true,
}

// SourceUnit is one parsed source file. Identity is the resolved
// absolute path; the tree and counters are immutable after loading.
type SourceUnit struct {
	Path  string
	AST   *parser.Node
	Size  int
	Lines int
}

// SkippedFile records a file excluded from analysis by a recovered
// per-file error
type SkippedFile struct {
	Path   string
	Reason string
}

// Project is the loaded, immutable input to the detectors
type Project struct {
	Root         string
	ManifestPath string
	Units        []*SourceUnit
	Skipped      []SkippedFile
}

// ProjectLoader resolves a project root to a set of parsed source
// units. Per-file parse failures are recovered as skips; only a
// missing root or missing manifest aborts the run.
type ProjectLoader struct {
	// MaxConcurrency bounds parallel parsing (defaults to NumCPU)
	MaxConcurrency int

	// Progress, when set, tracks per-file parse progress
	Progress domain.TaskProgress

	// Log receives per-file skip notices (defaults to stderr)
	Log func(format string, args ...any)
}

// NewProjectLoader creates a loader with defaults
func NewProjectLoader() *ProjectLoader {
	return &ProjectLoader{
		MaxConcurrency: runtime.NumCPU(),
		Log: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// Load resolves the root, locates the manifest, collects source files
// and parses them into units. Units are sorted by path so downstream
// graph insertion order is deterministic.
func (l *ProjectLoader) Load(ctx context.Context, root string) (*Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, domain.NewProjectNotFoundError(root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, domain.NewProjectNotFoundError(absRoot, err)
	}

	manifest := findManifest(absRoot)
	if manifest == "" {
		return nil, domain.NewConfigNotFoundError(absRoot)
	}

	files, err := l.collectSourceFiles(absRoot)
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrCodeAnalysisError, "failed to collect source files", err)
	}

	units, skipped := l.parseAll(ctx, files)

	sort.Slice(units, func(i, j int) bool { return units[i].Path < units[j].Path })
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].Path < skipped[j].Path })

	return &Project{
		Root:         absRoot,
		ManifestPath: manifest,
		Units:        units,
		Skipped:      skipped,
	}, nil
}

// findManifest walks upward from root until a manifest candidate is
// found or the filesystem root is reached
func findManifest(root string) string {
	for dir := root; ; dir = filepath.Dir(dir) {
		for _, candidate := range manifestCandidates {
			path := filepath.Join(dir, candidate)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
		if filepath.Dir(dir) == dir {
			return ""
		}
	}
}

// collectSourceFiles walks the root collecting in-scope source files,
// honoring the project's .gitignore when present
func (l *ProjectLoader) collectSourceFiles(root string) ([]string, error) {
	var ignore *gitignore.GitIgnore
	if matcher, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		ignore = matcher
	}

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if info.IsDir() {
			if path != root && (skipDirs[info.Name()] || strings.HasPrefix(info.Name(), ".")) {
				return filepath.SkipDir
			}
			if ignore != nil && path != root && ignore.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// parseResult is the per-file success-or-skip outcome. Parse errors
// never cross the aggregation boundary as failures.
type parseResult struct {
	unit    *SourceUnit
	skipped *SkippedFile
}

// parseAll parses files concurrently and merges per-file outcomes
func (l *ProjectLoader) parseAll(ctx context.Context, files []string) ([]*SourceUnit, []SkippedFile) {
	limit := l.MaxConcurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	results := make([]parseResult, 0, len(files))

	for _, file := range files {
		file := file
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			result := l.parseOne(file)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			if l.Progress != nil {
				l.Progress.Increment(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	var units []*SourceUnit
	var skipped []SkippedFile
	for _, result := range results {
		if result.unit != nil {
			units = append(units, result.unit)
		}
		if result.skipped != nil {
			skipped = append(skipped, *result.skipped)
		}
	}
	return units, skipped
}

// parseOne loads and parses a single file into a unit, or records a skip
func (l *ProjectLoader) parseOne(file string) parseResult {
	source, err := os.ReadFile(file)
	if err != nil {
		return l.skip(file, err)
	}

	ast, err := parser.ParseForLanguage(file, source)
	if err != nil {
		return l.skip(file, domain.NewParseError(file, err))
	}

	return parseResult{unit: &SourceUnit{
		Path:  file,
		AST:   ast,
		Size:  len(source),
		Lines: countLines(source),
	}}
}

func (l *ProjectLoader) skip(file string, cause error) parseResult {
	if l.Log != nil {
		l.Log("skipping %s: %v", file, cause)
	}
	return parseResult{skipped: &SkippedFile{Path: file, Reason: cause.Error()}}
}

func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	lines := 1
	for _, b := range source {
		if b == '\n' {
			lines++
		}
	}
	return lines
}
