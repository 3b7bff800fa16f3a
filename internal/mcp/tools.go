package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/codegauge/internal/analyzer"
	"github.com/blackwell-systems/codegauge/internal/estimate"
	"github.com/blackwell-systems/codegauge/internal/intake"
	"github.com/blackwell-systems/codegauge/internal/operations"
	"github.com/blackwell-systems/codegauge/internal/suggest"
)

// AnalyzeSourceResult is the analyze_source tool result.
type AnalyzeSourceResult struct {
	Descriptor  estimate.Descriptor  `json:"descriptor"`
	Seed        uint64               `json:"seed"`
	Bundle      *analyzer.Bundle     `json:"bundle"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// SearchCodeResult is the search_code tool result.
type SearchCodeResult struct {
	Matches []operations.Match `json:"matches"`
}

// RefactoringResult is the refactoring_suggestions tool result.
type RefactoringResult struct {
	Refactorings    []operations.Refactoring `json:"refactorings"`
	PerformanceTips []string                 `json:"performance_tips"`
}

var (
	analyzeSourceSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"platform":{"type":"string","enum":["github","gitlab","bitbucket","sourceforge","apache-svn"],"description":"Hosting platform; detected from url when omitted"},` +
		`"url":{"type":"string","description":"Repository URL"},` +
		`"archive_name":{"type":"string","description":"Archive file name (.zip or .rar)"},` +
		`"size_bytes":{"type":"integer","description":"Archive size in bytes"},` +
		`"seed":{"type":"integer","description":"Random seed for reproducible results"}` +
		`},"additionalProperties":false}`)
	searchCodeSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"query":{"type":"string","description":"Case-insensitive keyword"},` +
		`"path":{"type":"string","description":"Optional glob over file paths, e.g. src/components/*"}` +
		`},"required":["query"],"additionalProperties":false}`)
	refactoringSchema = json.RawMessage(`{"type":"object","properties":{` +
		`"kind":{"type":"string","enum":["repository","archive"],"description":"Source kind (default repository)"}` +
		`},"additionalProperties":false}`)
)

// addTools registers all MCP tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "analyze_source",
		Description: "Estimate size, languages, quality and security metrics for a repository URL or an uploaded archive.",
		InputSchema: analyzeSourceSchema,
		Handler:     s.handleAnalyzeSource,
	})
	s.registerTool(toolDef{
		Name:        "search_code",
		Description: "Search indexed code locations by keyword, optionally filtered by a path glob.",
		InputSchema: searchCodeSchema,
		Handler:     s.handleSearchCode,
	})
	s.registerTool(toolDef{
		Name:        "refactoring_suggestions",
		Description: "Refactoring suggestions and performance tips for a repository or archive.",
		InputSchema: refactoringSchema,
		Handler:     s.handleRefactoringSuggestions,
	})
}

type analyzeSourceArgs struct {
	Platform    string  `json:"platform"`
	URL         string  `json:"url"`
	ArchiveName string  `json:"archive_name"`
	SizeBytes   *int64  `json:"size_bytes"`
	Seed        *uint64 `json:"seed"`
}

func (s *Server) handleAnalyzeSource(ctx context.Context, raw json.RawMessage) (any, error) {
	var args analyzeSourceArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	var (
		d   estimate.Descriptor
		err error
	)
	switch {
	case args.URL != "" && args.ArchiveName != "":
		return nil, errors.New("pass either url or archive_name, not both")
	case args.URL != "":
		d, err = intake.ParseRepository(estimate.Platform(args.Platform), args.URL)
	case args.ArchiveName != "":
		if args.SizeBytes == nil {
			return nil, errors.New("size_bytes is required with archive_name")
		}
		d, err = intake.Archive(args.ArchiveName, *args.SizeBytes, s.maxArchiveBytes)
	default:
		return nil, errors.New("url or archive_name is required")
	}
	if err != nil {
		return nil, err
	}

	seed := s.analyzer.Seed(d)
	if args.Seed != nil {
		seed = *args.Seed
	}
	b, err := s.analyzer.AnalyzeSeed(ctx, d, seed)
	if err != nil {
		return nil, err
	}

	return AnalyzeSourceResult{
		Descriptor:  d,
		Seed:        seed,
		Bundle:      b,
		Suggestions: suggest.NewEngine().Run(suggest.NewContext(d, b)),
	}, nil
}

type searchCodeArgs struct {
	Query string `json:"query"`
	Path  string `json:"path"`
}

func (s *Server) handleSearchCode(_ context.Context, raw json.RawMessage) (any, error) {
	var args searchCodeArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	matches, err := operations.Search(args.Query, args.Path)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []operations.Match{}
	}
	return SearchCodeResult{Matches: matches}, nil
}

type refactoringArgs struct {
	Kind string `json:"kind"`
}

func (s *Server) handleRefactoringSuggestions(_ context.Context, raw json.RawMessage) (any, error) {
	var args refactoringArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	kind := estimate.KindRepository
	if args.Kind != "" {
		kind = estimate.SourceKind(args.Kind)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown kind %q", args.Kind)
	}
	return RefactoringResult{
		Refactorings:    operations.Refactorings(kind),
		PerformanceTips: operations.PerformanceTips(),
	}, nil
}
