package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/codegauge/internal/analyzer"
	"github.com/blackwell-systems/codegauge/internal/estimate"
)

func TestHandleAnalyzeSource_Repository(t *testing.T) {
	s := newTestServer()
	args := json.RawMessage(`{"url":"https://github.com/acme/widgets"}`)

	got, err := s.handleAnalyzeSource(context.Background(), args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := got.(AnalyzeSourceResult)
	if res.Descriptor.Platform != estimate.PlatformGitHub {
		t.Errorf("platform = %q, want github", res.Descriptor.Platform)
	}
	if res.Seed != estimate.SeedFor(res.Descriptor) {
		t.Errorf("seed = %d, want descriptor-derived seed", res.Seed)
	}
	if res.Bundle.Overview.FileCount < 50 || res.Bundle.Overview.FileCount >= 550 {
		t.Errorf("file count %d outside repository range", res.Bundle.Overview.FileCount)
	}
}

func TestHandleAnalyzeSource_ExplicitSeedIsReproducible(t *testing.T) {
	s := newTestServer()
	args := json.RawMessage(`{"archive_name":"src.zip","size_bytes":2097152,"seed":99}`)

	first, err := s.handleAnalyzeSource(context.Background(), args)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.handleAnalyzeSource(context.Background(), args)
	if err != nil {
		t.Fatal(err)
	}

	a, b := first.(AnalyzeSourceResult), second.(AnalyzeSourceResult)
	if a.Seed != 99 {
		t.Errorf("seed = %d, want 99", a.Seed)
	}
	aj, _ := json.Marshal(a.Bundle)
	bj, _ := json.Marshal(b.Bundle)
	if string(aj) != string(bj) {
		t.Errorf("same seed produced different bundles:\n%s\n%s", aj, bj)
	}
	if n := a.Bundle.Overview.FileCount; n < 25 || n >= 120 {
		t.Errorf("file count %d outside 1-10 MiB tier", n)
	}
}

func TestHandleAnalyzeSource_Invalid(t *testing.T) {
	s := NewServer(analyzer.New(analyzer.WithLatency(0)), 1024, "test")

	tests := []struct {
		name       string
		args       string
		descriptor bool
	}{
		{"empty", `{}`, false},
		{"both", `{"url":"https://github.com/a/b","archive_name":"a.zip","size_bytes":1}`, false},
		{"archive without size", `{"archive_name":"a.zip"}`, false},
		{"bad url", `{"platform":"gitlab","url":"https://github.com/a/b"}`, true},
		{"bad extension", `{"archive_name":"a.tar","size_bytes":1}`, true},
		{"over limit", `{"archive_name":"a.zip","size_bytes":2048}`, true},
		{"malformed", `{"url":1}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleAnalyzeSource(context.Background(), json.RawMessage(tt.args))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, estimate.ErrInvalidDescriptor); got != tt.descriptor {
				t.Errorf("errors.Is(ErrInvalidDescriptor) = %v, want %v (%v)", got, tt.descriptor, err)
			}
		})
	}
}

func TestHandleSearchCode(t *testing.T) {
	s := newTestServer()

	got, err := s.handleSearchCode(context.Background(), json.RawMessage(`{"query":"useState"}`))
	if err != nil {
		t.Fatal(err)
	}
	res := got.(SearchCodeResult)
	if len(res.Matches) != 1 || res.Matches[0].File != "src/hooks/useAuth.js" {
		t.Errorf("unexpected matches: %+v", res.Matches)
	}

	got, err = s.handleSearchCode(context.Background(), json.RawMessage(`{"query":""}`))
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(got)
	if !strings.Contains(string(data), `"matches":[]`) {
		t.Errorf("empty search should encode an empty list, got %s", data)
	}
}

func TestHandleRefactoringSuggestions(t *testing.T) {
	s := newTestServer()

	got, err := s.handleRefactoringSuggestions(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	res := got.(RefactoringResult)
	if len(res.Refactorings) != 4 {
		t.Errorf("repository refactorings = %d, want 4", len(res.Refactorings))
	}
	if len(res.PerformanceTips) == 0 {
		t.Error("expected performance tips")
	}

	if _, err := s.handleRefactoringSuggestions(context.Background(), json.RawMessage(`{"kind":"tarball"}`)); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestRun_ToolsCall(t *testing.T) {
	s := newTestServer()
	sendLine, _, cleanup := runServer(t, s)
	defer cleanup()

	resp := sendLine(`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"analyze_source","arguments":{"url":"https://gitlab.com/acme/widgets"}}}`)

	var parsed struct {
		Result toolsCallResult `json:"result"`
	}
	if err := json.Unmarshal([]byte(resp), &parsed); err != nil {
		t.Fatalf("unmarshal: %v\nresponse: %s", err, resp)
	}
	if parsed.Result.IsError {
		t.Fatalf("tool returned error: %s", resp)
	}
	var res AnalyzeSourceResult
	if err := json.Unmarshal([]byte(parsed.Result.Content[0].Text), &res); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
	if res.Descriptor.Platform != estimate.PlatformGitLab {
		t.Errorf("platform = %q", res.Descriptor.Platform)
	}

	resp = sendLine(`{"jsonrpc":"2.0","id":8,"method":"tools/call","params":{"name":"analyze_source","arguments":{"url":"https://example.com/x/y"}}}`)
	if !strings.Contains(resp, `"isError":true`) || !strings.Contains(resp, "invalid descriptor") {
		t.Errorf("expected tool error for undetectable platform, got %s", resp)
	}
}
