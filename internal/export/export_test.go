package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/codegauge/internal/analyzer"
	"github.com/blackwell-systems/codegauge/internal/estimate"
)

func sampleBundle() *analyzer.Bundle {
	return &analyzer.Bundle{
		Overview: analyzer.Overview{
			FileCount: 42,
			LineCount: 1260,
			Languages: []estimate.LanguageShare{{Name: "Go", Percentage: 100, Files: 42}},
		},
		Security: estimate.Security{License: "MIT License", Score: 88},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, " yml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("out/report.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("report.json"))
	assert.Equal(t, FormatJSON, FormatForPath("report"))
}

func TestWrite_JSONUsesWireNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleBundle()))

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.EqualValues(t, 42, doc["overview"]["file_count"])
	assert.EqualValues(t, 88, doc["security"]["security_score"])
}

func TestWrite_YAMLUsesWireNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleBundle()))
	assert.Contains(t, buf.String(), "file_count: 42")
	assert.Contains(t, buf.String(), "license: MIT License")

	var back analyzer.Bundle
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *sampleBundle(), back)
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Format("xml"), sampleBundle()))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "bundle.yaml")
	require.NoError(t, WriteFile(path, FormatForPath(path), sampleBundle()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "overview:")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should be cleaned up")
}
