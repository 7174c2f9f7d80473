package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aeolus-osc/aeolus-go/pkg/layout"
)

const organDefinition = `/manual/new  Great
/divis/new   I  1  1
/rank        C  0  principal8.ae0
/divis/end
/group/new   Great
/stop        1  1  1
/tremul      1  TR  Tremulant
/group/end
/instr/end
`

// instrumentDir lays out stops/Organ/definition with its rank file in
// stops/.
func instrumentDir(t *testing.T, def string) string {
	t.Helper()
	stops := t.TempDir()

	rank := make([]byte, 256)
	copy(rank[32:], "Principal$8'")
	copy(rank[120:], "P8")
	require.NoError(t, os.WriteFile(filepath.Join(stops, "principal8.ae0"), rank, 0o644))

	dir := filepath.Join(stops, "Organ")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "definition"), []byte(def), 0o644))
	return dir
}

func TestRun_JSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{instrumentDir(t, organDefinition)}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var doc struct {
		Instrument string `json:"instrument"`
		Elements   []struct {
			Name    string    `json:"name"`
			Type    string    `json:"type"`
			Bounds  []float64 `json:"bounds"`
			Label   string    `json:"label"`
			Address string    `json:"address"`
		} `json:"elements"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))

	assert.Equal(t, "Organ", doc.Instrument)
	labels := make(map[string]string)
	for _, el := range doc.Elements {
		assert.Len(t, el.Bounds, 4)
		labels[el.Label] = el.Type
	}
	assert.Equal(t, "Label", labels["Great"])
	assert.Equal(t, "Button", labels["Principal 8'"])
	assert.Equal(t, "Button", labels["Tremulant"])
	assert.Empty(t, stderr.String())
}

func TestRun_YAML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-format", "yaml", instrumentDir(t, organDefinition)}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "Organ", doc["instrument"])
	assert.Equal(t, layout.DocumentVersion, doc["version"])
}

func TestRun_Dump(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-dump", instrumentDir(t, organDefinition)}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "label: Organ")
	assert.Contains(t, stdout.String(), "mnemonic: P8")
}

func TestRun_Preview(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-preview", instrumentDir(t, organDefinition)}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "Great")
	assert.Contains(t, stdout.String(), "Tremulant")
}

func TestRun_Stops(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-stops", instrumentDir(t, organDefinition)}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "/aeolus/button/1/1")
	assert.Contains(t, out, "Principal 8'")
	assert.Contains(t, out, "I/1 principal8.ae0")
	assert.Contains(t, out, "/aeolus/button/1/2")
	assert.Contains(t, out, "2 buttons in 1 groups")
}

func TestRun_ParseErrorWritesNothing(t *testing.T) {
	bad := "/manual/new Great\n/rank C 0 principal8.ae0\n"

	var stdout, stderr bytes.Buffer
	code := run([]string{instrumentDir(t, bad)}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "line 2: /rank")
	assert.Equal(t, 1, bytes.Count(stderr.Bytes(), []byte("Error:")))
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no directory", nil},
		{"two directories", []string{"a", "b"}},
		{"bad format", []string{"-format", "xml", "a"}},
		{"bad flag", []string{"-nope", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, 2, run(tt.args, &stdout, &stderr))
			assert.Empty(t, stdout.String())
			assert.NotEmpty(t, stderr.String())
		})
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(t.TempDir(), "missing")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
}
