package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/collision-sim/sim/scenario"
)

func TestWriteStates_TextIsReadableAsParticleFile(t *testing.T) {
	// GIVEN a generated system
	states, err := scenario.Generate(scenario.DefaultRandomSpec(5), 11)
	require.NoError(t, err)

	// WHEN written in text format
	var buf bytes.Buffer
	require.NoError(t, writeStates(&buf, states, "text", 11))

	// THEN the particle file parser reads back the same system
	parsed, err := scenario.ParseText(&buf)
	require.NoError(t, err)
	assert.Equal(t, states, parsed)
}

func TestWriteStates_YAMLIsLoadableScenario(t *testing.T) {
	states, err := scenario.Generate(scenario.DefaultRandomSpec(3), 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeStates(&buf, states, "yaml", 5))
	path := filepath.Join(t.TempDir(), "gen.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := scenario.Load(path)
	require.NoError(t, err)
	assert.Equal(t, states, loaded)
}

func TestWriteStates_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeStates(&buf, nil, "csv", 1)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestWriteScenarioFile_WritesCompleteFile(t *testing.T) {
	// GIVEN a generated system and an output path
	states, err := scenario.Generate(scenario.DefaultRandomSpec(4), 2)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "gen.txt")

	// WHEN written to disk
	require.NoError(t, writeScenarioFile(path, states, "text", 2))

	// THEN the file is flushed and loads back unchanged
	loaded, err := scenario.Load(path)
	require.NoError(t, err)
	assert.Equal(t, states, loaded)
}

func TestWriteScenarioFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := writeScenarioFile(filepath.Join(dir, "missing", "gen.txt"), nil, "text", 1)
	assert.Error(t, err, "unwritable path")

	err = writeScenarioFile(filepath.Join(dir, "gen.csv"), nil, "csv", 1)
	assert.Error(t, err, "unknown format")
}
