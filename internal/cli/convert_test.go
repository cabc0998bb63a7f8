package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConvertCommand(t *testing.T, rootOpts *RootOptions, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestConvertTicksText(t *testing.T) {
	input := writeInputFile(t, `["2024-01-01", null, "2024-01-01 00:00:01"]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "text"}, input)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1704067200000000000", lines[0])
	assert.Equal(t, "NaT", lines[1])
	assert.Equal(t, "1704067201000000000", lines[2])
}

func TestConvertTicksJSON(t *testing.T) {
	input := writeInputFile(t, `["2024-01-01", null]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "json"}, input)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.RunToken)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ticks", data["kind"])

	ticks, ok := data["ticks"].([]any)
	require.True(t, ok)
	require.Len(t, ticks, 2)
	assert.Equal(t, float64(1704067200000000000), ticks[0])
	assert.Nil(t, ticks[1])
}

func TestConvertMixedOffsetsFallsBackToObjects(t *testing.T) {
	input := writeInputFile(t, `["2024-01-01T00:00:00+02:00", "2024-01-01T00:00:00-05:00"]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "text"}, input)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-01-01T00:00:00+02:00", lines[0])
	assert.Equal(t, "2024-01-01T00:00:00-05:00", lines[1])
}

func TestConvertAgreeingOffsetsReportTimezone(t *testing.T) {
	input := writeInputFile(t, `["2024-01-01T00:00:00+02:00", "2024-06-01T12:00:00+02:00"]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "json"}, input)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ticks", data["kind"])
	assert.Equal(t, "+02:00", data["timezone"])
}

func TestConvertRaiseAbortsOnParseFailure(t *testing.T) {
	input := writeInputFile(t, `["2024-01-01", "definitely not a datetime"]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "text"}, input)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "E_CONVERT")
}

func TestConvertCoerceNullsFailures(t *testing.T) {
	input := writeInputFile(t, `["2024-01-01", "definitely not a datetime"]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "text"}, input, "--policy", "coerce")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1704067200000000000", lines[0])
	assert.Equal(t, "NaT", lines[1])
}

func TestConvertUnitFlag(t *testing.T) {
	input := writeInputFile(t, `[1704067200]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "text"}, input, "--unit", "s")
	require.NoError(t, err)
	assert.Equal(t, "1704067200000000000\n", buf.String())
}

func TestConvertZoneFlag(t *testing.T) {
	input := writeInputFile(t, `["2024-01-01 00:00:00"]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "json"}, input, "--zone", "America/New_York")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "America/New_York", data["timezone"])

	// Midnight wall clock in New York is 05:00 UTC in winter.
	ticks, ok := data["ticks"].([]any)
	require.True(t, ok)
	require.Len(t, ticks, 1)
	assert.Equal(t, float64(1704085200000000000), ticks[0])
}

func TestConvertInvalidPolicy(t *testing.T) {
	input := writeInputFile(t, `["2024-01-01"]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "text"}, input, "--policy", "bogus")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E_POLICY")
}

func TestConvertMissingInputFile(t *testing.T) {
	buf, err := runConvertCommand(t, &RootOptions{Output: "text"}, filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E_INPUT")
}

func TestConvertStdinInput(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(&RootOptions{Output: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(`["2024-01-01"]`))
	cmd.SetArgs([]string{"-"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "1704067200000000000\n", buf.String())
}

func TestConvertOptionsFileMerge(t *testing.T) {
	dir := t.TempDir()
	optionsPath := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(optionsPath, []byte("policy: coerce\n"), 0644))
	input := writeInputFile(t, `["definitely not a datetime"]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "text"}, input, "--options", optionsPath)
	require.NoError(t, err)
	assert.Equal(t, "NaT\n", buf.String())
}

func TestConvertFlagBeatsOptionsFile(t *testing.T) {
	dir := t.TempDir()
	optionsPath := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(optionsPath, []byte("policy: coerce\n"), 0644))
	input := writeInputFile(t, `["definitely not a datetime"]`)

	_, err := runConvertCommand(t, &RootOptions{Output: "text"}, input,
		"--options", optionsPath, "--policy", "raise")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestConvertDayFirstFlag(t *testing.T) {
	input := writeInputFile(t, `["02/01/2024"]`)

	buf, err := runConvertCommand(t, &RootOptions{Output: "text"}, input, "--day-first")
	require.NoError(t, err)
	// Day-first reads 02/01 as January 2nd.
	assert.Equal(t, "1704153600000000000\n", buf.String())
}
