package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGenerateCommand(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewGenerateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestGenerateToStdout(t *testing.T) {
	dir := writeDefs(t, map[string]string{"chat.cue": chatDefs})

	buf, err := runGenerateCommand(t, "text", dir, "--lang", "reasonml", "--no-version-header")
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "type chatMessage = {\n")
	assert.Contains(t, output, "  content: string,\n")
	assert.Contains(t, output, "  views: float,\n")
}

func TestGenerateToDirectory(t *testing.T) {
	dir := writeDefs(t, map[string]string{
		"chat.cue":   chatDefs,
		"common.cue": commonDefs,
	})
	outDir := t.TempDir()

	buf, err := runGenerateCommand(t, "text",
		dir, "--lang", "typescript", "--output", outDir, "--no-version-header")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ Generated 2 module(s) for typescript")

	chat, err := os.ReadFile(filepath.Join(outDir, "chat.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(chat), "export interface ChatMessage {")

	common, err := os.ReadFile(filepath.Join(outDir, "common.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(common), "export type Uuid = string;")
}

func TestGenerateJSON(t *testing.T) {
	dir := writeDefs(t, map[string]string{"chat.cue": chatDefs})
	outDir := t.TempDir()

	buf, err := runGenerateCommand(t, "json",
		dir, "--lang", "reasonml", "--output", outDir)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestGenerateVersionHeader(t *testing.T) {
	dir := writeDefs(t, map[string]string{"chat.cue": chatDefs})

	buf, err := runGenerateCommand(t, "text", dir, "--lang", "reasonml")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/* Generated by wiretype ")
}

func TestGenerateWithConfig(t *testing.T) {
	dir := writeDefs(t, map[string]string{
		"ids.cue": `
module: "ids"
decls: [
	{kind: "struct", name: "Ref", fields: [
		{name: "id", type: {kind: "simple", name: "Uuid"}},
	]},
]
`,
	})
	cfgPath := filepath.Join(t.TempDir(), "wiretype.yaml")
	cfg := `
type_mappings:
  reasonml:
    Uuid: string
no_version_header: true
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	buf, err := runGenerateCommand(t, "text", dir, "--lang", "reasonml", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "  id: string,\n")
	assert.NotContains(t, buf.String(), "Generated by wiretype")
}

func TestGenerateUnknownLanguage(t *testing.T) {
	dir := writeDefs(t, map[string]string{"chat.cue": chatDefs})

	buf, err := runGenerateCommand(t, "text", dir, "--lang", "cobol")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "UNKNOWN_LANGUAGE")
}

func TestGenerateMissingDirectory(t *testing.T) {
	buf, err := runGenerateCommand(t, "text", "/nonexistent/defs", "--lang", "reasonml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "not found")
}

func TestGenerateInvalidDefinitions(t *testing.T) {
	// A free type variable fails validation before any emission.
	dir := writeDefs(t, map[string]string{
		"bad.cue": `
module: "bad"
decls: [
	{kind: "struct", name: "Holder", fields: [
		{name: "value", type: {kind: "simple", name: "T"}},
	]},
]
`,
	})

	buf, err := runGenerateCommand(t, "text", dir, "--lang", "reasonml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "UNBOUND_TYPE_PARAM")
}

func TestGenerateUnsupportedWidth(t *testing.T) {
	// 64-bit integers cannot round-trip through JSON numbers; emission
	// fails rather than truncating.
	dir := writeDefs(t, map[string]string{
		"wide.cue": `
module: "wide"
decls: [
	{kind: "struct", name: "Counter", fields: [
		{name: "count", type: {kind: "u64"}},
	]},
]
`,
	})

	buf, err := runGenerateCommand(t, "text", dir, "--lang", "typescript")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "UNSUPPORTED_NUMERIC_WIDTH")
}

func TestGenerateDeterministic(t *testing.T) {
	dir := writeDefs(t, map[string]string{
		"chat.cue":   chatDefs,
		"common.cue": commonDefs,
	})

	first, err := runGenerateCommand(t, "text", dir, "--lang", "reasonml")
	require.NoError(t, err)
	second, err := runGenerateCommand(t, "text", dir, "--lang", "reasonml")
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}
