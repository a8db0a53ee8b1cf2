package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := NewRoot()
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

func example(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "examples"}, parts...)...)
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", example("basic", "descriptor.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "UserSubstruct{name Settable[string], active Settable[bool]}")

	out, err = run(t, "--suffix", "Patch", "check", example("pointers", "descriptor.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "AccountPatch{id int64, name Settable[string], nickname Settable[*string], settings Settable[opaque]}")

	out, err = run(t, "check", example("nested", "descriptor.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "address Settable[AddressBuilder]")
}

func TestCheckReportsDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
records:
  - name: A
    fields:
      - name: b
        type: B
        kind: nested
  - name: B
    fields:
      - name: a
        type: A
        kind: nested
        wrap: false
  - name: Free
    fields:
      - name: x
        type: int
`), 0o644))

	out, err := run(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, out, "warning: ")
	assert.Contains(t, out, "[ignored_setting]")
	assert.Contains(t, out, "[cyclic_nesting]")
	assert.NotContains(t, out, "FreeSubstruct")

	_, err = run(t, "check", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPlan(t *testing.T) {
	out, err := run(t, "plan", example("nested", "descriptor.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "fingerprint:")
	assert.Contains(t, out, "op: merge")

	path := filepath.Join(t.TempDir(), "plan.yaml")
	out, err = run(t, "plan", example("nested", "descriptor.yaml"), "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Session string `yaml:"session"`
		Patches []struct {
			Record string `yaml:"record"`
			Name   string `yaml:"name"`
		} `yaml:"patches"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.NotEmpty(t, doc.Session)
	require.Len(t, doc.Patches, 3)
	assert.Equal(t, "PersonBuilder", doc.Patches[0].Name)
	assert.Equal(t, "City", doc.Patches[2].Record)
}

type applyOutput struct {
	WouldChange bool           `yaml:"would_change"`
	Patch       map[string]any `yaml:"patch"`
	Result      map[string]any `yaml:"result"`
}

func runApply(t *testing.T, dir, record string) applyOutput {
	t.Helper()

	out, err := run(t, "apply", example(dir, "descriptor.yaml"),
		"--record", record,
		"--patch", example(dir, "patch.yaml"),
		"--target", example(dir, "target.yaml"))
	require.NoError(t, err)

	var res applyOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &res), out)

	return res
}

func TestApply(t *testing.T) {
	res := runApply(t, "basic", "User")
	assert.True(t, res.WouldChange)
	assert.Equal(t, map[string]any{"name": "Bob"}, res.Patch)
	assert.Equal(t, map[string]any{"name": "Bob", "active": true, "age": 30}, res.Result)

	res = runApply(t, "pointers", "Account")
	assert.True(t, res.WouldChange)
	assert.Equal(t, "7", res.Patch["id"])
	assert.Nil(t, res.Result["nickname"])
	assert.Equal(t, map[string]any{"theme": "dark"}, res.Result["settings"])
	assert.Equal(t, "secret", res.Result["password"])

	res = runApply(t, "nested", "Person")
	assert.True(t, res.WouldChange)
	assert.Equal(t, map[string]any{
		"street": "Main St",
		"city":   "Berlin",
		"zip":    "10115",
	}, res.Result["address"])
}

func TestApplyErrors(t *testing.T) {
	_, err := run(t, "apply", example("basic", "descriptor.yaml"),
		"--record", "Missing",
		"--patch", example("basic", "patch.yaml"),
		"--target", example("basic", "target.yaml"))
	assert.ErrorContains(t, err, `record "Missing"`)

	_, err = run(t, "apply", example("basic", "descriptor.yaml"), "--record", "User")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "patch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bogus: 1\n"), 0o644))

	_, err = run(t, "apply", example("basic", "descriptor.yaml"),
		"--record", "User",
		"--patch", path,
		"--target", example("basic", "target.yaml"))
	assert.ErrorContains(t, err, "unknown field")
}
