// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/designmat/design"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventsYAML = `
- {type: stim, cond: A, x: 1}
- {type: stim, cond: B, x: 2}
- {type: button, cond: B}
`

const modelYAML = `
formulas: ["y~1+cat(cond)", "y~1"]
eventtypes: [[stim], [button]]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestBuildCmd_CSV(t *testing.T) {
	ev := writeFile(t, "events.yaml", eventsYAML)
	cfg := writeFile(t, "model.yaml", modelYAML)

	out, _, err := run(t, "build", "--events", ev, "--config", cfg, "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "(intercept),cond_B,2_(intercept)\n1,0,0\n1,1,0\n0,0,1\n", out)
}

func TestBuildCmd_Summary(t *testing.T) {
	ev := writeFile(t, "events.yaml", eventsYAML)
	cfg := writeFile(t, "model.yaml", modelYAML)

	out, _, err := run(t, "build", "--events", ev, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "3 rows × 3 columns")
	assert.Regexp(t, `2\s+cond_B\s+cond\s+categorical\s+1`, out)
	assert.Regexp(t, `3\s+2_\(intercept\)\s+2_\(intercept\)\s+intercept\s+2`, out)
}

func TestBuildCmd_Errors(t *testing.T) {
	ev := writeFile(t, "events.yaml", eventsYAML)

	_, _, err := run(t, "build", "--events", ev, "--config", writeFile(t, "m.yaml", "formulas: [\"y~nope\"]\n"))
	assert.ErrorIs(t, err, design.ErrMissingVariable)

	_, _, err = run(t, "build", "--events", ev, "--config", writeFile(t, "m.yaml", "eventtypes: [[stim]]\n"))
	assert.ErrorIs(t, err, errNoFormulas)

	_, _, err = run(t, "build", "--events", writeFile(t, "e.yaml", "- {x: 1}\n"), "--config", writeFile(t, "m.yaml", modelYAML))
	assert.ErrorIs(t, err, errEventType)

	_, _, err = run(t, "build", "--events", ev, "--config", writeFile(t, "m.yaml", modelYAML), "--format", "xml")
	assert.Error(t, err)
}

func TestBuildCmd_Options(t *testing.T) {
	ev := writeFile(t, "events.yaml", `
- {type: e, cond: 1, x: 1}
- {type: e, cond: 2, x: 2}
- {type: e, cond: 1, x: 3}
`)
	cfg := writeFile(t, "model.yaml", `
formulas: ["y~cond+x"]
categorical: [cond]
codingschema: effects
`)
	out, _, err := run(t, "build", "--events", ev, "--config", cfg, "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "(intercept),cond_2,x\n1,-1,-1\n1,1,0\n1,-1,1\n", out)

	bad := writeFile(t, "bad.yaml", "formulas: [\"y~x\"]\nsplinespacing: cubic\n")
	_, _, err = run(t, "build", "--events", ev, "--config", bad)
	assert.Error(t, err)
}

func TestBuildCmd_LogsWarnings(t *testing.T) {
	ev := writeFile(t, "events.yaml", eventsYAML)
	cfg := writeFile(t, "model.yaml", "formulas: [\"y~cond\"]\neventtypes: [[stim]]\n")

	_, errOut, err := run(t, "build", "--events", ev, "--config", cfg, "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, errOut, "string column promoted to categorical")
}

func TestParseCmd(t *testing.T) {
	out, _, err := run(t, "parse", "y~cat(cond)*x+spl(speed,5)")
	require.NoError(t, err)
	assert.Contains(t, out, "predictors: [cond x]")
	assert.Contains(t, out, "categorical: [cond]")
	assert.Contains(t, out, "terms: [cond x cond:x]")
	assert.Contains(t, out, "splines: [{speed 5}]")

	_, _, err = run(t, "parse", "y~spl(x)")
	assert.Error(t, err)
}
