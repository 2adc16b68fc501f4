package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("API_KEY", "secret")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDemoDryRun(t *testing.T) {
	out, errOut, err := run(t, "demo", "--dry-run")
	require.NoError(t, err)

	var got struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "budget", got.Items[0]["type"])
	assert.Equal(t, "legal", got.Items[1]["type"])
	assert.Contains(t, errOut, "2 records, 2 sources")
}

func TestSeedRequiresExactlyOneSource(t *testing.T) {
	_, _, err := run(t, "seed")
	assert.ErrorContains(t, err, "exactly one of --file or --s3-key")

	_, _, err = run(t, "seed", "--file", "a.json", "--s3-key", "b.json")
	assert.ErrorContains(t, err, "exactly one of --file or --s3-key")
}

func TestSeedRejectsUnknownVia(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"news": []}`), 0o644))

	_, _, err := run(t, "seed", "--file", path, "--via", "carrier-pigeon")
	assert.ErrorContains(t, err, "--via must be http or queue")
}
