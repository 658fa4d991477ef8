package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoutesCommand(t *testing.T) {
	out, err := execute(t, "routes")
	require.NoError(t, err)

	assert.Contains(t, out, "PREFIX")
	assert.Regexp(t, `/auth\s+\*http\.AuthController`, out)
	assert.Regexp(t, `/media\s+\*http\.MediaController`, out)
	assert.Regexp(t, `/favorite\s+\*http\.FavoriteController`, out)
	assert.Regexp(t, `/users\s+\*http\.UserController`, out)
	assert.Regexp(t, `/ping\s+\*http\.PingController`, out)
	assert.Regexp(t, `/metrics\s+prometheus`, out)
}

func TestRoutesCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mrp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics:\n  enabled: false\n"), 0o600))

	out, err := execute(t, "routes", "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "prometheus")
}

func TestRoutesCommand_InvalidPort(t *testing.T) {
	_, err := execute(t, "routes", "--port", "70000")
	assert.ErrorContains(t, err, "invalid server port: 70000")
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "mrp-server version test")
}

func TestServeCommand_RejectsArgs(t *testing.T) {
	_, err := execute(t, "serve", "extra")
	assert.Error(t, err)
}
