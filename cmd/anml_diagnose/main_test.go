package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_MissingEnvFile(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Diagnostics failed")
	assert.Empty(t, stdout.String())
}

func TestRun_RejectsArguments(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"extra"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
}
