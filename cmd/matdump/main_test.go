// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brick = `{
	"name": "brick",
	"shaders": [null, {"name": "lit", "vertex": "lit.vert", "fragment": "lit.frag"}],
	"textures": [{"key": "normal_texture", "path": "brick_n.png"}],
	"uniforms": [{"key": "tint", "type": "Uniform3f", "data": [0.5, 0.25, 1]}]
}`

func setup(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brick.json"), []byte(brick), 0o644))
	return dir
}

func TestRun(t *testing.T) {
	dir := setup(t)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{dir}, &out))
	s := out.String()
	assert.True(t, strings.HasPrefix(s, "NAME"))
	assert.Regexp(t, `brick +\d+ +Normal +2 +false`, s)
	assert.Regexp(t, `material_id +Uniform1ui`, s)
	assert.Regexp(t, `tint +Uniform3f`, s)
}

func TestRunTo(t *testing.T) {
	dir := setup(t)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--to", "yaml", filepath.Join(dir, "brick.json")}, &out))
	s := out.String()
	assert.Contains(t, s, "# brick\n")
	assert.Contains(t, s, "name: brick")
	assert.Contains(t, s, "- null")
}

func TestRunBind(t *testing.T) {
	dir := setup(t)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--bind", dir}, &out))
	s := out.String()
	assert.Contains(t, s, "brick pass 1 (lit):")
	assert.NotContains(t, s, "brick pass 0")
	assert.Contains(t, s, "\tUniform3f(tint)[0.5 0.25 1]\n")
	assert.Contains(t, s, "\tUniform1ui(material_id)")
}

func TestRunErrors(t *testing.T) {
	dir := setup(t)
	ctx := context.Background()
	var out bytes.Buffer
	assert.Error(t, run(ctx, nil, &out))
	assert.Error(t, run(ctx, []string{"--to", "xml", dir}, &out))
	assert.Error(t, run(ctx, []string{"-to", "yaml", dir}, &out))
	assert.Error(t, run(ctx, []string{filepath.Join(dir, "missing.json")}, &out))
	assert.Error(t, run(ctx, []string{"-c", filepath.Join(dir, "neo3.ini"), dir}, &out))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"name": 1}`), 0o644))
	assert.Error(t, run(ctx, []string{dir}, &out))
}

func TestRunWatch(t *testing.T) {
	dir := setup(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"--watch", dir}, &out))
	assert.Contains(t, out.String(), "brick")
}
