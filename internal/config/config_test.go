package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, [3]float32{0, 0, -5}, cfg.Camera.StartPosition)
	assert.InDelta(t, 1.5*math32.Pi, cfg.Camera.StartYaw, 1e-6)
	assert.Equal(t, float32(3.0), cfg.Camera.MoveSpeed)
	assert.Equal(t, float32(0.01), cfg.Camera.MouseSensitivity)
	assert.False(t, cfg.HasShaderFiles())
}

func TestLoadKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "viewer.toml", `
[window]
title = "test"
fps_limit = 144

[camera]
move_speed = 7.5
start_position = [1.0, 2.0, 3.0]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Window.Title)
	assert.Equal(t, 144, cfg.Window.FPSLimit)
	assert.Equal(t, float32(7.5), cfg.Camera.MoveSpeed)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.StartPosition)

	def := Default()
	assert.Equal(t, def.Window.Width, cfg.Window.Width)
	assert.Equal(t, def.Camera.FOVY, cfg.Camera.FOVY)
	assert.Equal(t, def.Render, cfg.Render)
}

func TestLoadResolvesShaderPaths(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "abs.frag")
	path := writeFile(t, dir, "viewer.toml", `
[render]
vertex_shader = "shaders/tri.vert"
fragment_shader = "`+filepath.ToSlash(abs)+`"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shaders", "tri.vert"), cfg.Render.VertexShader)
	assert.Equal(t, filepath.ToSlash(abs), filepath.ToSlash(cfg.Render.FragmentShader))
	assert.True(t, cfg.HasShaderFiles())
	assert.Equal(t, []string{path, cfg.Render.VertexShader, cfg.Render.FragmentShader}, cfg.WatchPaths(path))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[window\n"},
		{"unknown key", "[camera]\nroll = 1.0\n"},
		{"bad clip planes", "[camera]\nnear = 10.0\nfar = 1.0\n"},
		{"bad fov", "[camera]\nfov_y = 0.0\n"},
		{"lonely shader", "[render]\nvertex_shader = \"a.vert\"\n"},
		{"bad window", "[window]\nwidth = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.toml", tt.body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{})
	assert.Equal(t, Default(), cfg)

	cfg.Resolve(Flags{Width: 1280, Height: 720, FPSLimit: 60, VSync: true, MoveSpeed: 10})
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 60, cfg.Window.FPSLimit)
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, float32(10), cfg.Camera.MoveSpeed)
}

func TestWatchPathsWithoutShaders(t *testing.T) {
	assert.Equal(t, []string{"viewer.toml"}, Default().WatchPaths("viewer.toml"))
	assert.Empty(t, Default().WatchPaths(""))
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "viewer.example.toml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, 144, cfg.Window.FPSLimit)
	assert.InDelta(t, def.Camera.StartYaw, cfg.Camera.StartYaw, 1e-5)
	assert.InDelta(t, def.Camera.FOVY, cfg.Camera.FOVY, 1e-5)
	assert.Equal(t, def.Render.ClearColor, cfg.Render.ClearColor)
}
