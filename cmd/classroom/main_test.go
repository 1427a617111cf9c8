package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-classroom/config"
	"github.com/lixenwraith/vi-classroom/logx"
)

func TestRenderSnapshotHeadless(t *testing.T) {
	cfg := config.Default()
	cfg.Snapshot.Width, cfg.Snapshot.Height = 120, 80

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, renderSnapshot(cfg, path, logx.Nop()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestApplyFlagsOverrides(t *testing.T) {
	defer func(v string, fps int) { *variantFlag, *fpsFlag = v, fps }(*variantFlag, *fpsFlag)

	cfg := config.Default()
	*variantFlag = "detailed"
	*fpsFlag = 12
	require.NoError(t, applyFlags(cfg))
	assert.Equal(t, "detailed", cfg.Variant)
	assert.Equal(t, 12, cfg.FPS)

	*variantFlag = "ornate"
	assert.Error(t, applyFlags(config.Default()))
}

func TestReloadKeepsFlagOverrides(t *testing.T) {
	prev := *variantFlag
	t.Cleanup(func() { *variantFlag = prev })
	*variantFlag = "detailed"

	path := filepath.Join(t.TempDir(), "classroom.toml")
	require.NoError(t, os.WriteFile(path, []byte("variant = \"simple\"\n"), 0o644))

	w, err := config.NewWatcher(path, applyFlags)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.NoError(t, os.WriteFile(path, []byte("variant = \"simple\"\n[scene]\nrows = 2\n"), 0o644))

	select {
	case r := <-w.Reloads():
		require.NoError(t, r.Err)
		assert.Equal(t, "detailed", r.Config.Variant)
		assert.Equal(t, 2, r.Config.Scene.Rows)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}
