package config

import (
	"os"
	"path/filepath"
	"testing"

	"masks2zarr/pkg/zarr"
)

// TestDefaultConfig verifies the defaults match the legacy behavior:
// overlap checking on, truncating bit buffers, zstd chunks.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Compressor.ID != zarr.CompressorZstd {
		t.Errorf("Expected zstd default, got %s", cfg.Compressor.ID)
	}
	if !cfg.CheckOverlaps {
		t.Errorf("Expected overlap checking on by default")
	}
	if cfg.StrictBitBuffers {
		t.Errorf("Expected legacy truncation by default")
	}
	if !cfg.Verbose {
		t.Errorf("Expected verbose on by default")
	}
}

// TestLoadConfig verifies YAML loading over defaults and the missing
// file fallback.
func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got %v", err)
	}
	if cfg.Compressor.ID != zarr.CompressorZstd {
		t.Errorf("Expected default compressor, got %s", cfg.Compressor.ID)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "compressor:\n  id: zlib\n  level: 6\nstrictBitBuffers: true\nverbose: false\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Compressor.ID != zarr.CompressorZlib || cfg.Compressor.Level != 6 {
		t.Errorf("Expected zlib level 6, got %s level %d", cfg.Compressor.ID, cfg.Compressor.Level)
	}
	if !cfg.StrictBitBuffers {
		t.Errorf("Expected strict bit buffers enabled")
	}
	if cfg.Verbose {
		t.Errorf("Expected verbose disabled")
	}
	if !cfg.CheckOverlaps {
		t.Errorf("Expected unset checkOverlaps to keep its default")
	}
}

// TestCompressorConfig verifies codec validation.
func TestCompressorConfig(t *testing.T) {
	cfg := DefaultConfig()

	comp, err := cfg.CompressorConfig()
	if err != nil {
		t.Fatalf("CompressorConfig failed: %v", err)
	}
	if comp == nil || comp.ID != zarr.CompressorZstd {
		t.Errorf("Expected zstd config, got %+v", comp)
	}

	cfg.Compressor.ID = "none"
	comp, err = cfg.CompressorConfig()
	if err != nil || comp != nil {
		t.Errorf("Expected nil config for raw chunks, got %+v (%v)", comp, err)
	}

	cfg.Compressor.ID = "blosc"
	if _, err := cfg.CompressorConfig(); err == nil {
		t.Errorf("Expected error for unsupported codec")
	}
}
