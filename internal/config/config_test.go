package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Mesher.ChunkSize != 32 {
		t.Errorf("expected chunk size 32, got %d", cfg.Mesher.ChunkSize)
	}
	if !cfg.Mesher.UseAO {
		t.Error("expected AO to be enabled by default")
	}
	if cfg.Mesher.AOMultipliers != [3]float32{0.93, 0.8, 0.5} {
		t.Errorf("unexpected AO multipliers %v", cfg.Mesher.AOMultipliers)
	}
	if cfg.Mesher.ReverseAOMultiplier != 1.0 {
		t.Errorf("expected reverse AO 1.0, got %f", cfg.Mesher.ReverseAOMultiplier)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "voxmesh.yaml")

	yamlContent := `
mesher:
  chunk_size: 16
  use_ao: false
  ao_multipliers: [0.9, 0.7, 0.4]
  reverse_ao_multiplier: 0.9
  workers: 2

world:
  seed: 42
  radius: 1

logging:
  level: "debug"
  log_file: "mesher.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath, nil)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Mesher.ChunkSize != 16 {
		t.Errorf("expected chunk size 16, got %d", cfg.Mesher.ChunkSize)
	}
	if cfg.Mesher.UseAO {
		t.Error("expected AO disabled")
	}
	if cfg.Mesher.AOMultipliers != [3]float32{0.9, 0.7, 0.4} {
		t.Errorf("unexpected AO multipliers %v", cfg.Mesher.AOMultipliers)
	}
	if cfg.Mesher.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Mesher.Workers)
	}
	// Values missing from the file keep their defaults.
	if cfg.Mesher.QueueSize != 64 {
		t.Errorf("expected default queue size 64, got %d", cfg.Mesher.QueueSize)
	}
	if cfg.World.Seed != 42 || cfg.World.Radius != 1 {
		t.Errorf("unexpected world config %+v", cfg.World)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "mesher.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("mesher: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := Default()
	cfg.Mesher.AOMultipliers = [3]float32{1.5, -0.2, 0.5}
	cfg.Mesher.ReverseAOMultiplier = 3
	cfg.Mesher.Workers = 0
	cfg.Mesher.QueueSize = -4
	cfg.World.Radius = -1

	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Mesher.AOMultipliers != [3]float32{1, 0, 0.5} {
		t.Errorf("multipliers not clamped: %v", cfg.Mesher.AOMultipliers)
	}
	if cfg.Mesher.ReverseAOMultiplier != 1 {
		t.Errorf("reverse AO not clamped: %f", cfg.Mesher.ReverseAOMultiplier)
	}
	if cfg.Mesher.Workers != 1 || cfg.Mesher.QueueSize != 1 || cfg.World.Radius != 0 {
		t.Errorf("counts not clamped: %+v %+v", cfg.Mesher, cfg.World)
	}
}

func TestValidateRejectsChunkSize(t *testing.T) {
	for _, size := range []int{0, -3, MaxChunkSize + 1} {
		cfg := Default()
		cfg.Mesher.ChunkSize = size
		if err := cfg.Validate(); err == nil {
			t.Errorf("chunk size %d should be rejected", size)
		}
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxmesh.yaml")
	if err := os.WriteFile(path, []byte("mesher:\n  workers: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-workers", "8", "-no-ao", "-debug", "-radius", "0"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mesher.Workers != 8 {
		t.Errorf("expected flag to win with 8 workers, got %d", cfg.Mesher.Workers)
	}
	if cfg.Mesher.UseAO {
		t.Error("expected -no-ao to disable AO")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	if cfg.World.Radius != 0 {
		t.Errorf("expected radius 0, got %d", cfg.World.Radius)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Mesher.ChunkSize = 24
	if err := Save(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Mesher.ChunkSize != 24 {
		t.Errorf("expected chunk size 24 after reload, got %d", loaded.Mesher.ChunkSize)
	}
}
