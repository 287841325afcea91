package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ortholab/internal/mat3"
	"ortholab/internal/poly"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Degree != 3 {
		t.Errorf("expected degree 3, got %d", cfg.Degree)
	}
	if cfg.Steps != 6 {
		t.Errorf("expected 6 steps, got %d", cfg.Steps)
	}
	if !cfg.Normalize {
		t.Error("expected normalize on by default")
	}
	if len(cfg.Coefficients) != 2 {
		t.Errorf("expected 2 coefficients, got %d", len(cfg.Coefficients))
	}
}

func TestDefaultCoefficients(t *testing.T) {
	c3 := DefaultCoefficients(3)
	if len(c3) != 2 || c3[0] != 1.5 || c3[1] != -0.5 {
		t.Errorf("degree 3 defaults wrong: %v", c3)
	}

	c5 := DefaultCoefficients(5)
	if len(c5) != 3 || c5[0] != 3.4445 {
		t.Errorf("degree 5 defaults wrong: %v", c5)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := &Config{
		Matrix:       []float64{2, 0, 0, 0, 2, 0, 0, 0, 2},
		Degree:       5,
		Coefficients: []float64{3.4445, -4.775, 2.0315},
		Steps:        12,
		Normalize:    true,
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Degree != 5 {
		t.Errorf("expected degree 5, got %d", loaded.Degree)
	}
	if loaded.Steps != 12 {
		t.Errorf("expected 12 steps, got %d", loaded.Steps)
	}
	if len(loaded.Matrix) != 9 || loaded.Matrix[0] != 2 {
		t.Errorf("matrix round trip wrong: %v", loaded.Matrix)
	}
	if len(loaded.Coefficients) != 3 || loaded.Coefficients[1] != -4.775 {
		t.Errorf("coefficients round trip wrong: %v", loaded.Coefficients)
	}
}

func TestLoadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	doc := `degree: 3
coefficients: [1.2, -0.2]
steps: 4
normalize: false
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Steps != 4 {
		t.Errorf("expected 4 steps, got %d", cfg.Steps)
	}
	if cfg.Normalize {
		t.Error("expected normalize false")
	}
	if cfg.Coefficients[0] != 1.2 {
		t.Errorf("coefficients wrong: %v", cfg.Coefficients)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()

	rc, err := cfg.RunConfig()
	if err != nil {
		t.Fatalf("RunConfig failed: %v", err)
	}

	if rc.Initial != mat3.Identity() {
		t.Errorf("expected identity initial matrix, got %v", rc.Initial)
	}
	if rc.Degree != 3 || len(rc.Coefficients) != 2 {
		t.Errorf("unexpected run config: %+v", rc)
	}
}

func TestRunConfigFillsCoefficients(t *testing.T) {
	cfg := &Config{Degree: 5, Steps: 3}

	rc, err := cfg.RunConfig()
	if err != nil {
		t.Fatalf("RunConfig failed: %v", err)
	}
	if len(rc.Coefficients) != 3 {
		t.Errorf("expected quintic defaults, got %v", rc.Coefficients)
	}
}

func TestRunConfigRejectsBadInput(t *testing.T) {
	bad := &Config{Matrix: []float64{1, 2, 3}, Degree: 3}
	if _, err := bad.RunConfig(); err == nil {
		t.Error("expected error for short matrix")
	}

	mismatched := &Config{Degree: 3, Coefficients: []float64{1, 0, 0}}
	if _, err := mismatched.RunConfig(); !errors.Is(err, poly.ErrInvalidCoefficients) {
		t.Errorf("expected ErrInvalidCoefficients, got %v", err)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range []string{"cubic", "quintic", "blowup", "gentle"} {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("missing preset %q", name)
		}
		if _, err := cfg.RunConfig(); err != nil {
			t.Errorf("preset %q does not produce a valid run config: %v", name, err)
		}
	}

	if GetPreset("nope") != nil {
		t.Error("expected nil for unknown preset")
	}

	if len(ListPresets()) != len(Presets) {
		t.Error("ListPresets length mismatch")
	}
}
