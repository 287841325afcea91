package config

var Presets = map[string]*Config{
	"cubic": {
		Degree:       3,
		Coefficients: []float64{1.5, -0.5},
		Steps:        6,
		Normalize:    true,
	},
	"quintic": {
		Degree:       5,
		Coefficients: []float64{3.4445, -4.775, 2.0315},
		Steps:        6,
		Normalize:    true,
	},
	// Unit leading coefficient without normalization: diverges for any
	// matrix with norm above 1. Useful for watching the instability path.
	"blowup": {
		Matrix:       []float64{3, 0, 0, 0, 3, 0, 0, 0, 3},
		Degree:       3,
		Coefficients: []float64{1, 1},
		Steps:        50,
		Normalize:    false,
	},
	"gentle": {
		Degree:       3,
		Coefficients: []float64{1.2, -0.2},
		Steps:        12,
		Normalize:    true,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
