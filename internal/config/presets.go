package config

var Presets = map[string]map[string]*Config{
	"twoscale": {
		"default": {
			Model: "twoscale", Integrator: "rk4", Dt: 0.005, Duration: 10.0,
			Coupling: true,
			Params:   ParamsConfig{F: 18, H: 1, C: 10, B: 10, K: 8, J: 32},
		},
		"training": {
			// Long horizon with coupling recorded, the usual source of
			// closure training data.
			Model: "twoscale", Integrator: "rk4", Dt: 0.005, Duration: 50.0,
			Coupling: true,
			Params:   ParamsConfig{F: 18, H: 1, C: 10, B: 10, K: 8, J: 32},
		},
		"weak": {
			Model: "twoscale", Integrator: "rk4", Dt: 0.005, Duration: 10.0,
			Params: ParamsConfig{F: 10, H: 0.5, C: 10, B: 10, K: 8, J: 32},
		},
	},
	"gcm": {
		"free": {
			Model: "gcm", Integrator: "rk4", Closure: "none", Dt: 0.01, Duration: 10.0,
			Params: ParamsConfig{F: 18, K: 8},
		},
		"wilks": {
			Model: "gcm", Integrator: "rk4", Closure: "wilks", Dt: 0.01, Duration: 10.0,
			Coupling: true,
			Params:   ParamsConfig{F: 18, K: 8},
		},
		"euler": {
			Model: "gcm", Integrator: "euler", Closure: "wilks", Dt: 0.001, Duration: 10.0,
			Params: ParamsConfig{F: 18, K: 8},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
