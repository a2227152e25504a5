package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"bess-degradation/internal/lifetime"
)

const envPrefix = "BESS_"

// Settings configure the HTTP server and CLI.
type Settings struct {
	Addr           string   `koanf:"addr"`
	Env            string   `koanf:"env"`
	OutputDir      string   `koanf:"output_dir"`
	StaticDir      string   `koanf:"static_dir"`
	PresetFile     string   `koanf:"preset_file"`
	HorizonYears   int      `koanf:"horizon_years"`
	AllowedOrigins []string `koanf:"allowed_origins"`
}

func DefaultSettings() Settings {
	return Settings{
		Addr:           ":8080",
		Env:            "prod",
		OutputDir:      "output",
		HorizonYears:   lifetime.DefaultHorizonYears,
		AllowedOrigins: []string{"*"},
	}
}

// LoadSettings layers defaults, an optional YAML file and BESS_* environment
// variables, later layers winning. An empty path skips the file.
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultSettings(), "koanf"), nil); err != nil {
		return nil, err
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("settings file: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("settings file %s: %w", path, err)
		}
	}
	// BESS_OUTPUT_DIR -> output_dir; BESS_ALLOWED_ORIGINS is comma separated.
	if err := k.Load(env.ProviderWithValue(envPrefix, "__", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		key = strings.ReplaceAll(key, "__", ".")
		if key == "allowed_origins" {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, err
	}

	var s Settings
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s Settings) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if s.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if s.HorizonYears < 1 || s.HorizonYears > lifetime.MaxHorizonYears {
		return fmt.Errorf("horizon_years %d out of range (1 to %d)", s.HorizonYears, lifetime.MaxHorizonYears)
	}
	return nil
}

// Dev reports whether console logging and gin debug mode apply.
func (s Settings) Dev() bool { return s.Env == "dev" }

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
