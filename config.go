package ledspot

// YAML configuration for the spot daemon. Every field has a workable
// default so the daemon runs with no file at all.

import (
	"os"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	yaml "gopkg.in/yaml.v2"
)

// OPCConfig locates the fadecandy board the frames are relayed to.
type OPCConfig struct {
	Server  string `yaml:"server"`
	Channel uint8  `yaml:"channel"`
	Pixels  int    `yaml:"pixels"`
}

// DefaultsConfig seeds the engine's per-mode parameters at boot. The HTTP
// surface can change all of them afterwards.
type DefaultsConfig struct {
	TransitionDuration float64 `yaml:"transition_duration"`
	TransitionEasing   string  `yaml:"transition_easing"`
	CycleDuration      float64 `yaml:"cycle_duration"`
	CycleEasing        string  `yaml:"cycle_easing"`
}

type Config struct {
	Listen       string         `yaml:"listen"`
	PollInterval string         `yaml:"poll_interval"`
	OPC          OPCConfig      `yaml:"opc"`
	Defaults     DefaultsConfig `yaml:"defaults"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() (cfg *Config) {
	return &Config{
		Listen:       ":8080",
		PollInterval: "25ms",
		OPC: OPCConfig{
			Server:  "127.0.0.1:7890",
			Channel: 0,
			Pixels:  64,
		},
		Defaults: DefaultsConfig{
			TransitionDuration: 0.2,
			TransitionEasing:   "cubic-in-out",
			CycleDuration:      2.0,
			CycleEasing:        "linear",
		},
	}
}

// LoadConfig reads a YAML configuration file, leaving defaults in place for
// any field the file does not mention. An empty path returns the defaults.
func LoadConfig(path string) (cfg *Config, err errors.Error) {
	cfg = DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, errGo := os.ReadFile(path)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo = yaml.Unmarshal(data, cfg); errGo != nil {
		return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}
	return cfg, nil
}

// Interval returns the poll cadence, falling back to 25ms when the
// configured value does not parse.
func (cfg *Config) Interval() time.Duration {
	interval, errGo := time.ParseDuration(cfg.PollInterval)
	if errGo != nil || interval <= 0 {
		return 25 * time.Millisecond
	}
	return interval
}
