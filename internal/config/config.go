package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"srtshift/internal/timecode"
)

// EnvPrefix scopes the environment overrides, e.g. SRTSHIFT_OUT.
const EnvPrefix = "SRTSHIFT"

// Config defines run defaults loaded from YAML and the environment.
type Config struct {
	// Out is the output file path used when --out is not given.
	Out string `yaml:"out" envconfig:"OUT"`
	// Policy selects literal or normalized shifting.
	Policy string `yaml:"policy" envconfig:"POLICY"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{Out: "out.srt", Policy: timecode.Literal.String()}
}

// Load reads optional YAML from path, applies environment overrides, and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "reading config")
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return Config{}, errors.Wrapf(err, "parsing config %s", path)
		}
	}
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, errors.Wrap(err, "reading environment")
	}
	// Keep defaults centralized so callers can rely on normalized values.
	if c.Out == "" {
		c.Out = Default().Out
	}
	if c.Policy == "" {
		c.Policy = Default().Policy
	}
	if _, err := timecode.ParsePolicy(c.Policy); err != nil {
		return Config{}, errors.Wrap(err, "config")
	}
	return c, nil
}

// ShiftPolicy returns the parsed Policy. Load has already validated it.
func (c Config) ShiftPolicy() timecode.Policy {
	p, _ := timecode.ParsePolicy(c.Policy)
	return p
}
