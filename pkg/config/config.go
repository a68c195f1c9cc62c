package config

import (
	"fmt"

	"github.com/edgeflare/passgen/pkg/password"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is set at build time with -ldflags "-X github.com/edgeflare/passgen/pkg/config.Version=..."
var Version = "dev"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PASSGEN"

// Config holds application-wide configuration
type Config struct {
	Password        password.Config `mapstructure:",squash"`
	Count           int             `mapstructure:"count"`
	Copy            bool            `mapstructure:"copy"`
	LogLevel        string          `mapstructure:"logLevel"`
	MetricsTextfile string          `mapstructure:"metricsTextfile"`
}

// Default returns a Config with default values
func Default() Config {
	return Config{
		Password: password.DefaultConfig(),
		Count:    1,
		LogLevel: "warn",
	}
}

// keys maps config keys to the flag and environment variable that set them.
// Custom sets have no environment variable.
var keys = []struct {
	key  string
	flag string
	env  string
}{
	{"charSets", "charsets", "CHARSETS"},
	{"length", "length", "LENGTH"},
	{"lengthMethod", "length-method", "LENGTH_METHOD"},
	{"entropy", "entropy", "ENTROPY"},
	{"debugConsole", "debug", "DEBUG"},
	{"customSets", "custom-set", ""},
	{"count", "count", "COUNT"},
	{"copy", "copy", "COPY"},
	{"logLevel", "log-level", "LOG_LEVEL"},
	{"metricsTextfile", "metrics-textfile", "METRICS_TEXTFILE"},
}

// Load reads config from flags and PASSGEN_* environment variables, in that
// order of precedence, on top of Default. Flags missing from the set are
// skipped. No config file is read.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for _, k := range keys {
		if k.env != "" {
			if err := v.BindEnv(k.key, EnvPrefix+"_"+k.env); err != nil {
				return nil, fmt.Errorf("failed to bind env %s: %w", k.env, err)
			}
		}
		if flags == nil {
			continue
		}
		if f := flags.Lookup(k.flag); f != nil {
			if err := v.BindPFlag(k.key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", k.flag, err)
			}
		}
	}

	// Only explicitly set values are merged, so defaults survive unset flags.
	settings := make(map[string]any)
	for _, k := range keys {
		if v.IsSet(k.key) {
			settings[k.key] = v.Get(k.key)
		}
	}

	cfg := Default()
	if err := decode(settings, &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Merge overlays overrides onto base the way an options object is merged:
// only keys present in overrides change. Values are coerced, so "12" sets
// length 12 and 12.7 truncates to 12. Unknown keys are an error.
func Merge(base password.Config, overrides map[string]any) (password.Config, error) {
	if err := decode(overrides, &base); err != nil {
		return password.Config{}, fmt.Errorf("unable to merge config: %w", err)
	}
	return base, nil
}

func decode(input map[string]any, target any) error {
	if len(input) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
