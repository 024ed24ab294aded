// Package config loads the generator configuration from lifecycle.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"lifecycle-generator/internal/gen"
	"lifecycle-generator/internal/lifecycle"
	"lifecycle-generator/internal/model"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "lifecycle.toml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the content of lifecycle.toml.
type Config struct {
	Attributes   AttributesConfig   `toml:"attributes"`
	Capabilities CapabilitiesConfig `toml:"capabilities"`
	Output       OutputConfig       `toml:"output"`
	Cache        CacheConfig        `toml:"cache"`
}

// AttributesConfig names the attributes tagging contributor methods.
type AttributesConfig struct {
	Constructor string `toml:"constructor"`
	Dispose     string `toml:"dispose"`
	Finalizer   string `toml:"finalizer"`
}

// CapabilitiesConfig names the disposal interfaces and their members.
type CapabilitiesConfig struct {
	Disposable           string `toml:"disposable"`
	DisposeMember        string `toml:"dispose_member"`
	ExtensibleDisposable string `toml:"extensible_disposable"`
	RegisterMember       string `toml:"register_member"`
}

// OutputConfig controls where fragments go and how diagnostics are surfaced.
type OutputConfig struct {
	Dir string `toml:"dir"`
	// Archive writes a single txtar archive to stdout instead of Dir.
	Archive     bool   `toml:"archive"`
	Diagnostics string `toml:"diagnostics"`
	// Jobs bounds concurrent synthesis; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
}

// CacheConfig controls the fragment cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir defaults to the user cache directory.
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	attrs := lifecycle.DefaultAttributes()
	caps := lifecycle.DefaultCapabilities()

	return Config{
		Attributes: AttributesConfig{
			Constructor: attrs.Constructor,
			Dispose:     attrs.Dispose,
			Finalizer:   attrs.Finalizer,
		},
		Capabilities: CapabilitiesConfig{
			Disposable:           caps.Disposable,
			DisposeMember:        caps.DisposeMember,
			ExtensibleDisposable: caps.ExtensibleDisposable,
			RegisterMember:       caps.RegisterMember,
		},
		Output: OutputConfig{
			Dir:         "generated",
			Diagnostics: gen.DiagnosticsInline.String(),
		},
	}
}

// Load reads the configuration at path on top of the defaults.
// A missing file yields the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes TOML data on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error

	attrs := map[string]string{
		"constructor": c.Attributes.Constructor,
		"dispose":     c.Attributes.Dispose,
		"finalizer":   c.Attributes.Finalizer,
	}

	seen := map[string]string{}

	for _, role := range []string{"constructor", "dispose", "finalizer"} {
		name := model.NormalizeAttribute(attrs[role])
		if name == "" {
			errs = append(errs, fmt.Errorf("%w: [attributes].%s is empty", ErrInvalid, role))
			continue
		}

		if other, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("%w: [attributes].%s and [attributes].%s name the same attribute",
				ErrInvalid, other, role))
		}

		seen[name] = role
	}

	if strings.TrimSpace(c.Capabilities.Disposable) == "" {
		errs = append(errs, fmt.Errorf("%w: [capabilities].disposable is empty", ErrInvalid))
	}

	if strings.TrimSpace(c.Capabilities.DisposeMember) == "" {
		errs = append(errs, fmt.Errorf("%w: [capabilities].dispose_member is empty", ErrInvalid))
	}

	if c.Capabilities.ExtensibleDisposable != "" && strings.TrimSpace(c.Capabilities.RegisterMember) == "" {
		errs = append(errs, fmt.Errorf("%w: [capabilities].register_member is required with extensible_disposable",
			ErrInvalid))
	}

	if _, err := gen.ParseDiagnosticsMode(c.Output.Diagnostics); err != nil {
		errs = append(errs, fmt.Errorf("%w: [output].diagnostics: %w", ErrInvalid, err))
	}

	if c.Output.Jobs < 0 {
		errs = append(errs, fmt.Errorf("%w: [output].jobs must not be negative", ErrInvalid))
	}

	if !c.Output.Archive && strings.TrimSpace(c.Output.Dir) == "" {
		errs = append(errs, fmt.Errorf("%w: [output].dir is empty", ErrInvalid))
	}

	return errors.Join(errs...)
}

// LifecycleOptions returns the discovery and classification options.
func (c Config) LifecycleOptions() lifecycle.Options {
	return lifecycle.Options{
		Attributes: lifecycle.Attributes{
			Constructor: c.Attributes.Constructor,
			Dispose:     c.Attributes.Dispose,
			Finalizer:   c.Attributes.Finalizer,
		},
		Capabilities: lifecycle.Capabilities{
			Disposable:           c.Capabilities.Disposable,
			DisposeMember:        c.Capabilities.DisposeMember,
			ExtensibleDisposable: c.Capabilities.ExtensibleDisposable,
			RegisterMember:       c.Capabilities.RegisterMember,
		},
	}
}

// GeneratorConfig returns the generator settings.
func (c Config) GeneratorConfig() (gen.Config, error) {
	mode, err := gen.ParseDiagnosticsMode(c.Output.Diagnostics)
	if err != nil {
		return gen.Config{}, err
	}

	cfg := gen.DefaultConfig()
	cfg.Diagnostics = mode

	if c.Output.Jobs > 0 {
		cfg.Jobs = c.Output.Jobs
	}

	return cfg, nil
}
