// Package provider provides multi-source configuration loading with precedence.
package provider

import (
	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-labs/faultline/pkg/config"
)

const delim = "."

// ErrNoConfig is returned by a source that has nothing to contribute.
var ErrNoConfig = errors.New("no configuration available")

// Source represents a configuration source (defaults, file, env, flags).
type Source interface {
	// Name returns the source name for debugging/logging.
	Name() string

	// Load merges the source into k.
	// Returns ErrNoConfig if no configuration is available.
	Load(k *koanf.Koanf) error
}

// Provider loads configuration from multiple sources with precedence.
// Precedence order (highest to lowest):
// 1. CLI Flags
// 2. Environment Variables
// 3. Project Config
// 4. Global Config
// 5. Defaults
type Provider struct {
	// sources is the list of configuration sources in precedence order.
	sources []Source

	cache *Cache
}

// NewProvider creates a new Provider with the given sources.
// Sources should be provided in precedence order (highest priority first).
func NewProvider(sources ...Source) *Provider {
	return &Provider{
		sources: sources,
		cache:   NewCache(),
	}
}

// Load merges every source over the defaults, validates and caches the result.
func (p *Provider) Load() (*config.Config, error) {
	if cfg := p.cache.Get(); cfg != nil {
		return cfg, nil
	}

	k := koanf.New(delim)

	if err := NewDefaultsSource().Load(k); err != nil {
		return nil, err
	}

	// Lowest priority first so later loads override earlier ones.
	for i := len(p.sources) - 1; i >= 0; i-- {
		source := p.sources[i]

		if err := source.Load(k); err != nil {
			if errors.Is(err, ErrNoConfig) {
				continue
			}

			return nil, errors.Wrapf(err, "loading config from %s", source.Name())
		}
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	p.cache.Set(cfg)

	return cfg, nil
}

// Reload clears the cache and loads configuration again.
func (p *Provider) Reload() (*config.Config, error) {
	p.cache.Clear()

	return p.Load()
}

// Sources returns the list of sources in precedence order.
func (p *Provider) Sources() []Source {
	return p.sources
}

// Files returns the paths of the configuration files that exist, highest precedence first.
func (p *Provider) Files() []string {
	var paths []string

	for _, source := range p.sources {
		if fs, ok := source.(*FileSource); ok && fs.IsAvailable() {
			paths = append(paths, fs.Path())
		}
	}

	return paths
}

func decode(k *koanf.Koanf) (*config.Config, error) {
	cfg := &config.Config{}

	err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Metadata:         nil,
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}

	return cfg, nil
}

// NewDefaultProvider creates a Provider with standard sources.
// Sources in precedence order:
// 1. Flags (highest)
// 2. Environment
// 3. Project Config (workDir/.faultline.toml)
// 4. Global Config
// 5. Defaults (lowest, always merged in)
func NewDefaultProvider(workDir string, flags map[string]any) *Provider {
	return NewProvider(
		NewFlagSource(flags),
		NewEnvSource(),
		NewProjectFileSource(workDir),
		NewGlobalFileSource(),
	)
}
