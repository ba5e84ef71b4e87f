package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/spf13/pflag"
)

// configBuilder collects partial configs from each source. build merges them
// as json < env < flags and fills whatever is still zero from defaultConfig.
type configBuilder struct {
	env   *StructuredConfig
	flags *StructuredConfig
	json  *StructuredConfig
	err   error

	// changed names the flags given on the command line
	changed []string
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range []*StructuredConfig{b.json, b.env, b.flags} {
		if cfg == nil {
			continue
		}
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := mergo.Merge(config, defaultConfig()); err != nil {
		return nil, fmt.Errorf("error merging default configs: %w", err)
	}

	// mergo skips zero values, so an explicit zero flag is copied last
	if b.flags != nil {
		for _, name := range b.changed {
			if copyField, ok := zeroableFlags[name]; ok {
				copyField(config, b.flags)
			}
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.env = envCfg
	return b
}

func (b *configBuilder) withFlags(fs *pflag.FlagSet) *configBuilder {
	if fs == nil {
		return b
	}

	flagsCfg, err := configFromFlags(fs)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.flags = flagsCfg
	fs.Visit(func(f *pflag.Flag) {
		b.changed = append(b.changed, f.Name)
	})
	return b
}

// withJSON loads the file named by the flags, or failing that by the env.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range []*StructuredConfig{b.env, b.flags} {
		if cfg != nil && cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" || b.err != nil {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.json = jsonCfg

	return b
}
