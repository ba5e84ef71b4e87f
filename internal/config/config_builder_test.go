package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secure-data/internal/crypto"
	"github.com/MKhiriev/go-secure-data/internal/document"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and no sources.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Nil(t, b.env)
	assert.Nil(t, b.flags)
	assert.Nil(t, b.json)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilderYieldsDefaults verifies that building with no
// sources returns the defaults, which are valid.
func TestBuild_EmptyBuilderYieldsDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	spec, err := cfg.Crypto.Spec()
	require.NoError(t, err)
	assert.Equal(t, crypto.RecommendedSpec(), spec)

	mode, err := cfg.Crypto.Mode()
	require.NoError(t, err)
	assert.Equal(t, document.Strict, mode)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_Priority verifies json < env < flags.
func TestBuild_Priority(t *testing.T) {
	b := newConfigBuilder()
	b.json = &StructuredConfig{
		App:     App{Version: "json"},
		Crypto:  Crypto{Profile: "document"},
		Workers: Workers{SaveWorkers: 1},
	}
	b.env = &StructuredConfig{
		App:    App{Version: "env"},
		Crypto: Crypto{Profile: "compatible"},
	}
	b.flags = &StructuredConfig{
		App: App{Version: "flags"},
	}

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flags", cfg.App.Version)
	assert.Equal(t, "compatible", cfg.Crypto.Profile)
	assert.Equal(t, 1, cfg.Workers.SaveWorkers)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

// ── withEnv / withFlags / withJSON ────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{"SECUREDATA_APP_VERSION": "env-version"})

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
	require.NotNil(t, b.env)
	assert.Equal(t, "env-version", b.env.App.Version)
}

func TestWithFlags_NilFlagSetIsSkipped(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
	assert.Nil(t, b.flags)
	assert.NoError(t, b.err)
}

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.env = &StructuredConfig{}

	b.withJSON()
	assert.Nil(t, b.json)
	assert.NoError(t, b.err)
}

// TestWithJSON_FlagPathWins verifies that --config beats SECUREDATA_CONFIG.
func TestWithJSON_FlagPathWins(t *testing.T) {
	envPath := writeTempJSONConfig(t, `{"app": {"version": "from-env-file"}}`)
	flagPath := writeTempJSONConfig(t, `{"app": {"version": "from-flag-file"}}`)

	b := newConfigBuilder()
	b.env = &StructuredConfig{JSONFilePath: envPath}
	b.flags = &StructuredConfig{JSONFilePath: flagPath}

	b.withJSON()
	require.NoError(t, b.err)
	assert.Equal(t, "from-flag-file", b.json.App.Version)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.env = &StructuredConfig{JSONFilePath: "/does/not/exist.json"}

	b.withJSON()
	assert.Error(t, b.err)
	assert.Nil(t, b.json)
}

// ── Load ──────────────────────────────────────────────────────────────────────

func TestLoad_EndToEnd(t *testing.T) {
	path := writeTempJSONConfig(t, `{"storage": {"backend": "sqlite", "db": {"dsn": "json.db"}}}`)
	setEnvVars(t, map[string]string{
		"SECUREDATA_CONFIG":      path,
		"SECUREDATA_APP_VERSION": "2.0.0",
	})

	cfg, err := Load(newFlagSet(t, "--dsn", "flag.db", "--autosave-interval", "5s"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "flag.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, 5*time.Second, cfg.Workers.AutosaveInterval)
}

// TestLoad_ExplicitZeroFlagsWin verifies that a flag set to zero overrides
// both the env and the defaults, while an unset flag does not.
func TestLoad_ExplicitZeroFlagsWin(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SECUREDATA_WORKERS_AUTOSAVE_INTERVAL": "1m",
	})

	cfg, err := Load(newFlagSet(t, "--remote-retries", "0", "--autosave-interval", "0s"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Storage.HTTP.MaxRetries)
	assert.Zero(t, cfg.Workers.AutosaveInterval)

	cfg, err = Load(newFlagSet(t))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Storage.HTTP.MaxRetries)
	assert.Equal(t, time.Minute, cfg.Workers.AutosaveInterval)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"defaults", func(*StructuredConfig) {}, nil},
		{"unknown profile", func(c *StructuredConfig) { c.Crypto.Profile = "fast" }, ErrInvalidCryptoConfigs},
		{"negative iterations", func(c *StructuredConfig) { c.Crypto.Iterations = -1 }, ErrInvalidCryptoConfigs},
		{"unknown load mode", func(c *StructuredConfig) { c.Crypto.LoadMode = "loose" }, ErrInvalidCryptoConfigs},
		{"unknown backend", func(c *StructuredConfig) { c.Storage.Backend = "s3" }, ErrInvalidStorageConfigs},
		{"file without dir", func(c *StructuredConfig) { c.Storage.Files.Dir = "" }, ErrInvalidStorageConfigs},
		{"sqlite without dsn", func(c *StructuredConfig) { c.Storage.Backend = BackendSQLite }, ErrInvalidStorageConfigs},
		{"postgres with dsn", func(c *StructuredConfig) {
			c.Storage.Backend = BackendPostgres
			c.Storage.DB.DSN = "postgres://localhost/db"
		}, nil},
		{"http relative url", func(c *StructuredConfig) {
			c.Storage.Backend = BackendHTTP
			c.Storage.HTTP.BaseURL = "/api"
		}, ErrInvalidStorageConfigs},
		{"http ok", func(c *StructuredConfig) {
			c.Storage.Backend = BackendHTTP
			c.Storage.HTTP.BaseURL = "http://localhost:8080"
		}, nil},
		{"http negative retries", func(c *StructuredConfig) {
			c.Storage.Backend = BackendHTTP
			c.Storage.HTTP.BaseURL = "http://localhost:8080"
			c.Storage.HTTP.MaxRetries = -1
		}, ErrInvalidStorageConfigs},
		{"no address", func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
		{"sign key without issuer", func(c *StructuredConfig) {
			c.Server.TokenSignKey = "k"
			c.Server.TokenIssuer = ""
		}, ErrInvalidServerConfigs},
		{"zero save workers", func(c *StructuredConfig) { c.Workers.SaveWorkers = 0 }, ErrInvalidWorkerConfigs},
		{"negative autosave", func(c *StructuredConfig) { c.Workers.AutosaveInterval = -time.Second }, ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCrypto_SpecIterationOverride(t *testing.T) {
	spec, err := Crypto{Profile: "document", Iterations: 4096}.Spec()
	require.NoError(t, err)
	assert.Equal(t, crypto.DocumentSpec().WithIterations(4096), spec)
}
