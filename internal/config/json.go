package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files, with
// durations accepted as strings ("30s") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
		LogFile  string `json:"log_file"`
	} `json:"app,omitempty"`

	Crypto struct {
		Profile    string `json:"profile"`
		Iterations int    `json:"iterations"`
		LoadMode   string `json:"load_mode"`
	} `json:"crypto,omitempty"`

	Storage struct {
		Backend string `json:"backend"`

		Files struct {
			Dir string `json:"dir"`
		} `json:"files,omitempty"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		HTTP struct {
			BaseURL        string   `json:"base_url"`
			Token          string   `json:"token"`
			RequestTimeout Duration `json:"request_timeout"`
			MaxRetries     int      `json:"max_retries"`
		} `json:"http,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
	} `json:"server,omitempty"`

	Workers struct {
		SaveWorkers      int      `json:"save_workers"`
		AutosaveInterval Duration `json:"autosave_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
			LogFile:  jsonCfg.App.LogFile,
		},
		Crypto: Crypto{
			Profile:    jsonCfg.Crypto.Profile,
			Iterations: jsonCfg.Crypto.Iterations,
			LoadMode:   jsonCfg.Crypto.LoadMode,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			Files:   Files{Dir: jsonCfg.Storage.Files.Dir},
			DB:      DB{DSN: jsonCfg.Storage.DB.DSN},
			HTTP: HTTP{
				BaseURL:        jsonCfg.Storage.HTTP.BaseURL,
				Token:          jsonCfg.Storage.HTTP.Token,
				RequestTimeout: time.Duration(jsonCfg.Storage.HTTP.RequestTimeout),
				MaxRetries:     jsonCfg.Storage.HTTP.MaxRetries,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			TokenSignKey:   jsonCfg.Server.TokenSignKey,
			TokenIssuer:    jsonCfg.Server.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.Server.TokenDuration),
		},
		Workers: Workers{
			SaveWorkers:      jsonCfg.Workers.SaveWorkers,
			AutosaveInterval: time.Duration(jsonCfg.Workers.AutosaveInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
