package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags defines every configuration flag on fs.
//
// Flags:
//
//	-c/--config          json file path with configs
//	--profile            crypto profile (recommended, compatible, document)
//	--iterations         PBKDF2 iteration override
//	--load-mode          strict or lenient
//	--backend            file, sqlite, postgres or http
//	--dir                file backend root directory
//	-d/--dsn             database DSN
//	--remote-url         blobd base URL
//	--remote-token       blobd bearer token
//	--remote-timeout     blobd request timeout (e.g. "10s")
//	--remote-retries     blobd retry count
//	-a/--address         server address in format [host]:[port]
//	--request-timeout    server request timeout
//	--token-sign-key     server token signing key
//	--token-issuer       server token issuer name
//	--token-duration     server token lifetime
//	--save-workers       asynchronous save workers
//	--autosave-interval  autosave period, 0 disables
//	--log-level          zerolog level
//	--log-file           CLI log file
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "JSON config file path")

	fs.String("profile", "", "Crypto profile: recommended, compatible, document")
	fs.Int("iterations", 0, "PBKDF2 iteration override")
	fs.String("load-mode", "", "Document load mode: strict or lenient")

	fs.String("backend", "", "Storage backend: file, sqlite, postgres, http")
	fs.String("dir", "", "File backend root directory")
	fs.StringP("dsn", "d", "", "Database DSN")
	fs.String("remote-url", "", "Blob server base URL")
	fs.String("remote-token", "", "Blob server bearer token")
	fs.Duration("remote-timeout", 0, "Blob server request timeout (e.g., 10s)")
	fs.Int("remote-retries", 0, "Blob server retry count")

	fs.VarP(&NetAddress{}, "address", "a", "Net address host:port")
	fs.Duration("request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.String("token-sign-key", "", "Token signing key")
	fs.String("token-issuer", "", "Token issuer")
	fs.Duration("token-duration", 0, "Token duration (e.g., 1h, 30m)")

	fs.Int("save-workers", 0, "Asynchronous save workers")
	fs.Duration("autosave-interval", 0, "Autosave interval, 0 disables")

	fs.String("log-level", "", "Log level")
	fs.String("log-file", "", "Log file path")
}

// zeroableFlags copies fields whose zero value is meaningful from the flag
// config, so that e.g. --remote-retries 0 wins over the default.
var zeroableFlags = map[string]func(dst, src *StructuredConfig){
	"remote-retries": func(dst, src *StructuredConfig) {
		dst.Storage.HTTP.MaxRetries = src.Storage.HTTP.MaxRetries
	},
	"autosave-interval": func(dst, src *StructuredConfig) {
		dst.Workers.AutosaveInterval = src.Workers.AutosaveInterval
	},
}

// configFromFlags reads the flags defined by [RegisterFlags] back into a
// partial config. Flags missing from fs are left zero.
func configFromFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	r := flagReader{fs: fs}

	cfg := &StructuredConfig{
		App: App{
			LogLevel: r.str("log-level"),
			LogFile:  r.str("log-file"),
		},
		Crypto: Crypto{
			Profile:    r.str("profile"),
			Iterations: r.int("iterations"),
			LoadMode:   r.str("load-mode"),
		},
		Storage: Storage{
			Backend: r.str("backend"),
			Files:   Files{Dir: r.str("dir")},
			DB:      DB{DSN: r.str("dsn")},
			HTTP: HTTP{
				BaseURL:        r.str("remote-url"),
				Token:          r.str("remote-token"),
				RequestTimeout: r.duration("remote-timeout"),
				MaxRetries:     r.int("remote-retries"),
			},
		},
		Server: Server{
			HTTPAddress:    r.str("address"),
			RequestTimeout: r.duration("request-timeout"),
			TokenSignKey:   r.str("token-sign-key"),
			TokenIssuer:    r.str("token-issuer"),
			TokenDuration:  r.duration("token-duration"),
		},
		Workers: Workers{
			SaveWorkers:      r.int("save-workers"),
			AutosaveInterval: r.duration("autosave-interval"),
		},
		JSONFilePath: r.str("config"),
	}

	return cfg, r.err
}

// flagReader reads flag values by name, keeping the first error.
type flagReader struct {
	fs  *pflag.FlagSet
	err error
}

func (r *flagReader) lookup(name string) *pflag.Flag {
	return r.fs.Lookup(name)
}

func (r *flagReader) str(name string) string {
	f := r.lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

func (r *flagReader) int(name string) int {
	if r.lookup(name) == nil {
		return 0
	}
	v, err := r.fs.GetInt(name)
	if err != nil && r.err == nil {
		r.err = err
	}
	return v
}

func (r *flagReader) duration(name string) time.Duration {
	if r.lookup(name) == nil {
		return 0
	}
	v, err := r.fs.GetDuration(name)
	if err != nil && r.err == nil {
		r.err = err
	}
	return v
}

// String returns a canonical host:port string for a NetAddress.
// It returns "" when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
