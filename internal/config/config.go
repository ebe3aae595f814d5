// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file, and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Runtime modes. In development mode edits are written back to the data file
// and the save endpoint is mounted; in release mode edits stay in memory only.
const (
	ModeDevelopment = "development"
	ModeRelease     = "release"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"addr"`

	// Mode is the runtime mode, "development" or "release".
	Mode string `json:"mode"`

	// DataFile is the path to the bundled portfolio snapshot. It seeds the
	// content store at startup and receives write-backs in development mode.
	DataFile string `json:"data_file"`

	// CredentialsDB is the path to the SQLite file holding the admin
	// credential record.
	CredentialsDB string `json:"credentials_db"`

	// StaticDir is the directory with the built frontend, served at /.
	// Empty disables static serving.
	StaticDir string `json:"static_dir"`

	// FlushDelay is the debounce quiet period before edits are persisted.
	FlushDelay time.Duration `json:"-"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.Mode, "m", ModeDevelopment, "runtime mode: development or release")
	flag.StringVar(&options.DataFile, "d", "data/portfolio.json", "path to portfolio data file")
	flag.StringVar(&options.CredentialsDB, "s", "data/credentials.db", "path to credentials database")
	flag.StringVar(&options.StaticDir, "static", "", "directory with the built frontend (optional)")
	flag.DurationVar(&options.FlushDelay, "flush", 500*time.Millisecond, "debounce delay before persisting edits")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file, and
// environment variables to set configuration values. It returns a pointer to
// the Options struct containing the parsed configuration values.
func Parse() *Options {
	// Pick up a local .env before reading the environment.
	_ = godotenv.Load()

	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	// Environment variables win over flags and the config file
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if mode := os.Getenv("APP_MODE"); mode != "" {
		options.Mode = mode
	}
	if dataFile := os.Getenv("DATA_FILE"); dataFile != "" {
		options.DataFile = dataFile
	}
	if credsDB := os.Getenv("CREDENTIALS_DB"); credsDB != "" {
		options.CredentialsDB = credsDB
	}
	if staticDir := os.Getenv("STATIC_DIR"); staticDir != "" {
		options.StaticDir = staticDir
	}
	if delay := os.Getenv("FLUSH_DELAY"); delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			log.Fatalf("invalid FLUSH_DELAY: %v", err)
		}
		options.FlushDelay = d
	}

	return options
}

// Dev reports whether the server runs in development mode.
func (o *Options) Dev() bool {
	return o.Mode == ModeDevelopment
}
