// Package config loads the application settings from a TOML file. Values
// that are not present in the file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the config file looked up in the working directory
const DefaultFile = "arcademia.toml"

// maxChunk leaves room for the packet header inside a 64 KiB datagram
const maxChunk = 65000

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config holds all user settings
type Config struct {
	ModelsDir string   `toml:"models_dir"`
	AR        AR       `toml:"ar"`
	Speech    Speech   `toml:"speech"`
	Describe  Describe `toml:"describe"`
	Watch     Watch    `toml:"watch"`
	Log       Log      `toml:"log"`
}

// AR configures the UDP mesh streamer
type AR struct {
	IP    string `toml:"ip"`
	Port  int    `toml:"port"`
	Chunk int    `toml:"chunk"`
}

// Addr returns the host:port of the AR client
func (a AR) Addr() string {
	return net.JoinHostPort(a.IP, fmt.Sprint(a.Port))
}

// Speech configures the voice-over
type Speech struct {
	Rate    int     `toml:"rate"`
	Volume  float64 `toml:"volume"`
	Command string  `toml:"command"`
}

// Describe configures the generated descriptions
type Describe struct {
	Precision int `toml:"precision"`
}

// Watch configures the models folder watcher
type Watch struct {
	Debounce Duration `toml:"debounce"`
}

// Log configures logging
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as "500ms" in TOML
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		ModelsDir: "./cad_files",
		AR: AR{
			IP:    "192.168.0.10",
			Port:  51234,
			Chunk: 60000,
		},
		Speech: Speech{
			Rate:   150,
			Volume: 0.9,
		},
		Describe: Describe{Precision: 2},
		Watch:    Watch{Debounce: Duration{500 * time.Millisecond}},
		Log:      Log{Level: "info"},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration as TOML
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	switch {
	case c.ModelsDir == "":
		return fmt.Errorf("%w: models_dir must not be empty", ErrInvalid)
	case c.AR.Port < 1 || c.AR.Port > 65535:
		return fmt.Errorf("%w: ar.port %d out of range", ErrInvalid, c.AR.Port)
	case c.AR.Chunk <= 0 || c.AR.Chunk > maxChunk:
		return fmt.Errorf("%w: ar.chunk must be between 1 and %d", ErrInvalid, maxChunk)
	case c.Speech.Rate <= 0:
		return fmt.Errorf("%w: speech.rate must be positive", ErrInvalid)
	case c.Speech.Volume < 0 || c.Speech.Volume > 1:
		return fmt.Errorf("%w: speech.volume must be between 0 and 1", ErrInvalid)
	case c.Describe.Precision < 0 || c.Describe.Precision > 6:
		return fmt.Errorf("%w: describe.precision must be between 0 and 6", ErrInvalid)
	case c.Watch.Debounce.Duration < 0:
		return fmt.Errorf("%w: watch.debounce must not be negative", ErrInvalid)
	}
	return nil
}
