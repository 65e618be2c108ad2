package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"servelatest/internal/xtime"
)

// LoadConfig reads a TOML config file. A missing file is not an error: the
// server is meant to run with no setup at all, so defaults apply.
func LoadConfig(cfgPath string) (Config, error) {
	cfg := defaultConfig()

	file, err := os.Open(cfgPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     slog.LevelInfo,
			Format:    LogFormatText,
			AddSource: false,
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
		Watch: WatchConfig{
			Dir:      ".",
			Prefix:   "index",
			Suffix:   ".html",
			Interval: xtime.Duration(5 * time.Second),
		},
	}
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Watch  WatchConfig  `toml:"watch"`
}

func (c Config) String() string {
	return fmt.Sprintf("Log: %s\nServer: %s\nWatch: %s",
		c.Log,
		c.Server,
		c.Watch,
	)
}

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    LogFormat  `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

func (c LogConfig) String() string {
	return fmt.Sprintf("\n Level: %s\n Format: %s\n AddSource: %t",
		c.Level,
		c.Format,
		c.AddSource,
	)
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	QR   bool   `toml:"qr"`
}

func (c ServerConfig) String() string {
	return fmt.Sprintf("\n Addr: %s\n QR: %t",
		c.Addr,
		c.QR,
	)
}

// URL returns the listen address as a browsable URL. A wildcard host turns
// into localhost, which is where a developer will actually open it.
func (c ServerConfig) URL() string {
	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return "http://" + c.Addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

type WatchConfig struct {
	Dir      string         `toml:"dir"`
	Prefix   string         `toml:"prefix"`
	Suffix   string         `toml:"suffix"`
	Interval xtime.Duration `toml:"interval"`
}

func (c WatchConfig) String() string {
	return fmt.Sprintf("\n Dir: %s\n Prefix: %s\n Suffix: %s\n Interval: %s",
		c.Dir,
		c.Prefix,
		c.Suffix,
		c.Interval,
	)
}

// Pattern returns the versioned filename pattern the watcher selects by.
func (c WatchConfig) Pattern() Pattern {
	return Pattern{Prefix: c.Prefix, Suffix: c.Suffix}
}
