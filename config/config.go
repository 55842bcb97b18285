// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"

	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/trace"
)

const (
	defaultContinuousProfilerFrequency = 1 * time.Minute
	defaultContinuousProfilerMaxFiles  = 10
)

type Config struct {
	// Server
	HTTPHost           string   `json:"httpHost"`
	HTTPPort           uint16   `json:"httpPort"`
	HTTPAllowedOrigins []string `json:"httpAllowedOrigins"`

	// Storage
	DataDir string        `json:"dataDir"`
	Pebble  pebble.Config `json:"pebble"`

	// Execution
	AuthVerificationCores int `json:"authVerificationCores"`
	RecentResultsSize     int `json:"recentResultsSize"`
	StreamingBacklogSize  int `json:"streamingBacklogSize"`

	// Tracing
	TraceEnabled    bool    `json:"traceEnabled"`
	TraceSampleRate float64 `json:"traceSampleRate"`
	TraceEndpoint   string  `json:"traceEndpoint"`

	// Profiling
	ContinuousProfilerDir string `json:"continuousProfilerDir"`

	// Logging
	LogDir          string        `json:"logDir"`
	LogLevel        logging.Level `json:"logLevel"`
	LogDisplayLevel logging.Level `json:"logDisplayLevel"`
	LogFormat       string        `json:"logFormat"`
	LogMaxSize      int           `json:"logMaxSize"` // megabytes
	LogMaxFiles     int           `json:"logMaxFiles"`
}

func New(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the config stored at [path]. An empty [path] yields the
// defaults.
func Load(path string) (*Config, error) {
	if len(path) == 0 {
		return New(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(b)
}

func (c *Config) setDefault() {
	c.HTTPHost = "127.0.0.1"
	c.HTTPPort = 9650
	c.HTTPAllowedOrigins = []string{"*"}
	c.DataDir = ".countervm"
	c.Pebble = pebble.NewDefaultConfig()
	c.AuthVerificationCores = runtime.NumCPU()
	c.RecentResultsSize = 1_024
	c.StreamingBacklogSize = 1_024
	c.TraceSampleRate = 0.1
	c.TraceEndpoint = trace.DefaultEndpoint
	c.LogLevel = logging.Info
	c.LogDisplayLevel = logging.Info
	c.LogFormat = "auto"
	c.LogMaxSize = 8
	c.LogMaxFiles = 7
}

func (c *Config) Verify() error {
	if c.AuthVerificationCores < 1 {
		return fmt.Errorf("%w: authVerificationCores=%d", ErrInvalidValue, c.AuthVerificationCores)
	}
	if c.RecentResultsSize < 1 {
		return fmt.Errorf("%w: recentResultsSize=%d", ErrInvalidValue, c.RecentResultsSize)
	}
	if c.StreamingBacklogSize < 1 {
		return fmt.Errorf("%w: streamingBacklogSize=%d", ErrInvalidValue, c.StreamingBacklogSize)
	}
	if _, err := logging.ToFormat(c.LogFormat, os.Stderr.Fd()); err != nil {
		return fmt.Errorf("%w: logFormat=%s", err, c.LogFormat)
	}
	return nil
}

func (c *Config) GetHTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

func (c *Config) GetLogDir() string {
	if len(c.LogDir) > 0 {
		return c.LogDir
	}
	return fmt.Sprintf("%s/logs", c.DataDir)
}

// GetLoggingConfig returns the configuration for every logger of the node.
func (c *Config) GetLoggingConfig() (logging.Config, error) {
	format, err := logging.ToFormat(c.LogFormat, os.Stderr.Fd())
	if err != nil {
		return logging.Config{}, err
	}
	return logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   c.LogMaxSize,
			MaxFiles:  c.LogMaxFiles,
			Directory: c.GetLogDir(),
		},
		LogLevel:     c.LogLevel,
		DisplayLevel: c.LogDisplayLevel,
		LogFormat:    format,
		MsgPrefix:    consts.Name,
	}, nil
}

func (c *Config) GetTraceConfig() *trace.Config {
	return &trace.Config{
		Enabled:         c.TraceEnabled,
		TraceSampleRate: c.TraceSampleRate,
		Endpoint:        c.TraceEndpoint,
		AppName:         consts.Name,
		Agent:           consts.Name,
		Version:         consts.Version.String(),
	}
}

func (c *Config) GetContinuousProfilerConfig() *profiler.Config {
	if len(c.ContinuousProfilerDir) == 0 {
		return &profiler.Config{Enabled: false}
	}
	return &profiler.Config{
		Enabled:     true,
		Dir:         c.ContinuousProfilerDir,
		Freq:        defaultContinuousProfilerFrequency,
		MaxNumFiles: defaultContinuousProfilerMaxFiles,
	}
}
