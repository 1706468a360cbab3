package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/mosaicnetworks/gossamer/src/broadcast"
	"github.com/mosaicnetworks/gossamer/src/common"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default configuration values.
const (
	DefaultLogLevel       = "info"
	DefaultLogFile        = ""
	DefaultGossipInterval = broadcast.DefaultGossipInterval
	DefaultRedundancy     = broadcast.DefaultRedundancy
	DefaultSeed           = 0
	DefaultServiceAddr    = ""
)

// Config contains all the configuration properties of a Gossamer process.
type Config struct {
	// DataDir is the directory searched for a configuration file.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, receives a copy of every log entry.
	LogFile string `mapstructure:"log-file"`

	// GossipInterval is the period of the gossip timer of broadcast nodes.
	GossipInterval time.Duration `mapstructure:"gossip-interval"`

	// Redundancy is the percentage of new values added, as a sample of values
	// a neighbor already holds, to each gossip of a broadcast node.
	Redundancy int `mapstructure:"redundancy"`

	// Seed seeds the random sampling of broadcast nodes. Zero uses the clock.
	Seed int64 `mapstructure:"seed"`

	// ServiceAddr is the address:port of the optional HTTP service. The
	// service is disabled when empty.
	ServiceAddr string `mapstructure:"service-listen"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:        DefaultDataDir(),
		LogLevel:       DefaultLogLevel,
		LogFile:        DefaultLogFile,
		GossipInterval: DefaultGossipInterval,
		Redundancy:     DefaultRedundancy,
		Seed:           DefaultSeed,
		ServiceAddr:    DefaultServiceAddr,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// Broadcast returns the configuration of broadcast nodes.
func (c *Config) Broadcast() *broadcast.Config {
	conf := broadcast.NewDefaultConfig()
	conf.GossipInterval = c.GossipInterval
	conf.Redundancy = c.Redundancy
	conf.Seed = c.Seed
	return conf
}

// Logger returns a formatted logrus Entry, with prefix set to "gossamer". It
// never writes to standard output.
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Out = os.Stderr
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			c.logger.Hooks.Add(lfshook.NewHook(
				c.LogFile,
				&logrus.JSONFormatter{},
			))
		}
	}
	return c.logger.WithField("prefix", "gossamer")
}

// DefaultDataDir return the default directory name for top-level Gossamer
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Gossamer")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Gossamer")
		} else {
			return filepath.Join(home, ".gossamer")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
