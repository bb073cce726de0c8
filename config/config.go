package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	wglconfig "github.com/domino14/word-golib/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDictionary     = "dictionary"
	ConfigCorpusEncoding = "corpus-encoding"
	ConfigSecrets        = "secrets"
	ConfigBatch          = "batch"
	ConfigBaseline       = "baseline"
	ConfigRandom         = "random"
	ConfigRandomLength   = "random-length"
	ConfigDisplay        = "display"
	ConfigClock          = "clock"
	ConfigMaxIncorrect   = "max-incorrect"
	ConfigSmallPoolSize  = "small-pool-size"
	ConfigPassStore      = "pass-store"
	ConfigSpoolDir       = "spool-dir"
	ConfigThreads        = "threads"
	ConfigResultsDB      = "results-db"
	ConfigNatsURL        = "nats-url"
	ConfigNatsSubject    = "nats-subject"
	ConfigHTTPAddr       = "http-addr"
	ConfigProgress       = "progress"
	ConfigDebug          = "debug"
	ConfigCPUProfile     = "cpu-profile"
	ConfigDataPath       = "data-path"
	ConfigFile           = "config"
)

// Config wraps a viper instance. Values come, in increasing priority, from
// defaults, a config file, a .env file / the environment (HANGMAN_ prefix),
// and command-line flags.
type Config struct {
	*viper.Viper

	// Args holds positional command-line arguments left after flag parsing.
	Args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDictionary, "")
	v.SetDefault(ConfigCorpusEncoding, "utf-8")
	v.SetDefault(ConfigSecrets, []string{})
	v.SetDefault(ConfigBatch, "")
	v.SetDefault(ConfigBaseline, false)
	v.SetDefault(ConfigRandom, 0)
	v.SetDefault(ConfigRandomLength, 0)
	v.SetDefault(ConfigDisplay, "")
	v.SetDefault(ConfigClock, false)
	v.SetDefault(ConfigMaxIncorrect, 5)
	v.SetDefault(ConfigSmallPoolSize, 9)
	v.SetDefault(ConfigPassStore, "memory")
	v.SetDefault(ConfigSpoolDir, os.TempDir())
	v.SetDefault(ConfigThreads, 1)
	v.SetDefault(ConfigResultsDB, "")
	v.SetDefault(ConfigNatsURL, "")
	v.SetDefault(ConfigNatsSubject, "hangman.results")
	v.SetDefault(ConfigHTTPAddr, "")
	v.SetDefault(ConfigProgress, false)
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigDataPath, "./data")
}

// DefaultConfig returns a config holding only the defaults. Tests use it.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("hangman", pflag.ContinueOnError)
	fs.StringP(ConfigDictionary, "f", "", "dictionary file name")
	fs.String(ConfigCorpusEncoding, "utf-8", "dictionary encoding: utf-8 or latin1")
	fs.StringSliceP(ConfigSecrets, "w", nil, "hangman word(s) to play")
	fs.String(ConfigBatch, "", "file of hangman words, one per line")
	fs.Bool(ConfigBaseline, false, "run against the pre-specified baseline words")
	fs.Int(ConfigRandom, 0, "play this many random dictionary words")
	fs.Int(ConfigRandomLength, 0, "restrict random words to this length")
	fs.String(ConfigDisplay, "", "output verbosity: none, simple, normal, chatty")
	fs.Bool(ConfigClock, false, "enable timing output")
	fs.Int(ConfigMaxIncorrect, 5, "number of wrong guesses allowed")
	fs.Int(ConfigSmallPoolSize, 9, "candidate count at or below which the small-pool rule applies")
	fs.String(ConfigPassStore, "memory", "where reduction passes are kept: memory, disk, auto")
	fs.String(ConfigSpoolDir, os.TempDir(), "directory for disk pass files")
	fs.Int(ConfigThreads, 1, "number of games to play concurrently")
	fs.String(ConfigResultsDB, "", "sqlite file to record game results in")
	fs.String(ConfigNatsURL, "", "NATS server to publish game results to")
	fs.String(ConfigNatsSubject, "hangman.results", "NATS subject for game results")
	fs.String(ConfigHTTPAddr, "", "serve the HTTP API on this address")
	fs.Bool(ConfigProgress, false, "show a progress bar for batch runs")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigDataPath, "./data", "directory holding data files")
	fs.String(ConfigFile, "", "optional config file (yaml, toml, json)")
	return fs
}

// Load reads configuration from args, the environment and optional files.
func (c *Config) Load(args []string) error {
	v := viper.New()
	setDefaults(v)

	// A missing .env is the common case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	v.SetEnvPrefix("hangman")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	if cf := v.GetString(ConfigFile); cf != "" {
		v.SetConfigFile(cf)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	c.Viper = v
	c.Args = fs.Args()
	return nil
}

// AdjustRelativePaths resolves relative data paths against basedir.
func (c *Config) AdjustRelativePaths(basedir string) {
	for _, key := range []string{ConfigDataPath} {
		p := c.GetString(key)
		if p != "" && !filepath.IsAbs(p) {
			c.Set(key, filepath.Join(basedir, p))
		}
	}
}

// SanitizedSettings returns the settings map minus anything credential-like.
func (c *Config) SanitizedSettings() map[string]any {
	all := c.AllSettings()
	if u, ok := all[ConfigNatsURL].(string); ok && strings.Contains(u, "@") {
		all[ConfigNatsURL] = "<redacted>"
	}
	return all
}

// WGLConfig returns the word-golib configuration derived from this one.
func (c *Config) WGLConfig() *wglconfig.Config {
	return &wglconfig.Config{DataPath: c.GetString(ConfigDataPath)}
}
