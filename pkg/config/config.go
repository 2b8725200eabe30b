// Package config loads jbsync's layered configuration: embedded
// defaults, then an optional jbsync.toml, then JBSYNC_* environment
// overrides. The resulting Config is built once at startup and treated
// as immutable afterwards.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	jberrors "github.com/ideutil/jbsync/pkg/errors"
)

// ConfigFileName is looked up in the working directory when no
// explicit --config path is given.
const ConfigFileName = "jbsync.toml"

// envPrefix namespaces environment overrides, e.g. JBSYNC_BACKUP_KEEP.
const envPrefix = "JBSYNC_"

// Config is everything a run needs to know.
type Config struct {
	// JetBrainsDir overrides the user JetBrains directory; empty means
	// the platform default.
	JetBrainsDir string `koanf:"jetbrains_dir" toml:"jetbrains_dir"`

	// BackupDir is the backup tree for overwritten vmoptions files.
	BackupDir string `koanf:"backup_dir" toml:"backup_dir"`

	// BackupKeep is the retention count per target.
	BackupKeep int `koanf:"backup_keep" toml:"backup_keep"`

	// ArchiveDir is the license archive directory.
	ArchiveDir string `koanf:"archive_dir" toml:"archive_dir"`

	// ToolboxPrefixes is the closed set of preset-variable keys
	// preserved across rewrites.
	ToolboxPrefixes []string `koanf:"toolbox_prefixes" toml:"toolbox_prefixes"`

	// Products maps version-stripped product directory names to their
	// vmoptions file names.
	Products map[string]string `koanf:"products" toml:"products"`
}

// Load builds the configuration. configPath may be empty, in which
// case ./jbsync.toml is used when present.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, jberrors.Wrap(err, jberrors.ErrConfigParse, "loading built-in defaults")
	}

	// 2. User config file
	path := configPath
	if path == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			path = ConfigFileName
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, jberrors.Wrapf(err, jberrors.ErrConfigLoad, "loading %s", path)
		}
	}

	// 3. Environment overrides for the scalar keys
	if err := k.Load(env.Provider(envPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, envPrefix))
	}), nil); err != nil {
		return nil, jberrors.Wrap(err, jberrors.ErrConfigLoad, "loading environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, jberrors.Wrap(err, jberrors.ErrConfigParse, "unmarshaling configuration")
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		// The embedded defaults are compiled in; failing to parse them
		// is a build defect, not a runtime condition.
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}
