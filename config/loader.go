package config

import (
	"fmt"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/skyhubkit/logger"
)

// EnvPrefix is prepended to every environment variable the loader reads:
// api.api_key is read from SKYHUB_API_API_KEY.
const EnvPrefix = "SKYHUB"

// FileSystem abstracts the file lookups of the loader.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem is the FileSystem backed by the OS.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file into the process environment. Variables that
// are already set keep their value.
func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds the loader's dependencies and overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // explicit YAML path, skips the search
	EnvFile    string // explicit .env path, skips the search
	EnvPrefix  string
}

// LoaderOption customizes LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets the filesystem used to find and load files.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix replaces EnvPrefix. An empty prefix reads unprefixed
// variables such as API_API_KEY.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// Resolver finds the config and env files of a client.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles are the files a load reads. Empty means none was found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns the explicit paths in opts, searching for the ones
// left empty. Lookups are relative to the working directory, first in ./
// then in ./config, and a file named after the client wins over skyhub.yml.
func (r *Resolver) ResolveFiles(name string, opts LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = r.first(configCandidates(name))
	}
	if files.EnvFile == "" {
		files.EnvFile = r.first(envCandidates(name))
	}
	return files
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

var searchDirs = []string{".", "config"}

func configCandidates(name string) []string {
	var paths []string
	for _, dir := range searchDirs {
		for _, base := range []string{name, "skyhub"} {
			if base == "" {
				continue
			}
			paths = append(paths, path.Join(dir, base+".yml"), path.Join(dir, base+".yaml"))
		}
	}
	return paths
}

func envCandidates(name string) []string {
	var paths []string
	for _, dir := range searchDirs {
		if name != "" {
			paths = append(paths, path.Join(dir, ".env."+name))
		}
		paths = append(paths, path.Join(dir, ".env"))
	}
	return paths
}

// LoadConfig fills cfg for the client called name. Sources in increasing
// priority: the YAML file, then the .env file, then the prefixed process
// environment. Only keys declared by cfg's mapstructure tags are read from
// the environment.
func LoadConfig(name string, cfg any, opts ...LoaderOption) error {
	lc := LoaderConfig{EnvPrefix: EnvPrefix}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(name, lc)
	log := logger.Get(logger.ComponentConfig)

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			log.Warn("failed to load config file",
				logger.ErrorFields("read_config", err), logger.Fields("file", files.ConfigFile))
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load env file",
				logger.ErrorFields("load_env", err), logger.Fields("file", files.EnvFile))
		}
	}

	v.SetEnvPrefix(lc.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range settingKeys(reflect.TypeOf(cfg), "") {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for %s: %w", name, err)
	}
	return nil
}

// settingKeys lists the dotted keys of t's scalar fields as named by their
// mapstructure tags. Squashed embedded structs share their parent's level.
// Maps are only read from files.
func settingKeys(t reflect.Type, prefix string) []string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, flags, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && strings.Contains(flags, "squash") {
			keys = append(keys, settingKeys(ft, prefix)...)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		switch ft.Kind() {
		case reflect.Struct:
			keys = append(keys, settingKeys(ft, key)...)
		case reflect.Map:
		default:
			keys = append(keys, key)
		}
	}
	return keys
}
