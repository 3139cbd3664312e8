package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xolan/jira-worklog-import/internal/osutil"
)

// Environment variable names
const (
	EnvDateFormat   = "DATE_FORMAT"
	EnvDateTimezone = "DATE_TIMEZONE"
	EnvCSVDelimiter = "CSV_DELIMITER"
	EnvOffset       = "OFFSET"
	EnvLimit        = "LIMIT"
	EnvDebug        = "DEBUG"
	EnvDryRun       = "DRY_RUN"
	EnvLogFile      = "LOG_FILE"
	EnvOffsetPolicy = "OFFSET_POLICY"
	EnvJiraHost     = "JIRA_HOST"
	EnvJiraUser     = "JIRA_USER"
	EnvJiraPass     = "JIRA_PASS"
)

// LookupFunc retrieves an environment value by name
type LookupFunc func(key string) (string, bool)

// EnvValue is an interpreted environment value
type EnvValue struct {
	Raw   string
	Str   string
	Bool  bool
	IsSet bool // false for unset, null, false and empty values
}

// ParseEnvValue interprets raw the way dotenv-driven PHP tools do:
// "true"/"(true)" and "false"/"(false)" are booleans, "empty"/"(empty)" is the
// empty string, "null"/"(null)" is no value, and surrounding double quotes are
// removed. Only values that are set and truthy override defaults.
func ParseEnvValue(raw string) EnvValue {
	v := EnvValue{Raw: raw}

	switch strings.ToLower(raw) {
	case "true", "(true)":
		v.Str, v.Bool, v.IsSet = "true", true, true
		return v
	case "false", "(false)", "empty", "(empty)", "null", "(null)", "":
		return v
	}

	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		raw = raw[1 : len(raw)-1]
	}
	v.Str = raw
	v.IsSet = raw != "" && raw != "0"
	v.Bool = v.IsSet
	return v
}

// ApplyEnv overrides cfg with the environment values found through lookup
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	get := func(key string) (EnvValue, bool) {
		raw, ok := lookup(key)
		if !ok {
			return EnvValue{}, false
		}
		v := ParseEnvValue(raw)
		return v, v.IsSet
	}

	textVars := []struct {
		key    string
		target *string
	}{
		{EnvDateFormat, &cfg.DateFormat},
		{EnvDateTimezone, &cfg.DateTimezone},
		{EnvCSVDelimiter, &cfg.CSVDelimiter},
		{EnvLogFile, &cfg.LogFile},
		{EnvOffsetPolicy, &cfg.OffsetPolicy},
		{EnvJiraHost, &cfg.Jira.Host},
		{EnvJiraUser, &cfg.Jira.User},
		{EnvJiraPass, &cfg.Jira.Token},
	}
	for _, s := range textVars {
		if v, ok := get(s.key); ok {
			*s.target = v.Str
		}
	}

	intVars := []struct {
		key    string
		target *int
	}{
		{EnvOffset, &cfg.Offset},
		{EnvLimit, &cfg.Limit},
	}
	for _, i := range intVars {
		v, ok := get(i.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v.Str)
		if err != nil {
			return fmt.Errorf("invalid %s %q: must be a whole number", i.key, v.Raw)
		}
		*i.target = n
	}

	if raw, ok := lookup(EnvDebug); ok {
		cfg.Debug = ParseEnvValue(raw).Bool
	}
	if raw, ok := lookup(EnvDryRun); ok {
		cfg.DryRun = ParseEnvValue(raw).Bool
	}

	return nil
}

// ReadEnvFile reads a dotenv file. A missing file yields an empty environment.
func ReadEnvFile(path string) (osutil.MapEnv, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return osutil.MapEnv{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return osutil.MapEnv(values), nil
}

// ChainLookup returns a lookup that consults each source in order.
// Process environment variables are passed first so they win over .env values.
func ChainLookup(sources ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, src := range sources {
			if v, ok := src(key); ok {
				return v, true
			}
		}
		return "", false
	}
}

// Resolve builds the effective configuration: defaults, then the TOML file at
// configPath (if present), then the dotenv file at envPath and the process
// environment. Flags are applied by the caller on top of the result.
func Resolve(configPath, envPath string) (Config, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		loaded, err := LoadOrDefault(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	dotenv, err := ReadEnvFile(envPath)
	if err != nil {
		return cfg, err
	}

	lookup := ChainLookup(osutil.Current.LookupEnv, dotenv.LookupEnv)
	if err := ApplyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	cfg.Normalize()
	return cfg, cfg.Validate()
}
