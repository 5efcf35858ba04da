package configloader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/yaklabco/gotws/pkg/config"
)

// envVarPrefix is the prefix for all gotws environment variables.
const envVarPrefix = "GOTWS_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
	envTypeOption
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
// Behavior switches are added from config.Describe in init.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"BASELINE":         {field: "baseline.source", typ: envTypeString, description: "Baseline source: git, disk, file, or none"},
	"BASELINE_REF":     {field: "baseline.ref", typ: envTypeString, description: "Git revision used as the baseline"},
	"BASELINE_FILE":    {field: "baseline.file", typ: envTypeString, description: "File used as the baseline"},
	"DRY_RUN":          {field: "dry_run", typ: envTypeBool, description: "Dry-run mode: true or false"},
	"JOBS":             {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FORMAT":           {field: "format", typ: envTypeString, description: "Output format: text, json, sarif, or diff"},
	"BACKUPS_ENABLED":  {field: "backups.enabled", typ: envTypeBool, description: "Enable backups when trimming: true or false"},
	"BACKUPS_MODE":     {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	"IGNORE":           {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"NO_BACKUPS":       {field: "no_backups", typ: envTypeBool, description: "Disable backups: true or false"},
	"INCLUDE_VENDORED": {field: "include_vendored", typ: envTypeBool, description: "Process vendored and generated files"},
}

func init() {
	for _, info := range config.Describe() {
		envMappings[strings.ToUpper(info.Key)] = envMapping{
			field:       info.Key,
			typ:         envTypeOption,
			description: info.Description,
		}
	}
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOTWS_ (e.g., GOTWS_TRIM_ON_SAVE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range sortedEnvSuffixes() {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool, envTypeOption:
		b, err := cast.ToBoolE(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		if mapping.typ == envTypeOption {
			cfg.SetOption(mapping.field, b)
			return nil
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := cast.ToIntE(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "baseline.source":
		cfg.Baseline.Source = config.BaselineSource(value)
	case "baseline.ref":
		cfg.Baseline.Ref = value
	case "baseline.file":
		cfg.Baseline.File = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "dry_run":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	case "no_backups":
		cfg.NoBackups = value
	case "include_vendored":
		cfg.IncludeVendored = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
