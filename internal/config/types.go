// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
)

const (
	// LogLevelDebug logs every namespace rewrite and applied fragment.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn only logs recoverable problems.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError only logs rejected content.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidSeparator is the sentinel error wrapped by InvalidSeparatorError.
	ErrInvalidSeparator = errors.New("invalid separator")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidSeparatorError is returned when a separator is not exactly one
	// character or both separators are the same.
	InvalidSeparatorError struct {
		Field  string
		Value  string
		Reason string
	}

	// InvalidConfigError collects every field error of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ContentDir is the content root holding loading_order.cue and one
		// folder per namespace.
		ContentDir string `json:"content_dir" mapstructure:"content_dir"`
		// Vanilla describes the built-in namespace.
		Vanilla VanillaConfig `json:"vanilla" mapstructure:"vanilla"`
		// Separators configures how names are split.
		Separators SeparatorsConfig `json:"separators" mapstructure:"separators"`
		// RemoveMarker prefixes fragment entries that retract a value.
		RemoveMarker string `json:"remove_marker" mapstructure:"remove_marker"`
		// Loading configures loading-order reconciliation and aggregation.
		Loading LoadingConfig `json:"loading" mapstructure:"loading"`
		// LogLevel sets the CLI logger level.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
	}

	// VanillaConfig describes the built-in namespace.
	VanillaConfig struct {
		Namespace namespace.Name `json:"namespace" mapstructure:"namespace"`
		Version   string         `json:"version" mapstructure:"version"`
	}

	// SeparatorsConfig holds single-character separators.
	SeparatorsConfig struct {
		// Namespace separates a namespace from a local name ("vanilla:iron").
		Namespace string `json:"namespace" mapstructure:"namespace"`
		// Layer separates tree layers ("weapon.melee").
		Layer string `json:"layer" mapstructure:"layer"`
	}

	// LoadingConfig controls how namespaces are ordered and loaded.
	LoadingConfig struct {
		// DefaultEnabled is the enabled state given to newly found namespaces.
		DefaultEnabled bool `json:"default_enabled" mapstructure:"default_enabled"`
		// VanillaInvertDefault gives a re-added vanilla entry the opposite of
		// DefaultEnabled.
		VanillaInvertDefault bool `json:"vanilla_invert_default" mapstructure:"vanilla_invert_default"`
		// DefaultToVanilla qualifies unnamespaced values with the vanilla
		// namespace instead of the namespace being loaded.
		DefaultToVanilla bool `json:"default_to_vanilla" mapstructure:"default_to_vanilla"`
		// SkipInvalidDependencies leaves namespaces with unmet dependencies out
		// of aggregation.
		SkipInvalidDependencies bool `json:"skip_invalid_dependencies" mapstructure:"skip_invalid_dependencies"`
	}
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts the LogLevel for charmbracelet/log. Unknown values map to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Error implements the error interface for InvalidSeparatorError.
func (e *InvalidSeparatorError) Error() string {
	return fmt.Sprintf("invalid %s separator %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidSeparator for errors.Is() compatibility.
func (e *InvalidSeparatorError) Unwrap() error { return ErrInvalidSeparator }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is()
// matches both.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// NamespaceSeparator returns the namespace separator rune.
func (s SeparatorsConfig) NamespaceSeparator() rune {
	r, _ := utf8.DecodeRuneInString(s.Namespace)
	return r
}

// LayerSeparator returns the tree layer separator rune.
func (s SeparatorsConfig) LayerSeparator() rune {
	r, _ := utf8.DecodeRuneInString(s.Layer)
	return r
}

// IsValid returns whether both separators are single, distinct characters.
func (s SeparatorsConfig) IsValid() (bool, []error) {
	var errs []error
	if utf8.RuneCountInString(s.Namespace) != 1 {
		errs = append(errs, &InvalidSeparatorError{Field: "namespace", Value: s.Namespace, Reason: "must be one character"})
	}
	if utf8.RuneCountInString(s.Layer) != 1 {
		errs = append(errs, &InvalidSeparatorError{Field: "layer", Value: s.Layer, Reason: "must be one character"})
	}
	if len(errs) == 0 && s.Namespace == s.Layer {
		errs = append(errs, &InvalidSeparatorError{Field: "layer", Value: s.Layer, Reason: "must differ from the namespace separator"})
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// IsValid returns whether all fields of the Config are valid.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Vanilla.Namespace.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Separators.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if strings.TrimSpace(c.RemoveMarker) == "" {
		errs = append(errs, errors.New("remove_marker must not be blank"))
	}
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ContentDir: "content",
		Vanilla: VanillaConfig{
			Namespace: "vanilla",
			Version:   "1.0.0",
		},
		Separators: SeparatorsConfig{
			Namespace: string(namespace.DefaultSeparator),
			Layer:     ".",
		},
		RemoveMarker: "-",
		Loading: LoadingConfig{
			DefaultEnabled:          true,
			VanillaInvertDefault:    false,
			DefaultToVanilla:        false,
			SkipInvalidDependencies: true,
		},
		LogLevel: LogLevelInfo,
	}
}
