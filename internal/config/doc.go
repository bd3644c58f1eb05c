// SPDX-License-Identifier: MPL-2.0

// Package config handles contentctl settings using Viper with CUE as the file format.
//
// Settings are loaded from config.cue in the platform config directory
// (~/.config/contentctl on Linux, ~/Library/Application Support/contentctl on
// macOS, %APPDATA%\contentctl on Windows), then from ./config.cue, or from an
// explicit path. Files are validated against the embedded #Config schema
// (config_schema.cue) and CONTENTCTL_* environment variables override any
// field, with dots replaced by underscores (CONTENTCTL_LOADING_DEFAULT_ENABLED).
package config
