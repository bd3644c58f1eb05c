// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"sync/atomic"
)

// EnvConfigDir relocates the config directory, e.g. for a portable content
// checkout that carries its own settings.
const EnvConfigDir = EnvPrefix + "_CONFIG_DIR"

var configDirOverride atomic.Pointer[string]

// SetConfigDirOverride points ConfigDir at dir until restore is called.
// os.UserHomeDir ignores HOME on some platforms, so tests use this instead.
func SetConfigDirOverride(dir string) (restore func()) {
	prev := configDirOverride.Swap(&dir)
	return func() { configDirOverride.Store(prev) }
}

// overriddenConfigDir returns the test override, then $CONTENTCTL_CONFIG_DIR.
func overriddenConfigDir() (string, bool) {
	if dir := configDirOverride.Load(); dir != nil && *dir != "" {
		return *dir, true
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, true
	}
	return "", false
}
