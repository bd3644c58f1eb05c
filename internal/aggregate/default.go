// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/config"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/internal/fragment"
	"github.com/Kalandor01/ProgressAdventure-CSharp-sub001/pkg/namespace"
)

var (
	defaultMu     sync.Mutex
	defaultAgg    *Aggregator
	defaultCfg    *config.Config
	defaultLogger *log.Logger
)

// New builds an aggregator over the content root of cfg.
func New(cfg *config.Config, logger *log.Logger) *Aggregator {
	return &Aggregator{
		Store: fragment.NewStore(cfg.ContentDir),
		Resolver: &namespace.Resolver{
			Separator:        cfg.Separators.NamespaceSeparator(),
			Vanilla:          cfg.Vanilla.Namespace,
			DefaultToVanilla: cfg.Loading.DefaultToVanilla,
			Logger:           logger,
		},
		RemoveMarker: cfg.RemoveMarker,
		Vanilla:      cfg.Vanilla.Namespace,
		Logger:       logger,
	}
}

// Configure sets what Default builds from. A nil cfg means config.DefaultConfig().
// An aggregator that was already built is dropped.
func Configure(cfg *config.Config, logger *log.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCfg = cfg
	defaultLogger = logger
	defaultAgg = nil
}

// Default returns the process-wide aggregator, building it on first use.
func Default() *Aggregator {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultAgg == nil {
		cfg := defaultCfg
		if cfg == nil {
			cfg = config.DefaultConfig()
		}
		defaultAgg = New(cfg, defaultLogger)
	}
	return defaultAgg
}

// ResetDefault forgets the configured settings and the built aggregator.
// Call from test cleanup.
func ResetDefault() {
	Configure(nil, nil)
}
