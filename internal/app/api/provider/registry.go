package provider

import (
	"fmt"
	"sort"
	"sync"

	"clinic-scribe/internal/app/api"
)

// Factory builds a transcriber from its configuration block.
type Factory func(cfg ProviderConfig) (api.Transcriber, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a provider type available by name. Called from provider
// package init functions.
func Register(providerType string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[providerType] = factory
}

// RegisteredTypes lists the known provider types, sorted.
func RegisteredTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(factories))
	for name := range factories {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// Build constructs the configured default transcriber, instrumented with
// metrics.
func Build(cfg *Config) (api.Transcriber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pc := cfg.Providers[cfg.DefaultProvider]
	providerType := pc.Type
	if providerType == "" {
		providerType = cfg.DefaultProvider
	}

	registryMu.RLock()
	factory, ok := factories[providerType]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider type %q (registered: %v)", providerType, RegisteredTypes())
	}

	transcriber, err := factory(pc)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider %q: %w", cfg.DefaultProvider, err)
	}

	return Instrument(transcriber), nil
}
