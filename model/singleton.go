package model

import "sync"

// Process-wide registry instance and its initialization guard.
var (
	globalRegistry *Registry
	globalOnce     sync.Once
)

// Global returns the process-wide registry, creating a default one on
// first use if InitGlobal was never called.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewDefaultRegistry()
	})
	return globalRegistry
}

// InitGlobal installs a registry loaded from configuration as the
// process-wide instance. Only the first call (to this or Global) wins.
func InitGlobal(r *Registry) {
	globalOnce.Do(func() {
		globalRegistry = r
	})
}

// ResetGlobal clears the global registry. Not thread-safe; tests only.
func ResetGlobal() {
	globalOnce = sync.Once{}
	globalRegistry = nil
}
