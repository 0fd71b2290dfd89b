package taskres

import "fmt"

// Config is a serialisable representation of the service configuration. It
// can be populated from JSON, YAML, environment driven loaders, etc. The
// zero-value is useful - all nested fields inherit their package defaults.
type Config struct {
	Permission PermissionConfig `json:"permission" yaml:"permission"`
	Memory     MemoryConfig     `json:"memory" yaml:"memory"`
	// StrictResolution makes Exec fail on an unregistered resource instead
	// of passing a typed nil into the callable. The policy applies to every
	// binding the service creates.
	StrictResolution bool `json:"strictResolution" yaml:"strictResolution"`
}

// PermissionConfig controls the permission space.
type PermissionConfig struct {
	// Capacity is the maximum number of distinct resource types tracked in
	// access signatures; the bit sets are not resizable.
	Capacity int `json:"capacity" yaml:"capacity"`
}

// MemoryConfig controls the default allocator.
type MemoryConfig struct {
	// Budget caps live owned-value bytes across the service's registries;
	// zero means unlimited.
	Budget int64 `json:"budget" yaml:"budget"`
}

// DefaultConfig returns a Config populated with package defaults. Callers
// may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Permission: PermissionConfig{Capacity: 128},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Permission.Capacity <= 0 {
		return fmt.Errorf("permission.capacity must be > 0")
	}
	if c.Memory.Budget < 0 {
		return fmt.Errorf("memory.budget must be >= 0")
	}
	return nil
}
