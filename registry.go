package tempobj

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds namespaces sharing a common set of defaults. It is safe
// for concurrent use; the temp objects it creates are not.
type Registry struct {
	defaults   Config
	logger     Logger
	namespaces map[string]*Namespace
	mu         sync.RWMutex
}

// NewRegistry creates a registry. Options set the defaults every namespace
// starts from.
func NewRegistry(opts ...Option) (*Registry, error) {
	o := &options{
		config: DefaultConfig(),
		logger: NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}

	defaults := mergeConfig(o.config)
	if err := defaults.Validate(); err != nil {
		return nil, err
	}

	return &Registry{
		defaults:   defaults,
		logger:     o.logger,
		namespaces: make(map[string]*Namespace),
	}, nil
}

// Define registers a namespace. Zero fields of config fall back to the
// registry defaults. Returns ErrNamespaceExists if name is already known.
func (r *Registry) Define(name string, config Config) (*Namespace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.namespaces[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrNamespaceExists, name)
	}

	merged := overlayConfig(r.defaults, config)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("namespace %s: %w", name, err)
	}

	ns := &Namespace{name: name, config: merged, logger: r.logger}
	r.namespaces[name] = ns

	r.logger.Debug("namespace defined",
		Field{"namespace", name},
		Field{"block_size", merged.BlockSize},
		Field{"temp_dir", merged.TempDir},
	)
	return ns, nil
}

// Namespace returns the namespace called name, creating it with the
// registry defaults if it was never defined.
func (r *Registry) Namespace(name string) *Namespace {
	r.mu.RLock()
	if ns, exists := r.namespaces[name]; exists {
		r.mu.RUnlock()
		return ns
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ns, exists := r.namespaces[name]; exists {
		return ns
	}

	ns := &Namespace{name: name, config: r.defaults, logger: r.logger}
	r.namespaces[name] = ns
	return ns
}

// Names returns the names of all known namespaces, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns the registry-wide defaults.
func (r *Registry) Defaults() Config {
	return r.defaults
}
