package tempobj

// Namespace is a named set of defaults for temp objects, for example a
// larger block size for a pipeline that handles video. Namespaces are
// resolved once, usually at startup, and then only read.
type Namespace struct {
	name   string
	config Config
	logger Logger
}

// NewNamespace creates a standalone namespace. Options set its defaults.
func NewNamespace(name string, opts ...Option) (*Namespace, error) {
	o := &options{
		config: DefaultConfig(),
		logger: NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}

	config := mergeConfig(o.config)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Namespace{name: name, config: config, logger: o.logger}, nil
}

// New creates a TempObject with the namespace's defaults. Options given
// here override them for this object only. Unlike the package-level New,
// a *TempObject source does not pass its configuration on: the namespace
// decides.
func (ns *Namespace) New(src interface{}, opts ...Option) (*TempObject, error) {
	o := &options{
		config: ns.config,
		logger: ns.logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return newWithOptions(src, o)
}

// Name returns the namespace name.
func (ns *Namespace) Name() string {
	return ns.name
}

// Config returns the namespace defaults.
func (ns *Namespace) Config() Config {
	return ns.config
}
