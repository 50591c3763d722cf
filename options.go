package definitions

import (
	"slices"
	"strings"
)

// PackageName identifies this package in verbose output.
const PackageName = "go-definitions"

type config struct {
	logger      Logger
	verbose     bool
	pluralizer  Pluralizer
	scalars     []string
	concurrency int
}

// Option configures compilers and the assembler.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{
		pluralizer:  SuffixPluralizer,
		concurrency: 4,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = NewLogger(nil)
	}
	return cfg
}

// WithLogger sets the Logger used for verbose output.
func WithLogger(logger Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithVerbose toggles logging of generated bundles.
func WithVerbose(verbose bool) Option {
	return func(c *config) {
		c.verbose = verbose
	}
}

// WithPluralizer sets the function used when a definition has no PluralName.
func WithPluralizer(p Pluralizer) Option {
	return func(c *config) {
		if p != nil {
			c.pluralizer = p
		}
	}
}

// WithScalars declares custom scalars emitted at the top of an assembled schema.
func WithScalars(names ...string) Option {
	return func(c *config) {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name != "" && !slices.Contains(c.scalars, name) {
				c.scalars = append(c.scalars, name)
			}
		}
	}
}

// WithConcurrency bounds the number of definitions compiled at once by Assemble.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// verboseLog writes a generated artifact through the logger when verbose is on.
func (c config) verboseLog(kind, name, out string) {
	if !c.verbose || c.logger == nil {
		return
	}
	logger := withLogFields(c.logger, LogFields{"package": PackageName, kind: name})
	logger.Info("generated %s %s\n%s", kind, name, out)
}
