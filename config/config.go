/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"go.uber.org/zap"

	"dirpx.dev/macroable/apis"
)

const (
	// DefaultStrictLookup represents the default for StrictLookup.
	// When true, Has* checks also verify the member is still installed.
	DefaultStrictLookup = true
	// DefaultRequireCallable represents the default for RequireCallable.
	// Macros may carry plain values unless a class opts into stricter checks.
	DefaultRequireCallable = false
	// DefaultGuardNative represents the default for GuardNative.
	// Native method names register like any other name unless a class opts in.
	DefaultGuardNative = false
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem represents the default for MapPreferElem.
	DefaultMapPreferElem = true
)

// Config is an apis.Config plus the runtime collaborators a class is built
// with. The contract knobs stay in apis; the logger lives here so apis keeps
// no dependencies.
type Config struct {
	apis.Config

	// Logger receives registration and hydration events. Nil means no logging.
	Logger *zap.Logger
}

// Log returns the configured logger, or a no-op logger when none is set.
func (c Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// NewConfig constructs a Config from the given options.
func NewConfig(opts ...Option) Config {
	return Apply(DefaultConfig(), opts...)
}

// Apply returns base with opts applied in order.
func Apply(base Config, opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	// Ensure MaxUnwrap is valid.
	if base.MaxUnwrap < 0 {
		base.MaxUnwrap = DefaultMaxUnwrap
	}
	return base
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() Config {
	return Config{Config: apis.Config{
		StrictLookup:    DefaultStrictLookup,
		RequireCallable: DefaultRequireCallable,
		GuardNative:     DefaultGuardNative,
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
	}}
}

// Option is a functional option that mutates a Config during construction.
type Option func(*Config)

// WithStrictLookup sets the StrictLookup option.
func WithStrictLookup(strict bool) Option {
	return func(c *Config) {
		c.StrictLookup = strict
	}
}

// WithRequireCallable sets the RequireCallable option.
func WithRequireCallable(require bool) Option {
	return func(c *Config) {
		c.RequireCallable = require
	}
}

// WithGuardNative sets the GuardNative option.
func WithGuardNative(guard bool) Option {
	return func(c *Config) {
		c.GuardNative = guard
	}
}

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMapPreferElem sets the MapPreferElem option.
func WithMapPreferElem(prefer bool) Option {
	return func(c *Config) {
		c.MapPreferElem = prefer
	}
}

// WithLogger sets the Logger option. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
