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
	"dirpx.dev/bench/apis"
)

const (
	// DefaultIncludeIgnored represents the default for IncludeIgnored.
	// Ignored entries are skipped unless explicitly requested.
	DefaultIncludeIgnored = false
	// DefaultDisambiguate represents the default for Disambiguate.
	// When true, colliding labels are qualified with type arguments.
	DefaultDisambiguate = true
	// DefaultSampleCount represents the default for SampleCount.
	DefaultSampleCount = 100
	// DefaultSampleSize represents the default for SampleSize.
	DefaultSampleSize = 1
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure the sample plan and MaxUnwrap are valid.
	if cfg.SampleCount <= 0 {
		cfg.SampleCount = DefaultSampleCount
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultSampleSize
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeIgnored: DefaultIncludeIgnored,
		Disambiguate:   DefaultDisambiguate,
		SampleCount:    DefaultSampleCount,
		SampleSize:     DefaultSampleSize,
		MaxUnwrap:      DefaultMaxUnwrap,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithIncludeIgnored sets the IncludeIgnored option.
func WithIncludeIgnored(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeIgnored = include
	}
}

// WithDisambiguate sets the Disambiguate option.
func WithDisambiguate(disambiguate bool) Option {
	return func(c *apis.Config) {
		c.Disambiguate = disambiguate
	}
}

// WithSampleCount sets the SampleCount option.
// A non-positive value resets to the default.
func WithSampleCount(n int) Option {
	return func(c *apis.Config) {
		if n <= 0 {
			c.SampleCount = DefaultSampleCount
			return
		}
		c.SampleCount = n
	}
}

// WithSampleSize sets the SampleSize option.
// A non-positive value resets to the default.
func WithSampleSize(n int) Option {
	return func(c *apis.Config) {
		if n <= 0 {
			c.SampleSize = DefaultSampleSize
			return
		}
		c.SampleSize = n
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}
