/*
 * Copyright 2020 grant@lastweekend.com.au
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package faker

import (
	"github.com/lwoggardner/autodouble/double"
)

// An Option configures a Faker.
type Option func(*options)

type options struct {
	ctors     []any
	registry  *double.Registry
	overrides []Override
	reuse     bool
	trace     bool
	noForward bool
}

func newOptions(opts []Option) *options {
	o := &options{registry: double.DefaultRegistry}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

/*
Constructors supplies the funcs that can build the target.

Each is a func, or a *Constructor from Ctor. The one with the most parameters is used.
An interface target with no constructors is built as a pure double.
*/
func Constructors(ctors ...any) Option {
	return func(o *options) {
		o.ctors = append(o.ctors, ctors...)
	}
}

// WithRegistry looks up doubles in r rather than double.DefaultRegistry.
func WithRegistry(r *double.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithOverrides registers overrides up front, as if by Faker.Override and Faker.OverrideNamed.
func WithOverrides(overrides ...Override) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, overrides...)
	}
}

// ReuseOverrides lets one override bind every parameter it matches, rather than only the first.
func ReuseOverrides() Option {
	return func(o *options) {
		o.reuse = true
	}
}

// WithTrace logs how each parameter was resolved, and enables trace on the injected doubles.
func WithTrace() Option {
	return func(o *options) {
		o.trace = true
	}
}

// NoForwarding makes the double around an interface target answer unconfigured calls with zero
// values instead of forwarding them to the real target. The real target is still constructed, so
// its dependencies are injected and can be retrieved.
func NoForwarding() Option {
	return func(o *options) {
		o.noForward = true
	}
}
