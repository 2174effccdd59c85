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
	"reflect"

	"github.com/lwoggardner/autodouble/double"
)

// InjectedSubstitute records a value synthesized for a constructor parameter.
type InjectedSubstitute struct {
	Type       reflect.Type
	Name       string
	Substitute any
}

/*
A Faker builds one S for a test, substituting its dependencies.

Overrides are registered before the target is first requested. The target is then built once,
and the same value (or error) is returned from then on. Overrides registered after that are
rejected with ErrAlreadyBuilt.
*/
type Faker[S any] struct {
	t         double.T
	opts      *options
	overrides []Override

	built    bool
	target   S
	err      error
	injected []InjectedSubstitute
	double   *double.TestDouble
}

// New returns a Faker for S. Failures from the doubles it creates are reported to t.
func New[S any](t double.T, opts ...Option) *Faker[S] {
	o := newOptions(opts)
	f := &Faker[S]{t: t, opts: o}
	for _, ov := range o.overrides {
		if err := f.OverrideNamed(ov.Name, ov.Value); err != nil {
			t.Helper()
			t.Fatalf("%v", err)
		}
	}
	return f
}

// Override registers value for the first parameter it is assignable to.
func (f *Faker[S]) Override(value any) error {
	return f.OverrideNamed("", value)
}

// OverrideNamed registers value for the parameter called name. An empty name matches by type alone.
func (f *Faker[S]) OverrideNamed(name string, value any) error {
	if f.built {
		return ErrAlreadyBuilt
	}
	if value == nil {
		return ErrNilOverride
	}
	f.overrides = append(f.overrides, Override{Value: value, Name: name})
	return nil
}

// ClearOverrides forgets all registered overrides.
func (f *Faker[S]) ClearOverrides() error {
	if f.built {
		return ErrAlreadyBuilt
	}
	f.overrides = nil
	return nil
}

// Built reports whether the target has been built (or failed to build).
func (f *Faker[S]) Built() bool {
	return f.built
}

// Fake returns the target, building it on the first call.
func (f *Faker[S]) Fake() (S, error) {
	if !f.built {
		f.built = true
		f.target, f.err = f.safeBuild()
	}
	return f.target, f.err
}

// safeBuild is build with a panic from outside the constructor, such as a double factory, recovered
// into a ConstructionError so that it is memoized like any other failure.
func (f *Faker[S]) safeBuild() (target S, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &ConstructionError{Target: reflect.TypeOf((*S)(nil)).Elem(), Err: panicError(p)}
		}
	}()
	return f.build()
}

// MustFake is Fake, failing the test on error.
func (f *Faker[S]) MustFake() S {
	target, err := f.Fake()
	if err != nil {
		f.t.Helper()
		f.t.Fatalf("%v", err)
	}
	return target
}

/*
Double returns the double behind the target, building it if necessary.

There is a double when S is an interface with a registered double. Without constructors it is a
pure double. With constructors it forwards unconfigured calls to the real target.
*/
func (f *Faker[S]) Double() (*double.TestDouble, bool) {
	if _, err := f.Fake(); err != nil {
		return nil, false
	}
	return f.double, f.double != nil
}

// Substitutes returns the substitutes injected into the target, in parameter order.
func (f *Faker[S]) Substitutes() []InjectedSubstitute {
	_, _ = f.Fake()
	return append([]InjectedSubstitute(nil), f.injected...)
}

func (f *Faker[S]) build() (S, error) {
	f.t.Helper()
	var zero S
	target := reflect.TypeOf((*S)(nil)).Elem()

	ctors := make([]*Constructor, len(f.opts.ctors))
	for i, c := range f.opts.ctors {
		ctors[i] = asConstructor(c)
	}

	if len(ctors) == 0 && target.Kind() == reflect.Interface {
		d, found := f.opts.registry.New(f.t, target, f.doubleConfigs(double.Loose())...)
		if !found {
			return zero, &NoConstructorError{Target: target}
		}
		f.double = double.Of(d)
		return d.(S), nil
	}

	ctor, err := selectConstructor(target, ctors)
	if err != nil {
		return zero, err
	}
	if f.opts.trace {
		f.t.Logf("faker: building %v with %s", target, ctor)
	}

	r := &resolver{t: f.t, registry: f.opts.registry, overrides: f.overrides, reuse: f.opts.reuse, trace: f.opts.trace}
	bindings, err := r.resolve(ctor)
	if err != nil {
		return zero, err
	}

	args := make([]reflect.Value, len(bindings))
	var injected []InjectedSubstitute
	for i, b := range bindings {
		args[i] = b.Value
		if b.Synthesized {
			injected = append(injected, InjectedSubstitute{Type: b.Type, Name: b.Name, Substitute: b.Value.Interface()})
		}
	}

	instance, err := ctor.call(target, args)
	if err != nil {
		return zero, err
	}
	f.injected = injected

	if target.Kind() == reflect.Interface && f.opts.registry.Registered(target) {
		config := double.Forwarding(instance.Interface())
		if f.opts.noForward {
			config = double.Loose()
		}
		d, _ := f.opts.registry.New(f.t, target, f.doubleConfigs(config)...)
		f.double = double.Of(d)
		return d.(S), nil
	}
	return instance.Interface().(S), nil
}

func (f *Faker[S]) doubleConfigs(config func(*double.TestDouble)) []func(*double.TestDouble) {
	configs := []func(*double.TestDouble){config}
	if f.opts.trace {
		configs = append(configs, func(d *double.TestDouble) { d.EnableTrace() })
	}
	return configs
}

/*
Injected returns the substitute of type D injected into the target, building it if necessary.

With a name, only the substitute for the parameter of that name matches. It is an error for
no substitute, or more than one, to match.
*/
func Injected[D any, S any](f *Faker[S], name ...string) (D, error) {
	var zero D
	if _, err := f.Fake(); err != nil {
		return zero, err
	}

	dt := reflect.TypeOf((*D)(nil)).Elem()
	var wanted string
	if len(name) > 0 {
		wanted = name[0]
	}

	var matches []InjectedSubstitute
	for _, s := range f.injected {
		if s.Type == dt && (wanted == "" || s.Name == wanted) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return zero, &NotFoundError{Type: dt, Name: wanted}
	case 1:
		return matches[0].Substitute.(D), nil
	default:
		return zero, &AmbiguousSubstituteError{Type: dt, Name: wanted, Count: len(matches)}
	}
}

// MustInjected is Injected, failing the test on error.
func MustInjected[D any, S any](f *Faker[S], name ...string) D {
	d, err := Injected[D](f, name...)
	if err != nil {
		f.t.Helper()
		f.t.Fatalf("%v", err)
	}
	return d
}
