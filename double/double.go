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

package double

import (
	"fmt"
	"reflect"
)

// T is compatible with builtin testing.T
type T interface {
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
	Helper()
}

// MatcherForMethod can be used to integrate a different matching framework
type MatcherForMethod func(t T, m reflect.Method, chained MethodArgsMatcher, matchers ...any) MethodArgsMatcher

// ReturnsForMethod can be used to integrate a different return values framework
type ReturnsForMethod func(t T, m reflect.Method, chained ReturnValues, returnValues ...any) ReturnValues

/*
A TestDouble substitutes for an implementation of an interface.

# Setup phase

Calls are configured per method as a Stub, Mock, Spy or Fake.

# Exercise phase

Methods invoked on the double are sent to the first matching configured call. If there is none, the
double's default call for that method is generated once and used from then on (see SetDefaultCall).
Calls configured after the default was generated still take precedence over it.

# Verify phase

Verify confirms expectations on Mock calls. Spies and Fakes are asserted explicitly.
*/
type TestDouble struct {
	t                   T
	methods             map[string]*method
	defaultCall         func(Method) MethodCall
	defaultReturnValues func(Method) ReturnValues
	forInterface        reflect.Type
	trace               bool
	matcher             MatcherForMethod
	returns             ReturnsForMethod
}

// EnableTrace logs every received method call via T.Logf
func (d *TestDouble) EnableTrace() {
	d.trace = true
}

/*
SetDefaultCall decides whether to Stub, Mock, Spy or Fake a call that was not explicitly registered
in the Setup phase.

The default is a Mock that never expects to be called.
*/
func (d *TestDouble) SetDefaultCall(defaultCall func(Method) MethodCall) {
	d.defaultCall = defaultCall
}

// SetDefaultReturnValues generates return values for a Stub, Mock or Spy that was not given any.
// The default is zero values via reflection.
func (d *TestDouble) SetDefaultReturnValues(defaultReturns func(Method) ReturnValues) {
	d.defaultReturnValues = defaultReturns
}

func (d *TestDouble) SetMatcherIntegration(forMethod MatcherForMethod) {
	d.matcher = forMethod
}

func (d *TestDouble) SetReturnValuesIntegration(forMethod ReturnsForMethod) {
	d.returns = forMethod
}

func (d *TestDouble) String() string {
	return fmt.Sprintf("DoubleFor(%v)", d.forInterface)
}

func (d *TestDouble) T() T {
	return d.t
}

// Double returns d, so that any struct embedding *TestDouble can be recovered with Of.
func (d *TestDouble) Double() *TestDouble {
	return d
}

// Interface returns the interface type that d substitutes for.
func (d *TestDouble) Interface() reflect.Type {
	return d.forInterface
}

// MethodCall is an abstract interface of specific call types, Stub, Mock, Spy and Fake
type MethodCall interface {
	matches(args []any) bool
	spy(args []any) ([]any, error)
	verify(T)
}

/*
NewDouble is called by specific double implementations.

forInterface is either the nil pointer to an interface - (*Iface)(nil) - or the reflect.Type of the interface.

configurators are applied after the strict defaults, eg Loose(), Forwarding(real), or func(d *TestDouble) { d.EnableTrace() }
*/
func NewDouble(t T, forInterface any, configurators ...func(*TestDouble)) *TestDouble {
	t.Helper()
	doubleFor, isType := forInterface.(reflect.Type)
	if !isType {
		doubleFor = reflect.TypeOf(forInterface)
		if doubleFor == nil || doubleFor.Kind() != reflect.Ptr || doubleFor.Elem().Kind() != reflect.Interface {
			t.Fatalf("Expecting '%v' to be a pointer to nil interface", forInterface)
			return nil
		}
		doubleFor = doubleFor.Elem()
	} else if doubleFor.Kind() != reflect.Interface {
		t.Fatalf("Expecting '%v' to be an interface type", doubleFor)
		return nil
	}

	double := &TestDouble{
		t:            t,
		forInterface: doubleFor,
		methods:      make(map[string]*method, doubleFor.NumMethod()),
	}

	for i := 0; i < doubleFor.NumMethod(); i++ {
		m := doubleFor.Method(i)
		double.methods[m.Name] = newMethod(double, m)
	}

	defaults(double)
	for _, c := range configurators {
		c(double)
	}

	if double.matcher == nil {
		t.Fatalf("%v need SetMatcherIntegration() configured", doubleFor)
	}

	if double.returns == nil || double.defaultReturnValues == nil {
		t.Fatalf("%v needs both SetReturnValuesIntegration and SetDefaultReturnValues configured", doubleFor)
	}

	if double.defaultCall == nil {
		t.Fatalf("%v needs SetDefaultCall configured", doubleFor)
	}

	return double
}

func defaults(d *TestDouble) {
	d.matcher = func(t T, m reflect.Method, _ MethodArgsMatcher, matchers ...any) MethodArgsMatcher {
		return NewMatcherForMethod(t, m, matchers...)
	}
	d.returns = func(t T, m reflect.Method, _ ReturnValues, values ...any) ReturnValues {
		return NewReturnsForMethod(t, m, values...)
	}
	d.defaultReturnValues = func(m Method) ReturnValues {
		return ZeroValues(m.Reflect().Type)
	}
	d.defaultCall = func(m Method) MethodCall {
		return m.Mock().Expect(Never())
	}
}

// Loose configures a double to answer calls that were not set up with zero values, recording them in
// the method's Spy.
func Loose() func(*TestDouble) {
	return func(d *TestDouble) {
		d.SetDefaultCall(func(m Method) MethodCall {
			return m.Spy()
		})
	}
}

/*
Forwarding configures a partial double over real, which must implement the double's interface.

Calls that were not set up are Faked with the matching method of real, so they run the real
implementation and are recorded as per Spy. Unexported interface methods cannot be reached on real
via reflection, these fall back to Loose behaviour.
*/
func Forwarding(real any) func(*TestDouble) {
	return func(d *TestDouble) {
		rv := reflect.ValueOf(real)
		if !rv.IsValid() || !rv.Type().Implements(d.forInterface) {
			d.t.Fatalf("%v cannot forward to %T which does not implement %v", d, real, d.forInterface)
			return
		}
		d.SetDefaultCall(func(m Method) MethodCall {
			if impl := rv.MethodByName(m.Reflect().Name); impl.IsValid() {
				return m.Fake(impl.Interface())
			}
			return m.Spy()
		})
	}
}

// lockMethod returns the named method locked for configuration, or fatally fails the test. The caller
// must unlock it.
func (d *TestDouble) lockMethod(name string, action string) *method {
	d.t.Helper()
	m, found := d.methods[name]
	if !found {
		d.t.Fatalf("Cannot %s non existent method %s for %v", action, name, d)
		return nil
	}
	m.mutex.Lock()
	return m
}

// Stub adds a call to methodName that matches any arguments and returns zero values until
// configured otherwise. Invocations go to the first matching call in the order they were added.
func (d *TestDouble) Stub(methodName string) StubbedMethodCall {
	d.t.Helper()
	m := d.lockMethod(methodName, "Stub")
	if m == nil {
		return nil
	}
	defer m.mutex.Unlock()
	stub := m.Stub()
	m.add(stub)
	return stub
}

// Mock adds a stub that expects exactly one invocation unless told otherwise with Expect. A mock
// whose expectation is complete stops matching. Verify reports unmet expectations.
func (d *TestDouble) Mock(methodName string) MockedMethodCall {
	d.t.Helper()
	m := d.lockMethod(methodName, "Mock")
	if m == nil {
		return nil
	}
	defer m.mutex.Unlock()
	mock := m.Mock()
	m.add(mock)
	return mock
}

// Spy returns the spy that records calls to methodName not answered by an earlier Stub or Mock.
// A method has at most one spy, so repeated calls, including the implicit spy of a Loose double,
// return the same value.
func (d *TestDouble) Spy(methodName string) SpyMethodCall {
	d.t.Helper()
	m := d.lockMethod(methodName, "Spy on")
	if m == nil {
		return nil
	}
	defer m.mutex.Unlock()
	if spy, found := m.spyCall(); found {
		return spy
	}
	spy := m.Spy()
	m.add(spy)
	return spy
}

// Fake answers calls to methodName with impl, which must have the method's signature, recording
// them as a spy would. A fake added after the method's spy could never be reached and fails the test.
func (d *TestDouble) Fake(methodName string, impl any) FakeMethodCall {
	d.t.Helper()
	m := d.lockMethod(methodName, "Fake")
	if m == nil {
		return nil
	}
	defer m.mutex.Unlock()
	for _, call := range m.calls {
		if spy, isSpy := call.(SpyMethodCall); isSpy {
			d.t.Fatalf("unreachable fake for %s.%s which has previously registered a spy (%v)", d, methodName, spy)
		}
	}
	fake := m.Fake(impl)
	m.add(fake)
	return fake
}

// Verify reports every mocked call whose expectation is not met.
func (d *TestDouble) Verify() {
	d.t.Helper()
	for _, m := range d.methods {
		for _, call := range m.all() {
			call.verify(d.t)
		}
	}
}

// Invoke is called by double implementations to record the invocation of a method and obtain its return values.
func (d *TestDouble) Invoke(methodName string, args ...any) []any {
	d.t.Helper()

	m, found := d.methods[methodName]
	if !found {
		d.t.Fatalf("Unexpected call to unknown method %v.%s", d, methodName)
		return nil
	}
	return m.invoke(args)
}

// Substitute is implemented by every struct that embeds *TestDouble.
type Substitute interface {
	Double() *TestDouble
}

// Of returns the TestDouble behind v, or nil if v is not a double.
func Of(v any) *TestDouble {
	if s, isa := v.(Substitute); isa {
		return s.Double()
	}
	return nil
}

type Verifiable interface {
	Verify()
}

// Verify is shorthand to Verify a set of TestDoubles
func Verify(testDoubles ...Verifiable) {
	for _, td := range testDoubles {
		td.Verify()
	}
}
