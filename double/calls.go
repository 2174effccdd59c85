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

/*
StubbedMethodCall answers matching invocations with canned return values.

Matching accepts, in order of precedence:
  - a single Matcher, used as is
  - a func followed by an optional description, wrapped with Func
  - a list of values or matchers, one per argument, each converted with Eql unless already a Matcher

Returning accepts either one value per method output, or a single ReturnValues.
*/
type StubbedMethodCall interface {
	Matching(matchers ...any) StubbedMethodCall
	Returning(returnValues ...any) StubbedMethodCall
	MethodCall
}

// MockedMethodCall is a stub that counts its invocations against an Expectation, checked by Verify.
type MockedMethodCall interface {
	Matching(matchers ...any) MockedMethodCall
	Returning(values ...any) MockedMethodCall

	// After restricts this call to match only once each of calls is complete.
	After(calls ...MockedMethodCall) MockedMethodCall

	// Expect replaces the default expectation of exactly one invocation.
	Expect(expect Expectation) MockedMethodCall

	MethodCall

	complete() bool
}

// FakeMethodCall runs a supplied implementation for every invocation and records it as a spy would.
type FakeMethodCall interface {
	RecordedCalls
	MethodCall
}

type stubbedMethodCall struct {
	*method
	returns ReturnValues
	matcher MethodArgsMatcher
}

func newStubbedMethodCall(m *method) *stubbedMethodCall {
	return &stubbedMethodCall{method: m}
}

func (c *stubbedMethodCall) Matching(matchers ...any) StubbedMethodCall {
	c.t().Helper()
	c.matcher = c.receiver.matcher(c.t(), c.m, c.matcher, matchers...)
	return c
}

func (c *stubbedMethodCall) Returning(returnValues ...any) StubbedMethodCall {
	c.returns = c.receiver.returns(c.t(), c.m, c.returns, returnValues...)
	return c
}

func (c *stubbedMethodCall) matches(args []any) bool {
	return c.matcher == nil || c.matcher.Matches(args...)
}

func (c *stubbedMethodCall) spy(_ []any) ([]any, error) {
	if c.returns == nil {
		c.returns = c.receiver.defaultReturnValues(c.method)
	}
	return c.returns.Receive()
}

func (c *stubbedMethodCall) verify(T) {}

func (c *stubbedMethodCall) String() string {
	if c.matcher == nil {
		return c.method.String()
	}
	return fmt.Sprintf("%v matching %v", c.method, c.matcher)
}

type mockedMethodCall struct {
	*stubbedMethodCall
	expect Expectation
	after  []MockedMethodCall
	count  int
}

func newMockedMethodCall(m *method) *mockedMethodCall {
	return &mockedMethodCall{stubbedMethodCall: newStubbedMethodCall(m), expect: Once()}
}

func (c *mockedMethodCall) Matching(matchers ...any) MockedMethodCall {
	c.t().Helper()
	c.stubbedMethodCall.Matching(matchers...)
	return c
}

func (c *mockedMethodCall) Returning(values ...any) MockedMethodCall {
	c.stubbedMethodCall.Returning(values...)
	return c
}

func (c *mockedMethodCall) After(calls ...MockedMethodCall) MockedMethodCall {
	c.after = append(c.after, calls...)
	return c
}

func (c *mockedMethodCall) Expect(expect Expectation) MockedMethodCall {
	c.expect = expect
	return c
}

func (c *mockedMethodCall) complete() bool {
	completion, ok := c.expect.(Completion)
	return ok && completion.Complete(c.count)
}

func (c *mockedMethodCall) ready() bool {
	for _, prior := range c.after {
		if !prior.complete() {
			return false
		}
	}
	return true
}

func (c *mockedMethodCall) matches(args []any) bool {
	return !c.complete() && c.ready() && c.stubbedMethodCall.matches(args)
}

func (c *mockedMethodCall) spy(args []any) ([]any, error) {
	c.count++
	if c.trace() && c.complete() {
		c.t().Logf("%v completed expectations after %d calls", c, c.count)
	}
	return c.stubbedMethodCall.spy(args)
}

func (c *mockedMethodCall) verify(t T) {
	t.Helper()
	if c.expect != nil && !c.expect.Met(c.count) {
		t.Errorf("%v expected %v, found %d calls", c.stubbedMethodCall, c.expect, c.count)
	}
}

// ExpectInOrder chains calls with After so each only matches once its predecessor is complete.
func ExpectInOrder(calls ...MockedMethodCall) {
	for i := 1; i < len(calls); i++ {
		calls[i].After(calls[i-1])
	}
}

type fakeMethodCall struct {
	*spyMethodCall
	impl reflect.Value
}

func newFakeMethodCall(m *method, impl any) *fakeMethodCall {
	fn := reflect.ValueOf(impl)
	AssertMethodInputs(m.t(), m.m, fn.Type())
	AssertMethodOutputs(m.t(), m.m, fn.Type())
	return &fakeMethodCall{spyMethodCall: newSpyMethodCall(m), impl: fn}
}

func (c *fakeMethodCall) spy(args []any) ([]any, error) {
	// recorded before the call so a panicking fake is still visible to the test
	c.record(args)

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}
	call := c.impl.Call
	if c.impl.Type().IsVariadic() {
		call = c.impl.CallSlice
	}

	out := call(in)
	if len(out) == 0 {
		return nil, nil
	}
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}
