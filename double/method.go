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
	"sync"
)

// Method is handed to a default call generator to build the call for an unconfigured method.
// See TestDouble.SetDefaultCall.
type Method interface {
	Stub() StubbedMethodCall
	Mock() MockedMethodCall
	Spy() SpyMethodCall
	Fake(impl any) FakeMethodCall
	// Reflect is the interface method being doubled.
	Reflect() reflect.Method
}

type method struct {
	receiver *TestDouble
	m        reflect.Method
	mutex    sync.Mutex
	calls    []MethodCall
	// fallback is built by receiver.defaultCall on the first invocation no configured call matches,
	// and consulted only after calls.
	fallback MethodCall
}

func newMethod(d *TestDouble, m reflect.Method) *method {
	return &method{receiver: d, m: m}
}

func (m *method) Stub() StubbedMethodCall      { return newStubbedMethodCall(m) }
func (m *method) Mock() MockedMethodCall       { return newMockedMethodCall(m) }
func (m *method) Spy() SpyMethodCall           { return newSpyMethodCall(m) }
func (m *method) Fake(impl any) FakeMethodCall { return newFakeMethodCall(m, impl) }
func (m *method) Reflect() reflect.Method      { return m.m }

func (m *method) String() string {
	return fmt.Sprintf("%v.%s", m.receiver, m.m.Name)
}

func (m *method) t() T {
	return m.receiver.t
}

func (m *method) trace() bool {
	return m.receiver.trace
}

func (m *method) add(call MethodCall) {
	m.calls = append(m.calls, call)
}

func (m *method) all() []MethodCall {
	if m.fallback == nil {
		return m.calls
	}
	return append(m.calls[:len(m.calls):len(m.calls)], m.fallback)
}

func (m *method) spyCall() (SpyMethodCall, bool) {
	for _, call := range m.all() {
		if spy, ok := call.(SpyMethodCall); ok {
			return spy, true
		}
	}
	return nil, false
}

func (m *method) match(args []any) MethodCall {
	m.t().Helper()
	for _, call := range m.calls {
		if call.matches(args) {
			return call
		}
	}

	if m.fallback == nil {
		if m.fallback = m.receiver.defaultCall(m); m.fallback == nil {
			m.t().Fatalf("Nil DefaultMethodCall returned for %v", m)
			return nil
		}
	}
	if !m.fallback.matches(args) {
		m.t().Fatalf("Method %v expects default call %v to match %v", m, m.fallback, args)
	}
	return m.fallback
}

func (m *method) invoke(args []any) []any {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.t().Helper()

	call := m.match(args)
	if m.trace() {
		defer func() {
			if e := recover(); e != nil {
				m.t().Logf("Called %s(%v) => panic! %v", call, args, e)
				panic(e)
			}
		}()
	}

	results, err := call.spy(args)
	if err != nil {
		m.t().Fatalf("No return values available for method %v(%v) %s", call, args, err)
		return nil
	}
	if m.trace() {
		m.t().Logf("Called %s(%v) => %v", call, args, results)
	}
	AssertMethodReturnValues(m.t(), m.m, results)
	return results
}
