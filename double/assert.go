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

// AssertMethodReturnValues fatally fails t unless values can be returned from method.
func AssertMethodReturnValues(t T, method reflect.Method, values []any) {
	t.Helper()
	types := make([]reflect.Type, len(values))
	for i, v := range values {
		types[i] = reflect.TypeOf(v)
	}
	AssertMethodReturnTypes(t, method, types, " ")
}

// AssertMethodOutputs fatally fails t unless fn is a func whose results can be returned from m.
func AssertMethodOutputs(t T, m reflect.Method, fn reflect.Type) {
	t.Helper()
	assertFunc(t, fn)
	if want, got := m.Type.NumOut(), fn.NumOut(); want != got {
		t.Fatalf("%v for %v expects to have %d return values, found %d", fn, m.Type, want, got)
	}
	types := make([]reflect.Type, fn.NumOut())
	for i := range types {
		types[i] = fn.Out(i)
	}
	AssertMethodReturnTypes(t, m, types)
}

// AssertMethodReturnTypes fatally fails t unless types are assignable to m's results. A nil type
// stands for an untyped nil and is always accepted.
func AssertMethodReturnTypes(t T, m reflect.Method, types []reflect.Type, prefixes ...any) {
	t.Helper()
	prefix := fmt.Sprint(prefixes...)
	if want := m.Type.NumOut(); want != len(types) {
		t.Fatalf("%v for %sexpects to have %d return values, found %d", m.Type, prefix, want, len(types))
	}
	for i, got := range types {
		want := m.Type.Out(i)
		if got != nil && !got.AssignableTo(want) {
			t.Fatalf("%v for %sexpects to have return Value %d to be assignable to %v, got %v", m.Type, prefix, i, want, got)
		}
	}
}

// AssertMethodInputs fatally fails t unless fn is a func that can accept the arguments of m.
func AssertMethodInputs(t T, m reflect.Method, fn reflect.Type) {
	t.Helper()
	assertFunc(t, fn)
	if m.Type.IsVariadic() != fn.IsVariadic() {
		t.Fatalf("%v expects %v to have variadic=%v, found %v", m.Type, fn, m.Type.IsVariadic(), fn.IsVariadic())
	}
	if want, got := m.Type.NumIn(), fn.NumIn(); want != got {
		t.Fatalf("%v expects %v to have %d arguments, found %d", m.Type, fn, want, got)
	}
	for i := 0; i < fn.NumIn(); i++ {
		if arg := m.Type.In(i); !arg.AssignableTo(fn.In(i)) {
			t.Fatalf("%v requires %v arg %d to be assignable from %v", m.Type, fn, i, arg)
		}
	}
}

func assertFunc(t T, fn reflect.Type) {
	t.Helper()
	if fn.Kind() != reflect.Func {
		t.Fatalf("expected func, got %v", fn)
	}
}
