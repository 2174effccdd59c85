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

// Override is a value supplied by the test for a constructor parameter.
//
// An Override with an empty Name matches any parameter its value is assignable to,
// otherwise the parameter name must also be equal.
type Override struct {
	Value any
	Name  string
}

func (o Override) matches(p reflect.Type, name string) bool {
	return reflect.TypeOf(o.Value).AssignableTo(p) && (o.Name == "" || o.Name == name)
}

// binding is the resolved argument for one constructor parameter.
type binding struct {
	Type        reflect.Type
	Name        string
	Value       reflect.Value
	Override    int // index of the override used, or -1
	Synthesized bool
}

type resolver struct {
	t         double.T
	registry  *double.Registry
	overrides []Override
	reuse     bool
	trace     bool
}

/*
resolve decides the argument for each parameter of c, in declaration order.

A parameter takes the first matching override that has not been bound to an earlier parameter
(any matching override when reuse is set). Otherwise reference kinds are synthesized and value
kinds take their zero value.
*/
func (r *resolver) resolve(c *Constructor) ([]binding, error) {
	bound := make([]bool, len(r.overrides))
	bindings := make([]binding, c.NumIn())

	for i := range bindings {
		pt, name := c.Param(i)
		b := binding{Type: pt, Name: name, Override: -1}

		for j, o := range r.overrides {
			if (r.reuse || !bound[j]) && o.matches(pt, name) {
				bound[j] = true
				b.Override = j
				b.Value = reflect.New(pt).Elem()
				b.Value.Set(reflect.ValueOf(o.Value))
				break
			}
		}

		if b.Override < 0 {
			v, synthesized, err := r.synthesize(pt, name)
			if err != nil {
				return nil, err
			}
			b.Value, b.Synthesized = v, synthesized
		}

		if r.trace {
			r.t.Logf("faker: %s <- %s", describe(pt, name), b.source())
		}
		bindings[i] = b
	}
	return bindings, nil
}

// synthesize creates a substitute for a parameter with no override, reporting whether it is to be recorded.
func (r *resolver) synthesize(pt reflect.Type, name string) (reflect.Value, bool, error) {
	r.t.Helper()
	configs := []func(*double.TestDouble){double.Loose()}
	if r.trace {
		configs = append(configs, func(d *double.TestDouble) { d.EnableTrace() })
	}
	if d, found := r.registry.New(r.t, pt, configs...); found {
		v := reflect.New(pt).Elem()
		v.Set(reflect.ValueOf(d))
		return v, true, nil
	}

	switch pt.Kind() {
	case reflect.Interface:
		return reflect.Value{}, false, &SynthesisError{Type: pt, Name: name, Reason: "no double registered for interface"}
	case reflect.UnsafePointer:
		return reflect.Value{}, false, &SynthesisError{Type: pt, Name: name, Reason: "unsafe.Pointer has no substitute"}
	case reflect.Ptr:
		return reflect.New(pt.Elem()).Convert(pt), true, nil
	case reflect.Func:
		return reflect.MakeFunc(pt, zeroResults(pt)), true, nil
	case reflect.Map:
		return reflect.MakeMap(pt), true, nil
	case reflect.Chan:
		ch := reflect.MakeChan(reflect.ChanOf(reflect.BothDir, pt.Elem()), 0)
		return ch.Convert(pt), true, nil
	default:
		return reflect.Zero(pt), false, nil
	}
}

func zeroResults(ft reflect.Type) func([]reflect.Value) []reflect.Value {
	return func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, ft.NumOut())
		for i := range out {
			out[i] = reflect.Zero(ft.Out(i))
		}
		return out
	}
}

func (b binding) source() string {
	switch {
	case b.Override >= 0:
		return "override"
	case b.Synthesized:
		return "synthesized"
	default:
		return "zero value"
	}
}
