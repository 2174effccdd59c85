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

// builder fills in test data the way the resolver fills in constructor parameters.
type builder struct {
	r        *resolver
	visiting map[reflect.Type]bool
}

/*
CreateA returns a T built for use as test data, without doubles.

Exported fields of structs are filled recursively, as are the structs behind pointers. Maps, channels,
funcs and other pointers are given empty working values, as for constructor parameters. Interfaces
and everything else are left as zero values. A pointer back to a struct that is already being
filled is left nil.
*/
func CreateA[T any, S any](h *Harness[S]) T {
	f := h.Faker()
	return create[T](f.t, double.NewRegistry(), f.opts.trace)
}

// CreateAutoDoubled is CreateA, but interface values with a registered double are filled with a loose
// double. Use double.Of to configure them. These doubles are not substitutes of the target.
func CreateAutoDoubled[T any, S any](h *Harness[S]) T {
	f := h.Faker()
	return create[T](f.t, f.opts.registry, f.opts.trace)
}

func create[T any](t double.T, registry *double.Registry, trace bool) T {
	t.Helper()
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if trace {
		t.Logf("faker: creating %v", rt)
	}
	b := &builder{
		r:        &resolver{t: t, registry: registry, trace: trace},
		visiting: make(map[reflect.Type]bool),
	}
	var out T
	reflect.ValueOf(&out).Elem().Set(b.fill(rt, ""))
	return out
}

func (b *builder) fill(rt reflect.Type, name string) reflect.Value {
	switch {
	case rt.Kind() == reflect.Struct:
		return b.fillStruct(rt)
	case rt.Kind() == reflect.Ptr && rt.Elem().Kind() == reflect.Struct:
		if b.visiting[rt.Elem()] {
			return reflect.Zero(rt)
		}
		p := reflect.New(rt.Elem())
		p.Elem().Set(b.fillStruct(rt.Elem()))
		return p.Convert(rt)
	}

	v, _, err := b.r.synthesize(rt, name)
	if err != nil {
		return reflect.Zero(rt)
	}
	return v
}

func (b *builder) fillStruct(rt reflect.Type) reflect.Value {
	v := reflect.New(rt).Elem()
	if b.visiting[rt] {
		return v
	}
	b.visiting[rt] = true
	defer delete(b.visiting, rt)

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		v.Field(i).Set(b.fill(sf.Type, sf.Name))
	}
	return v
}
