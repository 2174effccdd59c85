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
	"reflect"
	"sync"
)

// Factory builds a double for a registered interface. The configurators are applied to the new TestDouble.
type Factory func(t T, configurators ...func(*TestDouble)) any

// A Registry maps interface types to the factories that build doubles for them.
type Registry struct {
	mutex     sync.RWMutex
	factories map[reflect.Type]Factory
}

// DefaultRegistry is used by Register, and by the faker package unless it is given another Registry.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{factories: make(map[reflect.Type]Factory)}
}

/*
Register makes a double factory for interface I available in the DefaultRegistry.

Generated doubles call Register from an init function. Registering I again replaces the earlier factory.
*/
func Register[I any](factory func(t T, configurators ...func(*TestDouble)) I) {
	RegisterWith(DefaultRegistry, factory)
}

// RegisterWith registers a double factory for interface I with r.
func RegisterWith[I any](r *Registry, factory func(t T, configurators ...func(*TestDouble)) I) {
	iface := reflect.TypeOf((*I)(nil)).Elem()
	if iface.Kind() != reflect.Interface {
		panic("double: cannot register a double for non interface type " + iface.String())
	}
	r.Add(iface, func(t T, configurators ...func(*TestDouble)) any {
		return factory(t, configurators...)
	})
}

// Add registers factory for the interface type iface.
func (r *Registry) Add(iface reflect.Type, factory Factory) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.factories[iface] = factory
}

// Registered reports whether a double can be built for iface.
func (r *Registry) Registered(iface reflect.Type) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, found := r.factories[iface]
	return found
}

/*
New builds a double for iface.

It returns false if no factory is registered for iface. A factory that returns a value
not assignable to iface fails the test.
*/
func (r *Registry) New(t T, iface reflect.Type, configurators ...func(*TestDouble)) (any, bool) {
	t.Helper()
	r.mutex.RLock()
	factory, found := r.factories[iface]
	r.mutex.RUnlock()
	if !found {
		return nil, false
	}
	d := factory(t, configurators...)
	if d == nil || !reflect.TypeOf(d).AssignableTo(iface) {
		t.Fatalf("Double factory for %v returned %T which does not implement it", iface, d)
		return nil, false
	}
	return d, true
}
