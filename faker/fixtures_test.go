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
	"fmt"
	"strings"
	"testing"

	"github.com/lwoggardner/autodouble/double"
)

type greeter interface {
	Greet(name string) string
}

type greeterDouble struct {
	*double.TestDouble
}

func newGreeterDouble(t double.T, configs ...func(*double.TestDouble)) greeter {
	return &greeterDouble{double.NewDouble(t, (*greeter)(nil), configs...)}
}

func (d *greeterDouble) Greet(name string) (r0 string) {
	d.TestDouble.T().Helper()
	r0, _ = d.Invoke("Greet", name)[0].(string)
	return
}

type clock interface {
	Now() int
}

type clockDouble struct {
	*double.TestDouble
}

func newClockDouble(t double.T, configs ...func(*double.TestDouble)) clock {
	return &clockDouble{double.NewDouble(t, (*clock)(nil), configs...)}
}

func (d *clockDouble) Now() (r0 int) {
	d.TestDouble.T().Helper()
	r0, _ = d.Invoke("Now")[0].(int)
	return
}

// unregistered has no double in testRegistry
type unregistered interface {
	Unused()
}

func testRegistry() *double.Registry {
	r := double.NewRegistry()
	double.RegisterWith(r, newGreeterDouble)
	double.RegisterWith(r, newClockDouble)
	return r
}

type politeGreeter struct {
	greeting string
}

func (g politeGreeter) Greet(name string) string {
	return g.greeting + " " + name
}

type store struct {
	items []string
}

type service struct {
	primary   greeter
	secondary greeter
	clock     clock
	store     *store
	hook      func(string) error
	labels    map[string]int
	events    chan string
	retries   int
	name      string
}

func (s *service) Greet(name string) string {
	return fmt.Sprintf("%s/%s", s.primary.Greet(name), s.secondary.Greet(name))
}

func newService(primary greeter, secondary greeter, clock clock) *service {
	return &service{primary: primary, secondary: secondary, clock: clock}
}

func newSimpleService(primary greeter) *service {
	return &service{primary: primary}
}

func newFullService(primary, secondary greeter, clock clock, store *store, hook func(string) error,
	labels map[string]int, events chan string, retries int, name string) *service {
	return &service{
		primary:   primary,
		secondary: secondary,
		clock:     clock,
		store:     store,
		hook:      hook,
		labels:    labels,
		events:    events,
		retries:   retries,
		name:      name,
	}
}

func newUnregisteredService(dep unregistered) *service {
	return &service{}
}

// tDouble is a double of T, for asserting how failures and warnings are reported.
type tDouble struct {
	*double.TestDouble
}

func newTDouble(t *testing.T) *tDouble {
	return &tDouble{double.NewDouble(t, (*double.T)(nil), double.Loose())}
}

func (d *tDouble) Errorf(format string, args ...any) {
	d.TestDouble.T().Helper()
	d.Invoke("Errorf", format, args)
}

func (d *tDouble) Fatalf(format string, args ...any) {
	d.TestDouble.T().Helper()
	d.Invoke("Fatalf", format, args)
}

func (d *tDouble) Logf(format string, args ...any) {
	d.TestDouble.T().Helper()
	d.Invoke("Logf", format, args)
}

func (d *tDouble) Helper() {
	d.TestDouble.T().Helper()
	d.Invoke("Helper")
}

// printed matches printf style arguments whose output contains substr
func printed(substr string) double.Matcher {
	return double.Func(func(format string, args ...any) bool {
		return strings.Contains(fmt.Sprintf(format, args...), substr)
	}, fmt.Sprintf("printed(%q)", substr))
}
