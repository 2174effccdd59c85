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
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lwoggardner/autodouble/double"
)

/*
Harness is a base for testify suites whose system under test is S.

Every test in the suite gets a fresh Faker, so overrides and injected doubles do not leak between
tests. Suites embed a *Harness and implement testify's SetupSuite, SetupTest, TearDownTest and
TearDownSuite as needed.

	type ConfuciousSuite struct {
		*faker.Harness[*examples.Confucious]
	}

	func TestConfucious(t *testing.T) {
		suite.Run(t, &ConfuciousSuite{faker.NewHarness[*examples.Confucious](faker.Constructors(examples.NewConfucious))})
	}

	func (s *ConfuciousSuite) TestMoo() {
		s.InjectNamed("movieQuoteGenerator", examples.CowQuoteGenerator{})
		s.Contains(s.Target().ImpartWiseWordsOfWisdom(), "MOOOOOO!")
	}

Outside of a suite, call Begin with the test's T.
*/
type Harness[S any] struct {
	suite.Suite
	opts  []Option
	t     double.T
	faker *Faker[S]
}

// NewHarness returns a Harness that creates each test's Faker with opts.
func NewHarness[S any](opts ...Option) *Harness[S] {
	return &Harness[S]{opts: opts}
}

// SetT is called by testify as each test starts, and resets the Faker.
func (h *Harness[S]) SetT(t *testing.T) {
	h.Suite.SetT(t)
	h.Begin(t)
}

// Begin starts a new test case reporting to t, discarding the previous Faker.
func (h *Harness[S]) Begin(t double.T) {
	h.t = t
	h.faker = New[S](t, h.opts...)
}

// Faker returns the current test's Faker.
func (h *Harness[S]) Faker() *Faker[S] {
	if h.faker == nil {
		panic("faker: Harness used before SetT or Begin")
	}
	return h.faker
}

// Target returns the system under test, building it on first use. A build error fails the test.
func (h *Harness[S]) Target() S {
	target, err := h.Faker().Fake()
	if err != nil {
		h.t.Helper()
		h.t.Fatalf("%v", err)
	}
	return target
}

// TargetDouble returns the double wrapping the target. It fails the test if there is none.
func (h *Harness[S]) TargetDouble() *double.TestDouble {
	f := h.Faker()
	h.t.Helper()
	h.Target()
	d, found := f.Double()
	if !found {
		h.t.Fatalf("faker: no double registered for target %T", h.faker.target)
	}
	return d
}

// InjectWith overrides the first parameter value is assignable to.
func (h *Harness[S]) InjectWith(value any) {
	err := h.Faker().Override(value)
	h.t.Helper()
	h.inject(err, value)
}

// InjectNamed overrides the parameter called name.
func (h *Harness[S]) InjectNamed(name string, value any) {
	err := h.Faker().OverrideNamed(name, value)
	h.t.Helper()
	h.inject(err, value)
}

func (h *Harness[S]) inject(err error, value any) {
	h.t.Helper()
	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyBuilt):
		h.t.Logf("faker: ignoring override %T, the target is already built", value)
	default:
		h.t.Fatalf("%v", err)
	}
}

// ClearOverrides forgets the overrides registered in this test. It is ignored once the target is built.
func (h *Harness[S]) ClearOverrides() {
	if err := h.Faker().ClearOverrides(); err != nil {
		h.t.Logf("faker: ignoring ClearOverrides, the target is already built")
	}
}

// Verify verifies mock expectations on the target double and every injected double.
func (h *Harness[S]) Verify() {
	f := h.Faker()
	h.t.Helper()
	if !f.Built() {
		return
	}
	if f.double != nil {
		f.double.Verify()
	}
	for _, s := range f.injected {
		if d := double.Of(s.Substitute); d != nil {
			d.Verify()
		}
	}
}

// InjectedFake returns the substitute of type D injected into the harness target. A lookup error fails the test.
func InjectedFake[D any, S any](h *Harness[S], name ...string) D {
	f := h.Faker()
	h.t.Helper()
	d, err := Injected[D](f, name...)
	if err != nil {
		h.t.Fatalf("%v", err)
	}
	return d
}
