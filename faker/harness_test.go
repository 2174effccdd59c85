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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/lwoggardner/autodouble/double"
)

type HarnessSuite struct {
	*Harness[*service]
	setups int
}

func TestHarnessSuite(t *testing.T) {
	suite.Run(t, &HarnessSuite{Harness: NewHarness[*service](WithRegistry(testRegistry()), Constructors(newService))})
}

func (s *HarnessSuite) SetupTest() {
	s.setups++
	s.False(s.Faker().Built(), "each test starts with a fresh faker")
}

func (s *HarnessSuite) TestTarget() {
	target := s.Target()

	s.Same(target, s.Target())
	s.Same(target.primary, InjectedFake[greeter](s.Harness, "primary"))
}

func (s *HarnessSuite) TestInjectNamed() {
	s.InjectNamed("secondary", politeGreeter{"hi"})

	s.Equal("/hi bob", s.Target().Greet("bob"))
}

func (s *HarnessSuite) TestInjectWith() {
	s.InjectWith(politeGreeter{"hi"})

	s.Equal("hi bob/", s.Target().Greet("bob"))
}

func (s *HarnessSuite) TestClearOverrides() {
	s.InjectWith(politeGreeter{"hi"})
	s.ClearOverrides()

	s.Len(s.Faker().Substitutes(), 3)
}

func (s *HarnessSuite) TestStubInjectedFake() {
	primary := InjectedFake[greeter](s.Harness, "primary")
	secondary := InjectedFake[greeter](s.Harness, "secondary")
	double.Of(primary).Stub("Greet").Returning("you're just a brain in a vat!")
	double.Of(secondary).Mock("Greet").Returning("Do you feel lucky today?")
	defer s.Verify()

	s.Equal("you're just a brain in a vat!/Do you feel lucky today?", s.Target().Greet("bob"))
}

func (s *HarnessSuite) TestSetupRunsPerTest() {
	s.Positive(s.setups)
}

func TestHarness_Begin(t *testing.T) {
	h := NewHarness[*service](WithRegistry(testRegistry()), Constructors(newService))

	h.Begin(t)
	h.InjectWith(politeGreeter{"hi"})
	first := h.Target()

	h.Begin(t)
	second := h.Target()

	if first == second {
		t.Errorf("Expected a new target after Begin")
	}
	if second.primary == (politeGreeter{"hi"}) {
		t.Errorf("Expected overrides to be reset by Begin")
	}
}

func TestHarness_LateInjectLogsWarning(t *testing.T) {
	tDouble := newTDouble(t)
	logf := tDouble.Spy("Logf")
	fatalf := tDouble.Spy("Fatalf")
	h := NewHarness[*service](WithRegistry(testRegistry()), Constructors(newService))
	h.Begin(tDouble)

	target := h.Target()
	h.InjectWith(politeGreeter{"late"})
	h.ClearOverrides()

	logf.Matching(printed("ignoring override faker.politeGreeter")).Expect(double.Once())
	logf.Matching(printed("ignoring ClearOverrides")).Expect(double.Once())
	fatalf.Expect(double.Never())
	if h.Target() != target {
		t.Errorf("Expected the same target")
	}
}

func TestHarness_NilInjectFailsTest(t *testing.T) {
	tDouble := newTDouble(t)
	fatalf := tDouble.Spy("Fatalf")
	h := NewHarness[*service](WithRegistry(testRegistry()), Constructors(newService))
	h.Begin(tDouble)

	h.InjectWith(nil)

	fatalf.Matching(printed("untyped nil")).Expect(double.Once())
}

func TestHarness_VerifyReportsUnmetMocks(t *testing.T) {
	tDouble := newTDouble(t)
	errorf := tDouble.Spy("Errorf")
	h := NewHarness[*service](WithRegistry(testRegistry()), Constructors(newService))
	h.Begin(tDouble)

	clk := InjectedFake[clock](h)
	double.Of(clk).Mock("Now").Returning(42)
	h.Verify()

	errorf.Expect(double.Once())
}

func TestHarness_TargetDoubleFailsForConcreteTarget(t *testing.T) {
	tDouble := newTDouble(t)
	fatalf := tDouble.Spy("Fatalf")
	h := NewHarness[*service](WithRegistry(testRegistry()), Constructors(newService))
	h.Begin(tDouble)

	h.TargetDouble()

	fatalf.Matching(printed("no double registered for target")).Expect(double.Once())
}

func TestHarness_TargetDouble(t *testing.T) {
	h := NewHarness[greeter](WithRegistry(testRegistry()))
	h.Begin(t)

	h.TargetDouble().Stub("Greet").Returning("stubbed")

	if s := h.Target().Greet("bob"); s != "stubbed" {
		t.Errorf("Expected 'stubbed', Got %s", s)
	}
}

func TestHarness_UsedBeforeBegin(t *testing.T) {
	h := NewHarness[*service](WithRegistry(testRegistry()), Constructors(newService))
	const msg = "faker: Harness used before SetT or Begin"

	tests := map[string]func(){
		"Target":         func() { h.Target() },
		"TargetDouble":   func() { h.TargetDouble() },
		"InjectWith":     func() { h.InjectWith(politeGreeter{"hi"}) },
		"InjectNamed":    func() { h.InjectNamed("primary", politeGreeter{"hi"}) },
		"ClearOverrides": func() { h.ClearOverrides() },
		"Verify":         func() { h.Verify() },
		"InjectedFake":   func() { InjectedFake[clock](h) },
	}

	for name, use := range tests {
		t.Run(name, func(t *testing.T) {
			assert.PanicsWithValue(t, msg, use)
		})
	}
}
