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
	"errors"
	"fmt"
	"reflect"
)

// ErrValuesExhausted is returned by a Sequence that has already supplied all of its values.
var ErrValuesExhausted = errors.New("no available values")

// ReturnValues supplies the results of an invocation. An error fails the test fatally.
type ReturnValues interface {
	Receive() ([]any, error)
}

// ValidatingReturnValues is checked against the method when it is configured, rather than when it is invoked.
type ValidatingReturnValues interface {
	ReturnValues
	ForMethod(t T, method reflect.Method)
}

// NewReturnsForMethod converts values into ReturnValues for m and validates them. A single
// ReturnValues is used as is, anything else is treated as a list of Values.
func NewReturnsForMethod(t T, m reflect.Method, values ...any) ReturnValues {
	t.Helper()
	var rv ReturnValues = fixedValues(values)
	if len(values) == 1 {
		if given, ok := values[0].(ReturnValues); ok {
			rv = given
		}
	}
	if v, ok := rv.(ValidatingReturnValues); ok {
		v.ForMethod(t, m)
	}
	return rv
}

type zeroValues []reflect.Type

// ZeroValues returns the zero value of every output of funcType, for every invocation.
func ZeroValues(funcType reflect.Type) ReturnValues {
	var outs zeroValues
	for i := 0; i < funcType.NumOut(); i++ {
		outs = append(outs, funcType.Out(i))
	}
	return outs
}

func (z zeroValues) Receive() ([]any, error) {
	if len(z) == 0 {
		return nil, nil
	}
	results := make([]any, len(z))
	for i, rt := range z {
		results[i] = reflect.Zero(rt).Interface()
	}
	return results, nil
}

type fixedValues []any

// Values returns the same values for every invocation.
func Values(values ...any) ReturnValues {
	return fixedValues(values)
}

func (v fixedValues) Receive() ([]any, error) {
	return v, nil
}

func (v fixedValues) ForMethod(t T, m reflect.Method) {
	t.Helper()
	AssertMethodReturnValues(t, m, v)
}

type sequence struct {
	steps []ReturnValues
	next  int
}

// Sequence answers each invocation from the next of steps. Once they are used up, further
// invocations fail the test with ErrValuesExhausted.
func Sequence(steps ...ReturnValues) ReturnValues {
	return &sequence{steps: steps}
}

func (s *sequence) Receive() ([]any, error) {
	if s.next >= len(s.steps) {
		return nil, fmt.Errorf("after %d calls: %w", len(s.steps), ErrValuesExhausted)
	}
	step := s.steps[s.next]
	s.next++
	return step.Receive()
}

func (s *sequence) ForMethod(t T, m reflect.Method) {
	t.Helper()
	for _, step := range s.steps {
		if v, ok := step.(ValidatingReturnValues); ok {
			v.ForMethod(t, m)
		}
	}
}
