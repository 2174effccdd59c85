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
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrAlreadyBuilt is returned when overrides are changed after the target has been built.
	ErrAlreadyBuilt = errors.New("faker: target already built, overrides are no longer consulted")

	// ErrNilOverride is returned for an untyped nil override, which has no type to match a parameter with.
	ErrNilOverride = errors.New("faker: cannot override with untyped nil")
)

// NoConstructorError is returned when there is no constructor for a target that requires one.
type NoConstructorError struct {
	Target reflect.Type
}

func (e *NoConstructorError) Error() string {
	if e.Target.Kind() == reflect.Interface {
		return fmt.Sprintf("faker: no constructor and no registered double for %v", e.Target)
	}
	return fmt.Sprintf("faker: no constructor for %v", e.Target)
}

// AmbiguousConstructorError is returned when more than one constructor shares the maximum parameter count.
type AmbiguousConstructorError struct {
	Target     reflect.Type
	Arity      int
	Candidates []string
}

func (e *AmbiguousConstructorError) Error() string {
	return fmt.Sprintf("faker: %d constructors for %v take %d parameters: %s",
		len(e.Candidates), e.Target, e.Arity, strings.Join(e.Candidates, ", "))
}

// InvalidConstructorError is returned for a constructor that cannot build the target.
type InvalidConstructorError struct {
	Target      reflect.Type
	Constructor string
	Reason      string
}

func (e *InvalidConstructorError) Error() string {
	return fmt.Sprintf("faker: invalid constructor %s for %v: %s", e.Constructor, e.Target, e.Reason)
}

// SynthesisError is returned for a parameter that has no override and cannot be substituted.
type SynthesisError struct {
	Type   reflect.Type
	Name   string
	Reason string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("faker: cannot synthesize %s: %s", describe(e.Type, e.Name), e.Reason)
}

// NotFoundError is returned when no injected substitute matches a lookup.
type NotFoundError struct {
	Type reflect.Type
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("faker: no injected substitute for %s", describe(e.Type, e.Name))
}

// AmbiguousSubstituteError is returned when a lookup matches more than one injected substitute.
type AmbiguousSubstituteError struct {
	Type  reflect.Type
	Name  string
	Count int
}

func (e *AmbiguousSubstituteError) Error() string {
	return fmt.Sprintf("faker: %d injected substitutes for %s, lookup by parameter name", e.Count, describe(e.Type, e.Name))
}

// ConstructionError wraps an error returned, or a panic raised, by the selected constructor. A panic
// raised elsewhere while building the target, for example by a double factory, has no Constructor.
type ConstructionError struct {
	Target      reflect.Type
	Constructor string
	Err         error
}

func (e *ConstructionError) Error() string {
	if e.Constructor == "" {
		return fmt.Sprintf("faker: building %v failed: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("faker: constructor %s for %v failed: %v", e.Constructor, e.Target, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func describe(t reflect.Type, name string) string {
	if name == "" {
		return fmt.Sprint(t)
	}
	return fmt.Sprintf("%v %q", t, name)
}
