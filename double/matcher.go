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
	"strings"
)

// Matcher decides whether an invocation, or a single argument of one, is accepted.
type Matcher interface {
	Matches(args ...any) bool
}

// MethodArgsMatcher matches the full argument list of a method.
type MethodArgsMatcher interface {
	Matcher
	// ForMethod fatally fails t if the matcher cannot be applied to the arguments of m.
	ForMethod(t T, m reflect.Method)
}

// SingleArgMatcher matches one argument.
type SingleArgMatcher interface {
	Matcher
	// ForType fatally fails t if the matcher cannot be applied to an argument of type ft.
	ForType(t T, ft reflect.Type)
}

// CombinationMatcher can be used as either a MethodArgsMatcher or a SingleArgMatcher.
type CombinationMatcher interface {
	Matcher
	ForMethod(t T, m reflect.Method)
	ForType(t T, ft reflect.Type)
}

func checkMethod(t T, m reflect.Method, matcher Matcher) {
	t.Helper()
	ma, ok := matcher.(MethodArgsMatcher)
	if !ok {
		t.Fatalf("Cannot use %v as MethodArgsMatcher", matcher)
		return
	}
	ma.ForMethod(t, m)
}

func checkType(t T, ft reflect.Type, matcher Matcher) {
	t.Helper()
	sa, ok := matcher.(SingleArgMatcher)
	if !ok {
		t.Fatalf("Cannot use %v as SingleArgMatcher for %v", matcher, ft)
		return
	}
	sa.ForType(t, ft)
}

// argMatcher converts a value given for one argument: matchers are kept, a reflect.Type becomes IsA,
// a func becomes Func and anything else is compared with Eql.
func argMatcher(v any) SingleArgMatcher {
	if m, ok := v.(SingleArgMatcher); ok {
		return m
	}
	if rt, ok := v.(reflect.Type); ok {
		return IsA(rt)
	}
	if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
		return Func(v)
	}
	return Eql(v)
}

// NewMatcherForMethod builds and validates the matcher described by matchers for method m.
// See StubbedMethodCall.Matching for the accepted forms. No matchers matches everything.
func NewMatcherForMethod(t T, m reflect.Method, matchers ...any) MethodArgsMatcher {
	t.Helper()
	if m.Type.NumIn() == 0 {
		t.Fatalf("Cannot build matcher for %v which takes no arguments", m)
	}
	if len(matchers) == 0 {
		return All()
	}

	var result MethodArgsMatcher
	first := matchers[0]
	switch {
	case first != nil && reflect.TypeOf(first).Kind() == reflect.Func:
		result = Func(first, matchers[1:]...)
	case len(matchers) == 1:
		if ma, ok := first.(MethodArgsMatcher); ok {
			result = ma
		} else {
			result = Args(argMatcher(first))
		}
	default:
		perArg := make([]Matcher, len(matchers))
		for i, v := range matchers {
			perArg[i] = argMatcher(v)
		}
		result = Args(perArg...)
	}

	result.ForMethod(t, m)
	return result
}

type funcMatcher struct {
	fn   reflect.Value
	desc string
}

// Func adapts the predicate f into a matcher.
//
// Used for a method, f must accept the method's arguments and return bool. Used for a single
// argument, f must be a func(X) bool where the argument is assignable to X. The description, if
// given, is formatted with fmt.Sprint; otherwise the type of f describes it.
func Func(f any, description ...any) CombinationMatcher {
	desc := fmt.Sprintf("%T", f)
	if len(description) > 0 {
		desc = fmt.Sprint(description...)
	}
	return funcMatcher{reflect.ValueOf(f), desc}
}

func (f funcMatcher) String() string {
	return f.desc
}

func (f funcMatcher) isPredicate(arity int) bool {
	ft := f.fn.Type()
	if ft.Kind() != reflect.Func || ft.NumOut() != 1 || ft.Out(0).Kind() != reflect.Bool {
		return false
	}
	return arity < 0 || ft.NumIn() == arity
}

func (f funcMatcher) ForMethod(t T, m reflect.Method) {
	t.Helper()
	if !f.isPredicate(-1) {
		t.Fatalf("expected Func(...) bool, have %v", f.fn.Type())
		return
	}
	AssertMethodInputs(t, m, f.fn.Type())
}

func (f funcMatcher) ForType(t T, in reflect.Type) {
	t.Helper()
	ft := f.fn.Type()
	if !f.isPredicate(1) {
		t.Fatalf("%v expected to be a function that accepts 1 argument and returns bool, got %v", f, ft)
		return
	}
	if !in.AssignableTo(ft.In(0)) {
		t.Fatalf("Argument to %v expected to be assignable from %v, got %v", f, in, ft.In(0))
	}
}

func (f funcMatcher) Matches(args ...any) bool {
	ft := f.fn.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(ft.In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	call := f.fn.Call
	if ft.IsVariadic() {
		call = f.fn.CallSlice
	}
	return call(in)[0].Bool()
}

// group is an ordered list of matchers shared by the composite matchers.
type group []Matcher

func (g group) describe(name string, open, close string) string {
	if len(g) == 0 {
		return name
	}
	parts := make([]string, len(g))
	for i, m := range g {
		parts[i] = fmt.Sprint(m)
	}
	return name + open + strings.Join(parts, ",") + close
}

func (g group) ForMethod(t T, m reflect.Method) {
	t.Helper()
	for _, matcher := range g {
		checkMethod(t, m, matcher)
	}
}

func (g group) ForType(t T, ft reflect.Type) {
	t.Helper()
	for _, matcher := range g {
		checkType(t, ft, matcher)
	}
}

type argsMatcher struct {
	perArg group
}

// Args matches each argument of a method with the matcher at the same position. Surplus matchers
// for a variadic method are collected into a Slice matcher over the variadic argument.
func Args(matchers ...Matcher) MethodArgsMatcher {
	return &argsMatcher{matchers}
}

func (a *argsMatcher) String() string {
	return a.perArg.describe("Args", "(", ")")
}

func (a *argsMatcher) Matches(args ...any) bool {
	for i := 0; i < len(a.perArg) && i < len(args); i++ {
		if !a.perArg[i].Matches(args[i]) {
			return false
		}
	}
	return true
}

func (a *argsMatcher) ForMethod(t T, m reflect.Method) {
	t.Helper()
	mt := m.Type
	n := mt.NumIn()

	switch {
	case mt.IsVariadic() && len(a.perArg) > n-1:
		collapsed := make(group, n)
		copy(collapsed, a.perArg[:n-1])
		collapsed[n-1] = Slice(a.perArg[n-1:]...)
		a.perArg = collapsed
	case !mt.IsVariadic() && len(a.perArg) > n:
		t.Fatalf("%v requires not more than %d argument matchers, have %d", m, n, len(a.perArg))
		return
	}

	for i, matcher := range a.perArg {
		checkType(t, mt.In(i), matcher)
	}
}

type sliceMatcher struct {
	elems group
}

// Slice matches a slice or array argument whose leading elements match each of matchers in turn.
func Slice(matchers ...Matcher) SingleArgMatcher {
	return &sliceMatcher{matchers}
}

func (s *sliceMatcher) String() string {
	return s.elems.describe("Slice", "[", "]")
}

func (s *sliceMatcher) Matches(args ...any) bool {
	v := reflect.ValueOf(args[0])
	if k := v.Kind(); k != reflect.Slice && k != reflect.Array {
		return false
	}
	if v.Len() < len(s.elems) {
		return false
	}
	for i, elem := range s.elems {
		if !elem.Matches(v.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func (s *sliceMatcher) ForType(t T, in reflect.Type) {
	t.Helper()
	if k := in.Kind(); k != reflect.Slice && k != reflect.Array {
		t.Fatalf("Slice() used to match non slice or array type %v", in)
		return
	}
	s.elems.ForType(t, in.Elem())
}

// Eql matches an argument that is reflect.DeepEqual to v.
func Eql(v any) SingleArgMatcher {
	return Func(func(arg any) bool {
		return reflect.DeepEqual(arg, v)
	}, "Eql(", v, ")")
}

// Same matches an argument holding the identical pointer, map, chan or func as v, for example to
// check an override was handed on to a collaborator unchanged.
func Same(v any) SingleArgMatcher {
	want := reflect.ValueOf(v)
	return Func(func(arg any) bool {
		got := reflect.ValueOf(arg)
		if !got.IsValid() || !want.IsValid() || got.Type() != want.Type() {
			return false
		}
		switch got.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
			return got.Pointer() == want.Pointer()
		default:
			return false
		}
	}, "Same(", fmt.Sprintf("%p", v), ")")
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return true
	default:
		return false
	}
}

type nilMatcher struct{}

// Nil matches an untyped nil or a nil value of any nilable type.
func Nil() SingleArgMatcher {
	return nilMatcher{}
}

func (nilMatcher) String() string {
	return "Nil"
}

func (nilMatcher) Matches(args ...any) bool {
	if args[0] == nil {
		return true
	}
	v := reflect.ValueOf(args[0])
	return nilable(v.Kind()) && v.IsNil()
}

func (nilMatcher) ForType(t T, ft reflect.Type) {
	t.Helper()
	if !nilable(ft.Kind()) {
		t.Fatalf("type %v cannot be nil", ft)
	}
}

// IsA matches an argument whose dynamic type is assignable to t, which for an interface means it
// implements t. A t that is not a reflect.Type stands for its own type.
func IsA(t any) SingleArgMatcher {
	rt, ok := t.(reflect.Type)
	if !ok {
		rt = reflect.TypeOf(t)
	}
	return Func(func(x any) bool {
		xt := reflect.TypeOf(x)
		return xt != nil && xt.AssignableTo(rt)
	}, "IsA(", rt, ")")
}

type allMatcher struct{ group }

// All matches when every one of matchers matches, so All() matches everything.
func All(matchers ...Matcher) CombinationMatcher {
	return allMatcher{matchers}
}

func (a allMatcher) String() string {
	return a.describe("All", "{", "}")
}

func (a allMatcher) Matches(args ...any) bool {
	for _, m := range a.group {
		if !m.Matches(args...) {
			return false
		}
	}
	return true
}

type anyMatcher struct{ group }

// Any matches when at least one of matchers matches, so Any() matches nothing.
func Any(matchers ...Matcher) CombinationMatcher {
	return anyMatcher{matchers}
}

func (a anyMatcher) String() string {
	return a.describe("Any", "{", "}")
}

func (a anyMatcher) Matches(args ...any) bool {
	for _, m := range a.group {
		if m.Matches(args...) {
			return true
		}
	}
	return false
}

type notMatcher struct {
	inner Matcher
}

// Not inverts matcher.
func Not(matcher Matcher) CombinationMatcher {
	return notMatcher{matcher}
}

func (n notMatcher) String() string {
	return fmt.Sprintf("Not(%v)", n.inner)
}

func (n notMatcher) Matches(args ...any) bool {
	return !n.inner.Matches(args...)
}

func (n notMatcher) ForType(t T, ft reflect.Type) {
	t.Helper()
	checkType(t, ft, n.inner)
}

func (n notMatcher) ForMethod(t T, m reflect.Method) {
	t.Helper()
	checkMethod(t, m, n.inner)
}
