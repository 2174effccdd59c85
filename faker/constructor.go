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
	"runtime"
	"strings"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

/*
A Constructor is a func that builds the target, with the names of its parameters.

The func returns the target, or the target and an error. Any type assignable to the target is
accepted, so a constructor returning *Impl can build an interface target.
*/
type Constructor struct {
	fn    reflect.Value
	names []string
	label string
}

/*
Ctor declares a constructor with explicit parameter names.

Names are otherwise discovered from the constructor's source, which is not available for
binaries built with -trimpath or for method values. Use Ctor when named overrides must
match in those cases.

	faker.Constructors(faker.Ctor(NewConfucious, "philosophicalQuoteGenerator", "movieQuoteGenerator"))
*/
func Ctor(fn any, names ...string) *Constructor {
	return &Constructor{fn: reflect.ValueOf(fn), names: names}
}

func asConstructor(c any) *Constructor {
	if ctor, isa := c.(*Constructor); isa && ctor != nil {
		return ctor
	}
	return &Constructor{fn: reflect.ValueOf(c)}
}

// validate checks c can build target and settles its parameter names.
func (c *Constructor) validate(target reflect.Type) error {
	invalid := func(format string, args ...any) error {
		return &InvalidConstructorError{Target: target, Constructor: c.String(), Reason: fmt.Sprintf(format, args...)}
	}

	if !c.fn.IsValid() || c.fn.Kind() != reflect.Func {
		return invalid("not a func")
	}
	if c.fn.IsNil() {
		return invalid("nil func")
	}

	ft := c.fn.Type()
	switch ft.NumOut() {
	case 2:
		if ft.Out(1) != errorType {
			return invalid("second result must be error, not %v", ft.Out(1))
		}
		fallthrough
	case 1:
		if !ft.Out(0).AssignableTo(target) {
			return invalid("result %v is not assignable to %v", ft.Out(0), target)
		}
	default:
		return invalid("must return the target, optionally followed by an error")
	}

	switch {
	case c.names == nil:
		c.names = paramNames(c.fn)
	case len(c.names) != ft.NumIn():
		return invalid("declared %d parameter names for %d parameters", len(c.names), ft.NumIn())
	}
	return nil
}

// NumIn is the number of parameters the constructor takes.
func (c *Constructor) NumIn() int {
	return c.fn.Type().NumIn()
}

// Param returns the declared type and name of parameter i. The name is empty if it is unknown.
func (c *Constructor) Param(i int) (reflect.Type, string) {
	var name string
	if i < len(c.names) {
		name = c.names[i]
	}
	return c.fn.Type().In(i), name
}

func (c *Constructor) String() string {
	if c.label != "" {
		return c.label
	}
	c.label = "<invalid>"
	if c.fn.IsValid() && c.fn.Kind() == reflect.Func && !c.fn.IsNil() {
		name := "func"
		if f := runtime.FuncForPC(c.fn.Pointer()); f != nil {
			name = f.Name()
			if i := strings.LastIndex(name, "/"); i >= 0 {
				name = name[i+1:]
			}
		}
		c.label = name + strings.TrimPrefix(c.fn.Type().String(), "func")
	}
	return c.label
}

// call invokes the constructor, converting a returned error or a panic into a ConstructionError.
func (c *Constructor) call(target reflect.Type, args []reflect.Value) (result reflect.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &ConstructionError{Target: target, Constructor: c.String(), Err: panicError(p)}
		}
	}()

	var out []reflect.Value
	if c.fn.Type().IsVariadic() {
		out = c.fn.CallSlice(args)
	} else {
		out = c.fn.Call(args)
	}

	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, &ConstructionError{Target: target, Constructor: c.String(), Err: out[1].Interface().(error)}
	}

	result = reflect.New(target).Elem()
	result.Set(out[0])
	if target.Kind() == reflect.Interface && result.IsNil() {
		return reflect.Value{}, &ConstructionError{Target: target, Constructor: c.String(), Err: errNilResult}
	}
	return result, nil
}

var errNilResult = errors.New("returned nil")

func panicError(p any) error {
	if err, isa := p.(error); isa {
		return err
	}
	return fmt.Errorf("panic: %v", p)
}
