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
	"testing"
)

var exportedIface = reflect.TypeOf((*exported)(nil)).Elem()

func newExportedDouble(t T, configs ...func(*TestDouble)) exported {
	return &exportedDouble{NewDouble(t, (*exported)(nil), configs...)}
}

func TestRegistry_New(t *testing.T) {
	r := NewRegistry()
	if r.Registered(exportedIface) {
		t.Fatalf("Expected empty registry")
	}
	if _, found := r.New(t, exportedIface); found {
		t.Fatalf("Expected no double from empty registry")
	}

	RegisterWith(r, newExportedDouble)
	if !r.Registered(exportedIface) {
		t.Fatalf("Expected %v to be registered", exportedIface)
	}

	d, found := r.New(t, exportedIface, Loose())
	if !found {
		t.Fatalf("Expected a double for %v", exportedIface)
	}
	e, isa := d.(exported)
	if !isa {
		t.Fatalf("Expected %T to implement exported", d)
	}
	if i := e.Lookup("x"); i != 0 {
		t.Errorf("Expected Loose double to return 0, Got %d", i)
	}
	Of(d).Spy("Lookup").Expect(Once())
}

func TestRegistry_New_FailsFatallyForBadFactory(t *testing.T) {
	r := NewRegistry()
	r.Add(exportedIface, func(t T, _ ...func(*TestDouble)) any {
		return "not a double"
	})
	expectFatal(t, `does not implement`, func(td *TDouble) {
		r.New(td, exportedIface)
		t.Errorf("expected unreachable")
	})
}

func TestRegisterWith_PanicsForNonInterface(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic")
		}
	}()
	RegisterWith(NewRegistry(), func(t T, _ ...func(*TestDouble)) string { return "" })
}
