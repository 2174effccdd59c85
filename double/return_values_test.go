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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnValues(t *testing.T) {
	lookup := ledgerMethod(t, "lookup")
	reset := ledgerMethod(t, "reset")
	store := ledgerMethod(t, "store")
	failed := errors.New("failed")

	tests := map[string]struct {
		values ReturnValues
		method string
		want   []any
	}{
		"SingleValue":    {Values(10), "lookup", []any{10}},
		"MultipleValues": {Values(10, failed), "store", []any{10, failed}},
		"UntypedNil":     {Values(10, nil), "store", []any{10, nil}},
		"NoValues":       {Values(), "reset", nil},
		"ZeroValues":     {ZeroValues(lookup.Type), "lookup", []any{0}},
		"NoZeroValues":   {ZeroValues(reset.Type), "reset", nil},
		"ZeroError":      {ZeroValues(store.Type), "store", []any{0, nil}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rv := NewReturnsForMethod(t, ledgerMethod(t, tt.method), tt.values)
			got, err := rv.Receive()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewReturnsForMethod_FailsFatallyForIncompatibleValues(t *testing.T) {
	tests := map[string]struct {
		values []any
		msg    string
	}{
		"WrongType": {[]any{"astring"}, "int.*string"},
		"TooFew":    {[]any{}, "expects.* 1.*found 0"},
		"TooMany":   {[]any{10, "extra"}, "expects.* 1.*found 2"},
		"Sequence":  {[]any{Sequence(Values(1), Values("two"))}, "int.*string"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			expectFatal(t, tt.msg, func(td *TDouble) {
				NewReturnsForMethod(td, ledgerMethod(t, "lookup"), tt.values...)
				t.Errorf("expected unreachable")
			})
		})
	}
}

func TestSequence(t *testing.T) {
	rv := NewReturnsForMethod(t, ledgerMethod(t, "lookup"), Sequence(Values(1), Values(2)))

	for _, want := range []int{1, 2} {
		got, err := rv.Receive()
		require.NoError(t, err)
		assert.Equal(t, []any{want}, got)
	}

	_, err := rv.Receive()
	assert.ErrorIs(t, err, ErrValuesExhausted)
}
