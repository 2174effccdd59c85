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

import "fmt"

// Expectation checks the number of times a call was invoked.
type Expectation interface {
	Met(count int) bool
}

// Completion is an Expectation with an upper bound. A mocked call whose Completion is complete stops
// matching further invocations, so they fall through to the next configured call.
type Completion interface {
	Expectation
	Complete(count int) bool
}

// unbounded has no upper limit and so never completes.
type unbounded struct {
	min  int
	none bool
}

func (u unbounded) Met(count int) bool {
	if u.none {
		return count == 0
	}
	return count >= u.min
}

func (u unbounded) String() string {
	if u.none {
		return "never"
	}
	return fmt.Sprintf("at least %d", u.min)
}

type bounded struct {
	min, max int
}

func (b bounded) Met(count int) bool {
	return b.min <= count && count <= b.max
}

func (b bounded) Complete(count int) bool {
	return count >= b.max
}

func (b bounded) String() string {
	switch {
	case b.min == b.max:
		return fmt.Sprintf("exactly %d", b.max)
	case b.min <= 0:
		return fmt.Sprintf("at most %d", b.max)
	default:
		return fmt.Sprintf("between %d and %d", b.min, b.max)
	}
}

// Exactly expects n invocations, and is complete once they have happened.
func Exactly(n int) Completion {
	return bounded{n, n}
}

func Once() Completion {
	return Exactly(1)
}

func Twice() Completion {
	return Exactly(2)
}

// Never expects no invocations. It is not a Completion: a Never mock keeps matching, so unexpected
// calls are counted and then reported by Verify.
func Never() Expectation {
	return unbounded{none: true}
}

func AtLeast(n int) Expectation {
	return unbounded{min: n}
}

// AtMost allows up to n invocations, and is complete at n.
func AtMost(n int) Completion {
	return Between(0, n)
}

// Between expects from min to max invocations inclusive, and is complete at max.
func Between(min int, max int) Completion {
	return bounded{min, max}
}
