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
	"sort"
	"strings"
	"sync/atomic"
)

// callOrder orders recorded calls across every double, so After can compare calls to different methods.
var callOrder atomic.Uint64

// SpyMethodCall records every invocation it receives. It matches any arguments.
type SpyMethodCall interface {
	Returning(values ...any) SpyMethodCall
	RecordedCalls
	MethodCall
}

// RecordedCalls is a set of invocations captured by a spy or fake, narrowed for verification.
type RecordedCalls interface {
	// Matching narrows to the calls whose arguments match, using the same rules as StubbedMethodCall.Matching.
	Matching(matchers ...any) RecordedCalls

	// Slice narrows to calls[from:to]. A to beyond the recorded calls is clamped, so
	// r.Slice(r.NumCalls()-3, r.NumCalls()) is the last three calls.
	Slice(from int, to int) RecordedCalls

	// After narrows to the calls invoked after the last of others.
	After(others RecordedCalls) RecordedCalls

	// Expect reports a test error unless the number of calls meets expect.
	Expect(expect Expectation)

	NumCalls() int

	calls() []*recordedCall
	description() string
}

type recordedCall struct {
	seq  uint64
	args []any
}

type spyMethodCall struct {
	*stubbedMethodCall
	recorded []*recordedCall
	desc     string
}

func newSpyMethodCall(m *method) *spyMethodCall {
	return &spyMethodCall{
		stubbedMethodCall: newStubbedMethodCall(m),
		desc:              fmt.Sprintf("all calls to %v", m),
	}
}

// narrow derives a read-only subset described by label over c.
func (c *spyMethodCall) narrow(recorded []*recordedCall, label string) *spyMethodCall {
	return &spyMethodCall{
		stubbedMethodCall: c.stubbedMethodCall,
		recorded:          recorded,
		desc:              label + "\n" + indent(c.desc),
	}
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

func (c *spyMethodCall) String() string {
	return c.desc
}

func (c *spyMethodCall) description() string {
	return c.desc
}

func (c *spyMethodCall) calls() []*recordedCall {
	return c.recorded
}

func (c *spyMethodCall) record(args []any) {
	// callers hold the method mutex
	c.recorded = append(c.recorded, &recordedCall{seq: callOrder.Add(1), args: args})
}

func (c *spyMethodCall) Returning(values ...any) SpyMethodCall {
	c.stubbedMethodCall.Returning(values...)
	return c
}

func (c *spyMethodCall) NumCalls() int {
	return len(c.recorded)
}

func (c *spyMethodCall) Expect(expect Expectation) {
	if n := c.NumCalls(); !expect.Met(n) {
		c.t().Errorf("%v expected %v, found %d calls", c, expect, n)
	}
}

func (c *spyMethodCall) Matching(matchers ...any) RecordedCalls {
	matcher := c.receiver.matcher(c.t(), c.m, nil, matchers...)

	var matched []*recordedCall
	for _, call := range c.recorded {
		if matcher.Matches(call.args...) {
			matched = append(matched, call)
		}
	}
	return c.narrow(matched, fmt.Sprintf("calls matching %s within", matcher))
}

func (c *spyMethodCall) Slice(from int, to int) RecordedCalls {
	if from < 0 || to < from {
		c.t().Fatalf("Invalid Slice of RecordedCalls %v[%d:%d]", c, from, to)
	}
	n := len(c.recorded)
	switch {
	case from > n:
		return c.narrow(nil, fmt.Sprintf("calls [%d>=len():] of", from))
	case to > n:
		return c.narrow(c.recorded[from:], fmt.Sprintf("calls [%d:] of", from))
	default:
		return c.narrow(c.recorded[from:to], fmt.Sprintf("calls [%d:%d] of", from, to))
	}
}

func (c *spyMethodCall) After(others RecordedCalls) RecordedCalls {
	label := "calls after\n" + indent(others.description()) + "\nwithin"

	prior := others.calls()
	if len(prior) == 0 {
		return c.narrow(c.recorded, label)
	}
	last := prior[len(prior)-1].seq
	i := sort.Search(len(c.recorded), func(i int) bool { return c.recorded[i].seq > last })
	return c.narrow(c.recorded[i:], label)
}

func (c *spyMethodCall) matches(_ []any) bool {
	return true
}

func (c *spyMethodCall) spy(args []any) ([]any, error) {
	c.record(args)
	return c.stubbedMethodCall.spy(args)
}
