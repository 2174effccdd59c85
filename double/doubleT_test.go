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
	"regexp"
	"testing"
)

// TDouble stands in for the T a double reports to, so tests can assert on failures.
type TDouble struct {
	*TestDouble
}

var _ T = (*TDouble)(nil)

func NewTDouble(t *testing.T, configs ...func(c *TestDouble)) *TDouble {
	return &TDouble{NewDouble(t, (*T)(nil), configs...)}
}

func (d *TDouble) Errorf(format string, args ...any) {
	d.T().Helper()
	d.Invoke("Errorf", format, args)
}

func (d *TDouble) Fatalf(format string, args ...any) {
	d.T().Helper()
	d.Invoke("Fatalf", format, args)
}

func (d *TDouble) Logf(format string, args ...any) {
	d.T().Helper()
	d.Invoke("Logf", format, args)
}

func (d *TDouble) Helper() {
	d.T().Helper()
	d.Invoke("Helper")
}

// FakeFatalf stops the caller the way testing.T.FailNow would, with a recoverable panic.
func (d *TDouble) FakeFatalf(format string, args ...any) {
	d.T().Helper()
	panic(fmt.Errorf(format, args...))
}

// printfMatcher matches Errorf, Fatalf or Logf calls whose formatted message matches re.
func printfMatcher(re string) Matcher {
	exp := regexp.MustCompile(re)
	return Func(func(format string, args ...any) bool {
		return exp.MatchString(fmt.Sprintf(format, args...))
	}, fmt.Sprintf("/%s/", re))
}

// expectFatal runs exercise against a TDouble and checks it failed fatally exactly once with a
// message matching re.
func expectFatal(t *testing.T, re string, exercise func(d *TDouble)) {
	t.Helper()
	d := NewTDouble(t)
	fatal := d.Fake("Fatalf", d.FakeFatalf)
	defer func() {
		recover()
		fatal.Matching(printfMatcher(re)).Expect(Once())
	}()
	exercise(d)
}
