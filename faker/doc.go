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

/*
Package faker builds a system under test with its dependencies substituted by doubles.

Given a target type S and its constructors, a Faker selects the constructor with the most
parameters and resolves each parameter in turn:

  - an Override registered by the test, matched by type and optionally by parameter name
  - a Loose double from the double.Registry, for any type with a registered double
  - a new value for other pointer, func, map and chan parameters
  - the zero value for everything else

Synthesized values are recorded so the test can configure and verify them after the target is built.

	f := faker.New[*examples.Confucious](t, faker.Constructors(examples.NewConfucious))
	f.OverrideNamed("movieQuoteGenerator", examples.CowQuoteGenerator{})

	philosopher := faker.MustInjected[examples.QuoteGenerator](f, "philosophicalQuoteGenerator")
	double.Of(philosopher).Stub("SaySomething").Returning("you're just a brain in a vat!")

	words := f.MustFake().ImpartWiseWordsOfWisdom()

The target is built once, on the first call to Fake or to any lookup of injected substitutes.

Harness wraps a Faker per test case for testify suites.
*/
package faker
