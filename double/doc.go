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
Package double provides the substitutes that the faker package injects into a system under test.

A double is a struct that embeds *TestDouble and implements an interface by sending every method call
to Invoke. Doubles are written by hand or generated with cmd/doublegen, and make themselves available
for automatic injection by registering a factory:

	func init() {
		double.Register[QuoteGenerator](func(t double.T, configs ...func(*double.TestDouble)) QuoteGenerator {
			return NewQuoteGeneratorDouble(t, configs...)
		})
	}

Each method of a double can then be Stubbed, Mocked, Spied upon or Faked.

# Stubs, Mocks, Spies, Fakes

A Stub provides specific return values for a matching call to the method.

	d := NewQuoteGeneratorDouble(t)
	d.Stub("SaySomething").Returning("MOOOOOO!")

A Mock is a Stub with an up-front expectation for how many times it will be called, checked by Verify.

	defer d.Verify()
	d.Mock("SaySomething").Returning("MOOOOOO!").Expect(Twice())

A Spy records all calls to a method so they can be verified after exercising the system under test.

	spy := d.Spy("SaySomething")
	// exercise...
	spy.Expect(Once())

A Fake installs an implementation for the method, and records calls as per Spy.

	d.Fake("SaySomething", func() string { return "RROOOOOOAAAAARRRR!" })

# Loose and partial doubles

NewDouble builds a strict double: a method that was not configured is a Mock that never expects to be
called. The Loose configurator instead answers unconfigured calls with zero values (recording them in a
Spy), which is how injected dependencies are created. The Forwarding configurator sends unconfigured
calls to a real implementation, producing a partial double over a real value.
*/
package double
