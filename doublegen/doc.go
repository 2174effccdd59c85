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
Package doublegen generates doubles for interfaces.

A generated double embeds *double.TestDouble, implements each interface method by calling Invoke, and
registers a factory with double.Register from an init func, which makes it available to the faker
package for automatic injection.

Interfaces are loaded with golang.org/x/tools/go/packages. Jobs can be listed in a YAML file:

	doubles:
	  - pattern: ./examples
	    interfaces: [QuoteGenerator, Imdb]
	    output: examples/doubles_gen.go
	    header: hack/boilerplate.go.txt
*/
package doublegen
