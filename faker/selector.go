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
	"reflect"
)

/*
selectConstructor chooses the constructor with the most parameters.

Every constructor is validated, including those that would not be chosen. A tie for the most
parameters is an AmbiguousConstructorError.
*/
func selectConstructor(target reflect.Type, ctors []*Constructor) (*Constructor, error) {
	if len(ctors) == 0 {
		return nil, &NoConstructorError{Target: target}
	}

	var selected []*Constructor
	arity := -1
	for _, c := range ctors {
		if err := c.validate(target); err != nil {
			return nil, err
		}
		switch n := c.NumIn(); {
		case n > arity:
			arity = n
			selected = []*Constructor{c}
		case n == arity:
			selected = append(selected, c)
		}
	}

	if len(selected) > 1 {
		candidates := make([]string, len(selected))
		for i, c := range selected {
			candidates[i] = c.String()
		}
		return nil, &AmbiguousConstructorError{Target: target, Arity: arity, Candidates: candidates}
	}
	return selected[0], nil
}
