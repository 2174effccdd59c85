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

package doublegen

import (
	"go/types"
	"sort"
	"strconv"
)

// importSet assigns unique names to the packages referenced by generated code.
type importSet struct {
	self   string
	byPath map[string]string
	names  map[string]bool
}

func newImportSet(self string) *importSet {
	return &importSet{self: self, byPath: map[string]string{}, names: map[string]bool{}}
}

func (s *importSet) add(path, name string) string {
	if existing, found := s.byPath[path]; found {
		return existing
	}
	unique := name
	for i := 2; s.names[unique]; i++ {
		unique = name + strconv.Itoa(i)
	}
	s.byPath[path] = unique
	s.names[unique] = true
	return unique
}

func (s *importSet) qualifier(pkg *types.Package) string {
	if pkg.Path() == s.self {
		return ""
	}
	return s.add(pkg.Path(), pkg.Name())
}

func (s *importSet) sorted() []importModel {
	result := make([]importModel, 0, len(s.byPath))
	for path, name := range s.byPath {
		result = append(result, importModel{Name: name, Path: path})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}
