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
	"context"
	"errors"
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedImports

// Load type checks the single package matched by pattern, relative to dir, and looks up the named interfaces.
func Load(ctx context.Context, dir, pattern string, names []string) (*types.Package, []*types.TypeName, error) {
	pkgs, err := packages.Load(&packages.Config{Context: ctx, Dir: dir, Mode: loadMode}, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("doublegen: loading %s: %w", pattern, err)
	}
	if len(pkgs) != 1 {
		return nil, nil, fmt.Errorf("doublegen: pattern %s matched %d packages, expected 1", pattern, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, len(pkg.Errors))
		for i, e := range pkg.Errors {
			errs[i] = e
		}
		return nil, nil, fmt.Errorf("doublegen: loading %s: %w", pattern, errors.Join(errs...))
	}

	ifaces, err := Lookup(pkg.Types, names)
	return pkg.Types, ifaces, err
}

// Lookup finds the named, non generic, interfaces declared in pkg.
func Lookup(pkg *types.Package, names []string) ([]*types.TypeName, error) {
	result := make([]*types.TypeName, 0, len(names))
	for _, name := range names {
		tn, isa := pkg.Scope().Lookup(name).(*types.TypeName)
		if !isa {
			return nil, fmt.Errorf("doublegen: no type %s in %s", name, pkg.Path())
		}
		if !types.IsInterface(tn.Type()) {
			return nil, fmt.Errorf("doublegen: %s.%s is not an interface", pkg.Path(), name)
		}
		if named, isa := tn.Type().(*types.Named); isa && named.TypeParams().Len() > 0 {
			return nil, fmt.Errorf("doublegen: %s.%s is generic, generic interfaces are not supported", pkg.Path(), name)
		}
		result = append(result, tn)
	}
	return result, nil
}
