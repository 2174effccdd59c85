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
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

var paramNameCache sync.Map // entry pc -> []string

/*
paramNames discovers the parameter names of fn from its source file.

The func is located via the runtime's record of its entry line, which is the line of its func
keyword. Names that cannot be found are empty, which only matters for named overrides.
*/
func paramNames(fn reflect.Value) []string {
	pc := fn.Pointer()
	if cached, found := paramNameCache.Load(pc); found {
		return cached.([]string)
	}
	names := parseParamNames(pc, fn.Type().NumIn())
	paramNameCache.Store(pc, names)
	return names
}

func parseParamNames(pc uintptr, numIn int) []string {
	names := make([]string, numIn)

	f := runtime.FuncForPC(pc)
	if f == nil {
		return names
	}
	file, line := f.FileLine(f.Entry())
	if file == "" {
		return names
	}

	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, file, nil, parser.SkipObjectResolution)
	if err != nil {
		return names
	}

	declName := shortFuncName(f.Name())
	var found *ast.FuncType
	ast.Inspect(parsed, func(n ast.Node) bool {
		if found != nil || n == nil {
			return false
		}
		var ft *ast.FuncType
		var body *ast.BlockStmt
		switch fn := n.(type) {
		case *ast.FuncDecl:
			if fn.Recv != nil || fn.Name.Name != declName {
				return true
			}
			ft, body = fn.Type, fn.Body
		case *ast.FuncLit:
			ft, body = fn.Type, fn.Body
		default:
			return true
		}
		if !spans(fset, ft.Pos(), body, line) {
			return true
		}
		if countParams(ft) == numIn {
			found = ft
		}
		return true
	})
	if found == nil {
		return names
	}

	i := 0
	for _, field := range found.Params.List {
		if len(field.Names) == 0 {
			i++
			continue
		}
		for _, ident := range field.Names {
			if ident.Name != "_" {
				names[i] = ident.Name
			}
			i++
		}
	}
	return names
}

// shortFuncName strips the package path and any type parameters from a runtime func name.
func shortFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// spans reports whether line falls between the func keyword and the opening brace of body.
func spans(fset *token.FileSet, start token.Pos, body *ast.BlockStmt, line int) bool {
	if body == nil {
		return false
	}
	return fset.Position(start).Line <= line && line <= fset.Position(body.Lbrace).Line
}

func countParams(ft *ast.FuncType) int {
	if ft.Params == nil {
		return 0
	}
	return ft.Params.NumFields()
}
