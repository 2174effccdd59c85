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
	"bytes"
	"fmt"
	"go/token"
	"go/types"
	"path"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

// DoublePackage is the import path of the package generated doubles depend on.
const DoublePackage = "github.com/lwoggardner/autodouble/double"

var fileTemplate = template.Must(template.New("doubles").Parse(`
{{- if .Header}}{{.Header}}
{{end -}}
// Code generated by doublegen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{with .Alias}}{{.}} {{end}}{{.Quoted}}
{{- end}}
)
{{range .Doubles}}
// {{.Double}} is a test double for {{.Interface}}.
type {{.Double}} struct {
	*double.TestDouble
}

// New{{.Double}} returns a double for {{.Interface}}, see double.NewDouble.
func New{{.Double}}(t double.T, configurators ...func(*double.TestDouble)) *{{.Double}} {
	return &{{.Double}}{TestDouble: double.NewDouble(t, (*{{.Interface}})(nil), configurators...)}
}

func init() {
	double.Register[{{.Interface}}](func(t double.T, configurators ...func(*double.TestDouble)) {{.Interface}} {
		return New{{.Double}}(t, configurators...)
	})
}
{{- $double := .Double}}
{{range .Methods}}
func (d *{{$double}}) {{.Name}}({{.Params}}){{.Results}} {
	d.TestDouble.T().Helper()
{{- if .Returns}}
	returns := d.Invoke({{.Args}})
{{- range .Returns}}
	{{.}}
{{- end}}
	return
{{- else}}
	d.Invoke({{.Args}})
{{- end}}
}
{{end}}
{{- end}}`))

type fileModel struct {
	Header  string
	Package string
	Imports []importModel
	Doubles []doubleModel
}

type importModel struct {
	Name string
	Path string
}

func (i importModel) Quoted() string {
	return strconv.Quote(i.Path)
}

// Alias is empty when the package name is the last element of its path.
func (i importModel) Alias() string {
	if i.Name == path.Base(i.Path) {
		return ""
	}
	return i.Name
}

type doubleModel struct {
	Interface string
	Double    string
	Methods   []methodModel
}

type methodModel struct {
	Name    string
	Params  string
	Results string
	Args    string
	Returns []string
}

/*
Render generates the source of doubles for ifaces, in package pkgName at import path pkgPath.

The interfaces may come from another package, which is then imported. pkgPath is empty when
the output package has no known import path, in which case every named type is qualified.
*/
func Render(pkgPath, pkgName string, header []byte, ifaces []*types.TypeName) ([]byte, error) {
	imps := newImportSet(pkgPath)
	imps.add(DoublePackage, "double")

	file := fileModel{Header: strings.TrimRight(string(header), "\n") + "\n", Package: pkgName}
	if len(header) == 0 {
		file.Header = ""
	}

	for _, tn := range ifaces {
		d, err := newDoubleModel(tn, pkgPath, imps)
		if err != nil {
			return nil, err
		}
		file.Doubles = append(file.Doubles, d)
	}
	file.Imports = imps.sorted()

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, file); err != nil {
		return nil, fmt.Errorf("doublegen: rendering: %w", err)
	}

	src, err := imports.Process("doubles_gen.go", buf.Bytes(), &imports.Options{Comments: true, TabIndent: true, TabWidth: 8, FormatOnly: true})
	if err != nil {
		return nil, fmt.Errorf("doublegen: formatting generated source: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}

func newDoubleModel(tn *types.TypeName, pkgPath string, imps *importSet) (doubleModel, error) {
	iface, isa := tn.Type().Underlying().(*types.Interface)
	if !isa || !iface.IsMethodSet() {
		return doubleModel{}, fmt.Errorf("doublegen: %s is not an interface with only methods", tn.Name())
	}

	q := imps.qualifier
	d := doubleModel{
		Interface: types.TypeString(tn.Type(), q),
		Double:    tn.Name() + "Double",
	}

	for i := 0; i < iface.NumMethods(); i++ {
		fn := iface.Method(i)
		if !fn.Exported() && fn.Pkg().Path() != pkgPath {
			return doubleModel{}, fmt.Errorf("doublegen: %s has unexported method %s, the double must be generated in %s",
				tn.Name(), fn.Name(), fn.Pkg().Path())
		}
		d.Methods = append(d.Methods, newMethodModel(fn, q))
	}
	return d, nil
}

func newMethodModel(fn *types.Func, q types.Qualifier) methodModel {
	sig := fn.Type().(*types.Signature)
	m := methodModel{Name: fn.Name()}

	reserved := map[string]bool{"d": true, "returns": true, "double": true}
	for i := 0; i < sig.Results().Len(); i++ {
		reserved[fmt.Sprintf("r%d", i)] = true
	}

	params := make([]string, sig.Params().Len())
	args := []string{strconv.Quote(fn.Name())}
	for i := range params {
		p := sig.Params().At(i)
		name := p.Name()
		if name == "" || name == "_" || reserved[name] || token.IsKeyword(name) {
			name = fmt.Sprintf("p%d", i)
		}
		reserved[name] = true

		typ := types.TypeString(p.Type(), q)
		if sig.Variadic() && i == len(params)-1 {
			typ = "..." + types.TypeString(p.Type().(*types.Slice).Elem(), q)
		}
		params[i] = name + " " + typ
		args = append(args, name)
	}
	m.Params = strings.Join(params, ", ")
	m.Args = strings.Join(args, ", ")

	if n := sig.Results().Len(); n > 0 {
		results := make([]string, n)
		for i := range results {
			typ := types.TypeString(sig.Results().At(i).Type(), q)
			results[i] = fmt.Sprintf("r%d %s", i, typ)
			m.Returns = append(m.Returns, fmt.Sprintf("r%d, _ = returns[%d].(%s)", i, i, typ))
		}
		m.Results = " (" + strings.Join(results, ", ") + ")"
	}
	return m
}
