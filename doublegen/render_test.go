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
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiSource = `package api

import "io"

type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, r io.Reader) error
	Keys(prefix string, limit ...int) []string
	Close()
	unexported(d int, returns string) (count int)
}

type Reader interface {
	io.Reader
	Peek(int) byte
}

type NotAnInterface struct{}

type Generic[T any] interface {
	Get() T
}

type Constraint interface {
	~int
}
`

func checkAPI(t *testing.T) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "api.go", apiSource, 0)
	require.NoError(t, err)

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("example.com/api", fset, []*ast.File{f}, nil)
	require.NoError(t, err)
	return pkg
}

func TestRender_SamePackage(t *testing.T) {
	pkg := checkAPI(t)
	ifaces, err := Lookup(pkg, []string{"Store", "Reader"})
	require.NoError(t, err)

	src, err := Render(pkg.Path(), pkg.Name(), []byte("// Copyright test\n"), ifaces)
	require.NoError(t, err)
	out := string(src)

	_, err = parser.ParseFile(token.NewFileSet(), "doubles_gen.go", src, parser.AllErrors)
	require.NoError(t, err, out)

	assert.Regexp(t, `^// Copyright test\n\n// Code generated by doublegen. DO NOT EDIT.\n\npackage api\n`, out)
	assert.Contains(t, out, `"github.com/lwoggardner/autodouble/double"`)
	assert.Contains(t, out, `"io"`)
	assert.Contains(t, out, "type StoreDouble struct {\n\t*double.TestDouble\n}")
	assert.Contains(t, out, "double.NewDouble(t, (*Store)(nil), configurators...)")
	assert.Contains(t, out, "double.Register[Store](func(t double.T, configurators ...func(*double.TestDouble)) Store {")
	assert.Contains(t, out, "func (d *StoreDouble) Get(key string) (r0 []byte, r1 error) {\n"+
		"\td.TestDouble.T().Helper()\n"+
		"\treturns := d.Invoke(\"Get\", key)\n"+
		"\tr0, _ = returns[0].([]byte)\n"+
		"\tr1, _ = returns[1].(error)\n"+
		"\treturn\n}")
	assert.Contains(t, out, "func (d *StoreDouble) Put(key string, r io.Reader) (r0 error) {")
	assert.Contains(t, out, "func (d *StoreDouble) Keys(prefix string, limit ...int) (r0 []string) {")
	assert.Contains(t, out, `d.Invoke("Keys", prefix, limit)`)
	assert.Contains(t, out, "func (d *StoreDouble) Close() {\n\td.TestDouble.T().Helper()\n\td.Invoke(\"Close\")\n}")
	assert.Contains(t, out, "func (d *StoreDouble) unexported(p0 int, p1 string) (r0 int) {")
	assert.Contains(t, out, "func (d *ReaderDouble) Read(p []byte) (r0 int, r1 error) {")
	assert.Contains(t, out, "func (d *ReaderDouble) Peek(p0 int) (r0 byte) {")
}

func TestRender_OtherPackageQualifiesTypes(t *testing.T) {
	pkg := checkAPI(t)
	ifaces, err := Lookup(pkg, []string{"Reader"})
	require.NoError(t, err)

	src, err := Render("", "mocks", nil, ifaces)
	require.NoError(t, err)
	out := string(src)

	assert.Regexp(t, `^// Code generated by doublegen. DO NOT EDIT.\n\npackage mocks\n`, out)
	assert.Contains(t, out, `"example.com/api"`)
	assert.Contains(t, out, "double.NewDouble(t, (*api.Reader)(nil), configurators...)")
	assert.Contains(t, out, "double.Register[api.Reader]")
	assert.Contains(t, out, "type ReaderDouble struct")
}

func TestRender_UnexportedMethodInOtherPackage(t *testing.T) {
	pkg := checkAPI(t)
	ifaces, err := Lookup(pkg, []string{"Store"})
	require.NoError(t, err)

	_, err = Render("", "mocks", nil, ifaces)

	assert.ErrorContains(t, err, "unexported method unexported")
}

func TestRender_ConstraintInterface(t *testing.T) {
	pkg := checkAPI(t)
	ifaces, err := Lookup(pkg, []string{"Constraint"})
	require.NoError(t, err)

	_, err = Render(pkg.Path(), pkg.Name(), nil, ifaces)

	assert.ErrorContains(t, err, "not an interface with only methods")
}

func TestLookup_Errors(t *testing.T) {
	pkg := checkAPI(t)

	tests := map[string]string{
		"Missing":        "no type Missing",
		"NotAnInterface": "is not an interface",
		"Generic":        "generic interfaces are not supported",
	}
	for name, msg := range tests {
		_, err := Lookup(pkg, []string{name})
		assert.ErrorContains(t, err, msg, name)
	}
}

func TestImportSet_UniqueNames(t *testing.T) {
	s := newImportSet("example.com/self")

	assert.Equal(t, "double", s.add(DoublePackage, "double"))
	assert.Equal(t, "double2", s.add("example.com/other/double", "double"))
	assert.Equal(t, "double2", s.add("example.com/other/double", "double"))
	assert.Equal(t, "", s.qualifier(types.NewPackage("example.com/self", "self")))

	imports := s.sorted()
	require.Len(t, imports, 2)
	assert.Equal(t, "double2", imports[0].Alias())
	assert.Equal(t, "", imports[1].Alias())
}
