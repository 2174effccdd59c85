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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, DefaultConfigFile, `
doubles:
  - pattern: ./examples
    interfaces: [QuoteGenerator, Imdb]
    output: examples/doubles_gen.go
    header: hack/boilerplate.go.txt
  - pattern: example.com/api
    interfaces:
      - Store
    output: /abs/mocks/store.go
    package: mocks
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Doubles, 2)

	first := cfg.Doubles[0]
	assert.Equal(t, "./examples", first.Pattern)
	assert.Equal(t, dir, first.Dir)
	assert.Equal(t, []string{"QuoteGenerator", "Imdb"}, first.Interfaces)
	assert.Equal(t, filepath.Join(dir, "examples", "doubles_gen.go"), first.Output)
	assert.Equal(t, filepath.Join(dir, "hack", "boilerplate.go.txt"), first.Header)
	assert.Empty(t, first.Package)

	second := cfg.Doubles[1]
	assert.Equal(t, "/abs/mocks/store.go", second.Output)
	assert.Equal(t, "mocks", second.Package)
	assert.Empty(t, second.Header)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"UnknownField", "doubles:\n  - pattern: .\n    interfaces: [A]\n    output: a.go\n    colour: red\n", "field colour not found"},
		{"NoDoubles", "doubles: []\n", "has no doubles"},
		{"NoPattern", "doubles:\n  - interfaces: [A]\n    output: a.go\n", "no pattern"},
		{"NoInterfaces", "doubles:\n  - pattern: .\n    output: a.go\n", "no interfaces"},
		{"NoOutput", "doubles:\n  - pattern: .\n    interfaces: [A]\n", "no output"},
		{"BadYAML", "doubles: [", "parsing config"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), DefaultConfigFile, test.content)

			_, err := LoadConfig(path)

			assert.ErrorContains(t, err, test.msg)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate_ExamplesAreUpToDate(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	out := filepath.Join(t.TempDir(), "doubles_gen.go")

	n, err := Generate(context.Background(), Job{
		Dir:        "../examples",
		Pattern:    ".",
		Interfaces: []string{"QuoteGenerator", "Imdb", "Sage"},
		Output:     out,
		Header:     "../hack/boilerplate.go.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	expected, err := os.ReadFile("../examples/doubles_gen.go")
	require.NoError(t, err)
	actual, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(actual), "examples/doubles_gen.go is stale, run go generate ./examples")
}

func TestGenerate_InvalidJob(t *testing.T) {
	_, err := Generate(context.Background(), Job{Pattern: "."})

	assert.ErrorContains(t, err, "no interfaces")
}
