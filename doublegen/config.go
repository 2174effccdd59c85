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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name cmd/doublegen looks for.
const DefaultConfigFile = ".doublegen.yaml"

// Config is the set of jobs in a doublegen YAML file.
type Config struct {
	Doubles []Job `yaml:"doubles"`
}

// A Job generates one output file from interfaces in one package.
type Job struct {
	// Pattern is a go/packages pattern that must match exactly one package.
	Pattern string `yaml:"pattern"`
	// Interfaces are the names of the interfaces to double, in output order.
	Interfaces []string `yaml:"interfaces"`
	// Output is the path of the generated file.
	Output string `yaml:"output"`
	// Package is the package name of the output. Defaults to the interfaces' package.
	Package string `yaml:"package,omitempty"`
	// Header is the path of a file whose contents head the output, eg a license.
	Header string `yaml:"header,omitempty"`
	// Dir is the directory Pattern is relative to. Defaults to the working directory.
	Dir string `yaml:"-"`
}

// Validate reports the first missing field of j.
func (j Job) Validate() error {
	switch {
	case j.Pattern == "":
		return errors.New("doublegen: job has no pattern")
	case len(j.Interfaces) == 0:
		return fmt.Errorf("doublegen: job for %s has no interfaces", j.Pattern)
	case j.Output == "":
		return fmt.Errorf("doublegen: job for %s has no output", j.Pattern)
	}
	return nil
}

/*
LoadConfig reads the jobs in the YAML file at path.

Relative Output and Header paths, and Patterns, are relative to the directory of path.
Unknown fields are an error.
*/
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("doublegen: reading config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("doublegen: parsing config %s: %w", path, err)
	}
	if len(cfg.Doubles) == 0 {
		return nil, fmt.Errorf("doublegen: config %s has no doubles", path)
	}

	dir := filepath.Dir(path)
	for i := range cfg.Doubles {
		job := &cfg.Doubles[i]
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("%w (doubles[%d] in %s)", err, i, path)
		}
		job.Output = resolve(dir, job.Output)
		if job.Header != "" {
			job.Header = resolve(dir, job.Header)
		}
		job.Dir = dir
	}
	return &cfg, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
