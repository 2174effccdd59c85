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

// Command doublegen generates test doubles for interfaces.
//
//	doublegen [pattern] -i Name[,Name...] -o file [-p package] [--header file]
//	doublegen --config .doublegen.yaml
//
// With no interfaces and no --config, .doublegen.yaml in the working directory is used.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lwoggardner/autodouble/doublegen"
)

var generate = doublegen.Generate

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// runMain executes the CLI, exiting non zero on error.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	if err := execute(args, stdout, stderr); err != nil {
		_, _ = fmt.Fprintln(stderr, color.RedString("%v", err))
		exit(1)
	}
}

// execute runs the root command with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

type options struct {
	interfaces []string
	output     string
	pkg        string
	header     string
	config     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "doublegen [pattern]",
		Short:         "Generate test doubles for interfaces",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := opts.jobs(args)
			if err != nil {
				return err
			}
			for _, job := range jobs {
				n, err := generate(cmd.Context(), job)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d doubles from %s -> %s\n",
					color.GreenString("generated"), n, job.Pattern, job.Output)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.interfaces, "interfaces", "i", nil, "interfaces to double, comma separated")
	flags.StringVarP(&opts.output, "output", "o", "", "file to write the doubles to")
	flags.StringVarP(&opts.pkg, "package", "p", "", "package name of the output (default the interfaces' package)")
	flags.StringVar(&opts.header, "header", "", "file whose contents head the output")
	flags.StringVarP(&opts.config, "config", "c", "", "YAML file listing doubles to generate")
	cmd.MarkFlagsMutuallyExclusive("config", "interfaces")
	return cmd
}

// jobs returns the single job described by flags, or the jobs from the config file.
func (o *options) jobs(args []string) ([]doublegen.Job, error) {
	config := o.config
	if config == "" && len(o.interfaces) == 0 {
		if _, err := os.Stat(doublegen.DefaultConfigFile); err == nil {
			config = doublegen.DefaultConfigFile
		}
	}
	if config != "" {
		cfg, err := doublegen.LoadConfig(config)
		if err != nil {
			return nil, err
		}
		return cfg.Doubles, nil
	}

	pattern := "."
	if len(args) > 0 {
		pattern = args[0]
	}
	job := doublegen.Job{Pattern: pattern, Interfaces: o.interfaces, Output: o.output, Package: o.pkg, Header: o.header}
	if err := job.Validate(); err != nil {
		return nil, errors.Join(err, errors.New("doublegen: use -i and -o, or --config"))
	}
	return []doublegen.Job{job}, nil
}
