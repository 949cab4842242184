// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// outputFormat is a pflag.Value so an invalid --format is rejected at flag
// parse time rather than deep inside each subcommand's RunE.
type outputFormat string

func (f *outputFormat) String() string { return string(*f) }
func (f *outputFormat) Type() string   { return "format" }

func (f *outputFormat) Set(s string) error {
	switch s {
	case "text", "yaml":
		*f = outputFormat(s)
		return nil
	default:
		return fmt.Errorf("unsupported --format %q (want text or yaml)", s)
	}
}

// runtimeFlags holds the flags shared across every stage subcommand.
type runtimeFlags struct {
	format outputFormat // "text" or "yaml"
}

func newRootCmd() *cobra.Command {
	flags := &runtimeFlags{format: "text"}

	root := &cobra.Command{
		Use:   "snlc",
		Short: "snlc lexes, parses, and analyzes SNL programs",
		Long: `snlc is a front end for the SNL teaching language: a scanner,
a recursive-descent parser, and a scoped-symbol-table semantic analyzer.

Each subcommand runs the pipeline up to one stage and prints its result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().VarP(&flags.format, "format", "f", `output format: "text" or "yaml"`)

	root.AddCommand(
		newLexCmd(flags),
		newParseCmd(flags),
		newAnalyzeCmd(flags),
	)
	return root
}

// This blank assignment only keeps the pflag.Value contract checked at
// compile time; VarP above is what wires it into the flag set.
var _ pflag.Value = (*outputFormat)(nil)
