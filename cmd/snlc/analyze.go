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
	"os"

	"github.com/spf13/cobra"

	"github.com/snl-lang/snl/snl"
)

func newAnalyzeCmd(flags *runtimeFlags) *cobra.Command {
	var symbols bool

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "lex, parse, and semantically analyze an SNL source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			report, err := snl.Analyze(args[0], src)
			if err != nil {
				return err
			}

			if !symbols {
				report.Symbols = nil
			}

			if flags.format == "yaml" {
				out, err := report.YAML()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), report.Text())
			}

			if len(report.Errors) > 0 {
				return fmt.Errorf("%d semantic error(s)", len(report.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&symbols, "symbols", false, "include the full symbol table in the report (yaml format only; the text listing is unchanged)")
	return cmd
}
