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
	"gopkg.in/yaml.v3"

	"github.com/snl-lang/snl/ast"
	"github.com/snl-lang/snl/snl"
)

type parseResult struct {
	File string `yaml:"file"`
	Tree string `yaml:"ast"`
}

func newParseCmd(flags *runtimeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "parse an SNL source file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			f, err := snl.Parse(args[0], src)
			if err != nil {
				return err
			}

			tree := ast.Fprint(f)
			if flags.format == "yaml" {
				b, err := yaml.Marshal(parseResult{File: args[0], Tree: tree})
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(b))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), tree)
			return nil
		},
	}
}
