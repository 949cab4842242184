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

	"github.com/snl-lang/snl/snl"
)

type lexedToken struct {
	Pos string `yaml:"pos"`
	Kind string `yaml:"kind"`
	Lit  string `yaml:"lit,omitempty"`
}

func newLexCmd(flags *runtimeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lex FILE",
		Short: "tokenize an SNL source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			toks, err := snl.Lex(args[0], src)
			if err != nil {
				return err
			}

			rows := make([]lexedToken, len(toks.Kinds))
			for i := range toks.Kinds {
				rows[i] = lexedToken{
					Pos:  toks.Positions[i].String(),
					Kind: toks.Kinds[i].String(),
					Lit:  toks.Lits[i],
				}
			}

			if flags.format == "yaml" {
				b, err := yaml.Marshal(rows)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(b))
				return nil
			}

			for _, r := range rows {
				lit := r.Lit
				if r.Kind == "EOF" && lit == "" {
					lit = "EOF"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "(%s, %s)\n", r.Kind, lit)
			}
			return nil
		},
	}
}
