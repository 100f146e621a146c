// Copyright 2024 The vvSQL Authors
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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vvsql/vvsql/adapter"
	"github.com/vvsql/vvsql/adapter/preload"
	"github.com/vvsql/vvsql/compiler"
	"github.com/vvsql/vvsql/internal/config"
)

// errInvalidInvocation marks a usage error (exit code 2) as distinct
// from an error reported by the pipeline itself (exit code 1).
var errInvalidInvocation = errors.New("invalid invocation")

func usageErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidInvocation, fmt.Sprintf(format, args...))
}

type rootFlags struct {
	reader     string
	writer     string
	output     string
	format     string
	configFile string
	preload    []string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "vvsql",
		Short: "vvsql compiles a SQL + Grammar-of-Graphics visualization query into a Vega-Lite document",
		Long: `vvsql reads a query combining a relational data sub-language with a
visualization sub-language introduced by VISUALISE AS / VISUALIZE AS, and
compiles it into a Vega-Lite v5 chart specification.`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.reader, "reader", "", "read the query from this file instead of stdin/args")
	pf.StringVar(&flags.writer, "writer", "", "alias of --output")
	pf.StringVar(&flags.output, "output", "", "write the result to this file instead of stdout")
	pf.StringVar(&flags.format, "format", "json", "output format: json or human")
	pf.StringVar(&flags.configFile, "config", "", "path to a YAML config file")
	pf.StringArrayVar(&flags.preload, "preload", nil, "PATH or PATH:table to register before executing")
	// config.BindFlags registers --conn-uri and the rest of the layered
	// config's overridable settings; resolved via loadConfig, not a
	// dedicated rootFlags field, so there is exactly one flag per name.
	config.BindFlags(pf)

	cmd.AddCommand(
		newParseCmd(flags),
		newValidateCmd(flags),
		newExecCmd(flags),
		newRunCmd(flags),
	)
	return cmd
}

// readQuery resolves the query text for a command: flags.reader if set,
// else the first positional argument, else stdin.
func readQuery(flags *rootFlags, args []string) (string, error) {
	if flags.reader != "" {
		b, err := os.ReadFile(flags.reader)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", usageErrorf("no query given: pass it as an argument, --reader FILE, or on stdin")
	}
	return string(b), nil
}

func writeOutput(flags *rootFlags, data []byte) error {
	dest := flags.output
	if dest == "" {
		dest = flags.writer
	}
	if dest == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(dest, append(data, '\n'), 0o644)
}

func newCompiler() *compiler.Compiler {
	return compiler.New(adapter.NewDuckDB())
}

func loadConfig(flags *rootFlags, fs *pflag.FlagSet) (*config.Config, error) {
	return config.Load(flags.configFile, fs)
}

func preloadSpecs(flags *rootFlags) []preload.Spec {
	specs := make([]preload.Spec, len(flags.preload))
	for i, p := range flags.preload {
		specs[i] = preload.ParseSpec(p)
	}
	return specs
}
