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
	"github.com/spf13/cobra"
)

// newRunCmd is exec's unattended sibling: it requires --reader and
// --output/--writer rather than falling back to stdin/stdout, so a
// misconfigured cron job or pipeline step fails fast with exit code 2
// instead of silently blocking on stdin.
func newRunCmd(flags *rootFlags) *cobra.Command {
	exec := newExecCmd(flags)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "like exec, but requires --reader and --output/--writer (no stdin/stdout fallback)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.reader == "" {
				return usageErrorf("run requires --reader")
			}
			if flags.output == "" && flags.writer == "" {
				return usageErrorf("run requires --output or --writer")
			}
			return exec.RunE(cmd, args)
		},
	}
	return cmd
}
