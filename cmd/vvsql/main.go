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

// Command vvsql compiles vvSQL queries into Vega-Lite documents, per
// the CLI surface of spec.md §6.
package main

import (
	"errors"
	"os"
)

func main() {
	os.Exit(Main())
}

// Main builds and runs the root command, returning the process exit
// code: 0 on success, 1 on any reported error, 2 on invalid invocation.
func Main() int {
	cmd := newRootCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if errors.Is(err, errInvalidInvocation) {
		cmd.PrintErrln(err)
		return 2
	}
	cmd.PrintErrln(err)
	return 1
}
