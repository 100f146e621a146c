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

// Package adapter implements the Data Adapter contract of spec.md §4.5:
// execute(data_text, connection_uri) -> Table, plus Supports(connURI)
// for dispatch between backends by connection-URI scheme. The only backend shipped here is
// DuckDB, reached through database/sql the way
// cuelang-cue/cue/build.go's Instance construction reaches the Go
// filesystem through a small interface rather than talking to the OS
// directly.
package adapter

import (
	"context"

	"github.com/vvsql/vvsql/table"
)

// Adapter executes a data-prefix query against one backend and returns
// the resulting Table, with normalized temporal columns (spec.md §4.5).
type Adapter interface {
	// Supports reports whether this adapter recognizes connURI's scheme.
	Supports(connURI string) bool
	// Execute runs dataText against connURI and returns the result table.
	Execute(ctx context.Context, dataText, connURI string) (*table.Table, error)
}
