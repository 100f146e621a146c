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

package parser

import (
	"strconv"
	"strings"
)

// parseNumber converts a scanner NUMBER token's text to a float64, and
// reports whether it was written without a decimal point (IsInt on the
// resulting ast.NumberLit).
func parseNumber(text string) (value float64, isInt bool) {
	isInt = !strings.Contains(text, ".")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, isInt
	}
	return f, isInt
}
