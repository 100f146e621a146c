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

package emit

import "github.com/vvsql/vvsql/model"

// Metadata is the structural summary accompanying every emitted document
// (spec.md §7: "rows, columns, viz_type, layers, warnings").
type Metadata struct {
	Rows     int             `json:"rows"`
	Columns  []string        `json:"columns"`
	VizType  string          `json:"viz_type"`
	Layers   int             `json:"layers"`
	Warnings []model.Warning `json:"warnings"`
}
