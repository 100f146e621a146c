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

import (
	"sort"

	"github.com/vvsql/vvsql/model"
)

// themeCatalog maps each named theme of spec.md §3 to the base "config"
// block it contributes (spec.md §4.6: "a small catalog maps theme name
// to a config block; overrides merge on top").
var themeCatalog = map[string]func() *OrderedMap{
	"minimal": func() *OrderedMap {
		c := NewOrderedMap()
		view := NewOrderedMap()
		view.Set("stroke", "transparent")
		c.Set("view", view)
		axis := NewOrderedMap()
		axis.Set("grid", true)
		axis.Set("domain", false)
		c.Set("axis", axis)
		return c
	},
	"classic": func() *OrderedMap {
		c := NewOrderedMap()
		axis := NewOrderedMap()
		axis.Set("grid", false)
		axis.Set("domain", true)
		c.Set("axis", axis)
		return c
	},
	"gray": func() *OrderedMap {
		c := NewOrderedMap()
		view := NewOrderedMap()
		view.Set("fill", "#EBEBEB")
		c.Set("view", view)
		axis := NewOrderedMap()
		axis.Set("grid", true)
		axis.Set("gridColor", "#FFFFFF")
		axis.Set("domain", false)
		c.Set("axis", axis)
		return c
	},
	"bw": func() *OrderedMap {
		c := NewOrderedMap()
		axis := NewOrderedMap()
		axis.Set("grid", true)
		axis.Set("gridColor", "#EBEBEB")
		axis.Set("domain", true)
		c.Set("axis", axis)
		return c
	},
	"dark": func() *OrderedMap {
		c := NewOrderedMap()
		background := "#1F1F1F"
		c.Set("background", background)
		view := NewOrderedMap()
		view.Set("stroke", "#4D4D4D")
		c.Set("view", view)
		axis := NewOrderedMap()
		axis.Set("domainColor", "#B3B3B3")
		axis.Set("gridColor", "#4D4D4D")
		axis.Set("labelColor", "#E6E6E6")
		axis.Set("titleColor", "#E6E6E6")
		c.Set("axis", axis)
		return c
	},
	"void": func() *OrderedMap {
		c := NewOrderedMap()
		view := NewOrderedMap()
		view.Set("stroke", "transparent")
		c.Set("view", view)
		axis := NewOrderedMap()
		axis.Set("domain", false)
		axis.Set("grid", false)
		axis.Set("ticks", false)
		axis.Set("labels", false)
		axis.Set("title", nil)
		c.Set("axis", axis)
		return c
	},
}

// configForTheme resolves a Theme to its final "config" object: the
// catalog preset for its name (falling back to an empty config for an
// unrecognized name, non-fatally), with Overrides shallow-merged on top
// as an opaque mapping (DESIGN.md: overrides are not interpreted key by
// key, only merged one level deep).
func configForTheme(th *model.Theme) (*OrderedMap, *model.Warning) {
	var warning *model.Warning
	base, ok := themeCatalog[th.Name]
	var cfg *OrderedMap
	if ok {
		cfg = base()
	} else {
		cfg = NewOrderedMap()
		warning = &model.Warning{
			Code:    "unknown-theme",
			Message: "theme \"" + th.Name + "\" is not recognized; no preset config applied",
			Context: "THEME " + th.Name,
		}
	}
	keys := make([]string, 0, len(th.Overrides))
	for k := range th.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cfg.Set(k, th.Overrides[k])
	}
	return cfg, warning
}
