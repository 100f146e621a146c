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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvsql/vvsql/model"
)

func TestConfigForThemeKnownNameHasNoWarning(t *testing.T) {
	cfg, warn := configForTheme(&model.Theme{Name: "minimal", Overrides: map[string]interface{}{}})
	require.Nil(t, warn)
	require.True(t, cfg.Has("view"))
}

func TestConfigForThemeUnknownNameWarnsWithEmptyBase(t *testing.T) {
	cfg, warn := configForTheme(&model.Theme{Name: "psychedelic", Overrides: map[string]interface{}{}})
	require.NotNil(t, warn)
	require.Equal(t, "unknown-theme", warn.Code)
	require.Equal(t, 0, cfg.Len())
}

func TestConfigForThemeOverridesMergeOnTop(t *testing.T) {
	cfg, _ := configForTheme(&model.Theme{Name: "minimal", Overrides: map[string]interface{}{
		"background": "white",
	}})
	bg, ok := cfg.Get("background")
	require.True(t, ok)
	require.Equal(t, "white", bg)
	require.True(t, cfg.Has("view"))
}
