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

package compiler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvsql/vvsql/compiler"
)

func TestParseOnlyNeverTouchesAdapter(t *testing.T) {
	c := compiler.New() // no adapters registered
	specs, dataText, err := c.Parse("VISUALISE AS PLOT WITH line USING x=d,y=r")
	require.NoError(t, err)
	require.Empty(t, dataText)
	require.Len(t, specs, 1)
	require.Equal(t, "PLOT", string(specs[0].VizType))
}

func TestParseSurfacesParseErrorWithoutPanicking(t *testing.T) {
	c := compiler.New()
	_, _, err := c.Parse("VISUALISE AS PLOT WITH USING x=d")
	require.Error(t, err)
}

func TestParseMultipleVizSpecsInOneQueryAreAllValidated(t *testing.T) {
	c := compiler.New()
	specs, _, err := c.Parse(`
		VISUALISE AS PLOT WITH point USING x=a,y=b
		VISUALIZE AS PLOT WITH line USING x=a,y=b
	`)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	require.Equal(t, "point", string(specs[0].Layers[0].Geom))
	require.Equal(t, "line", string(specs[1].Layers[0].Geom))
}

func TestCompileWithNoDataPrefixSkipsAdapterEntirely(t *testing.T) {
	c := compiler.New()
	res, err := c.Compile(context.Background(), "VISUALISE AS PLOT WITH line USING x=d,y=r", "duckdb://memory")
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	require.NotNil(t, res.Documents[0])
	require.Equal(t, 0, res.Metadata[0].Rows)
}

func TestCompileEmitsOneDocumentPerVizSpecInSourceOrder(t *testing.T) {
	c := compiler.New()
	res, err := c.Compile(context.Background(), `
		VISUALISE AS PLOT WITH line USING x=d,y=r
		VISUALIZE AS PLOT WITH point USING x=d,y=r
	`, "duckdb://memory")
	require.NoError(t, err)
	require.Len(t, res.Specs, 2)
	require.Len(t, res.Documents, 2)
	require.Len(t, res.Metadata, 2)
	require.Equal(t, "line", string(res.Specs[0].Layers[0].Geom))
	require.Equal(t, "point", string(res.Specs[1].Layers[0].Geom))
}

func TestCompileWithUnsupportedConnURIFails(t *testing.T) {
	c := compiler.New()
	_, err := c.Compile(context.Background(), "SELECT 1 AS d, 2 AS r VISUALISE AS PLOT WITH line USING x=d,y=r", "sqlite://memory")
	require.Error(t, err)
}
