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

package splitter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvsql/vvsql/splitter"
)

func TestSplitBasic(t *testing.T) {
	data, viz := splitter.Split("SELECT d, r FROM t VISUALISE AS PLOT WITH line USING x=d,y=r")
	require.Equal(t, "SELECT d, r FROM t", data)
	require.True(t, strings.HasPrefix(strings.ToUpper(viz), "VISUALISE AS"))
}

func TestSplitTrimsTrailingSemicolon(t *testing.T) {
	data, viz := splitter.Split("SELECT 1; VISUALIZE AS TABLE")
	require.Equal(t, "SELECT 1", data)
	require.NotEmpty(t, viz)
}

func TestSplitNoMarkerReturnsWholeTextAsData(t *testing.T) {
	data, viz := splitter.Split("SELECT 1 FROM t")
	require.Equal(t, "SELECT 1 FROM t", data)
	require.Empty(t, viz)
}

func TestSplitIgnoresMarkerInsideStringLiteral(t *testing.T) {
	data, viz := splitter.Split(`SELECT 'please VISUALISE AS nothing' AS note VISUALISE AS PLOT WITH point USING x=a,y=b`)
	require.Contains(t, data, "please VISUALISE AS nothing")
	require.True(t, strings.HasPrefix(viz, "VISUALISE AS PLOT"))
}

func TestSplitIgnoresMarkerInsideLineComment(t *testing.T) {
	data, viz := splitter.Split("SELECT 1 -- VISUALISE AS PLOT in a comment\nFROM t VISUALISE AS TABLE")
	require.Contains(t, data, "-- VISUALISE AS PLOT in a comment")
	require.True(t, strings.HasPrefix(viz, "VISUALISE AS TABLE"))
}

func TestSplitIgnoresMarkerInsideBlockComment(t *testing.T) {
	data, viz := splitter.Split("SELECT 1 /* VISUALISE AS PLOT */ FROM t VISUALISE AS MAP")
	require.Contains(t, data, "/* VISUALISE AS PLOT */")
	require.True(t, strings.HasPrefix(viz, "VISUALISE AS MAP"))
}

func TestSplitCaseInsensitiveMarker(t *testing.T) {
	_, viz := splitter.Split("SELECT 1 visualize AS table")
	require.NotEmpty(t, viz)
}

func TestSplitKeepsMultipleVizBlocksTogether(t *testing.T) {
	data, viz := splitter.Split("SELECT 1 VISUALISE AS PLOT WITH point USING x=a,y=b VISUALISE AS TABLE")
	require.Equal(t, "SELECT 1", data)
	require.Equal(t, 2, strings.Count(strings.ToUpper(viz), "VISUALISE AS"))
}
