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

package errors_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvsql/vvsql/errors"
	"github.com/vvsql/vvsql/token"
)

func TestListAppendFlattensNestedLists(t *testing.T) {
	inner := errors.Append(nil, errors.NewParseError(token.Pos{Line: 1, Column: 1}, "WITH", "unexpected token"))
	outer := errors.Append(nil, inner.AsError())
	outer = errors.Append(outer, errors.NewModelError(token.Pos{Line: 2, Column: 1}, "SCALE color", "duplicate scale"))

	require.Equal(t, 2, outer.Len())
}

func TestListSortOrdersByPosition(t *testing.T) {
	list := errors.Append(nil, errors.NewParseError(token.Pos{Line: 5, Column: 1}, "", "late"))
	list = errors.Append(list, errors.NewParseError(token.Pos{Line: 1, Column: 1}, "", "early"))
	list.Sort()

	errs := list.Errs()
	require.Len(t, errs, 2)
	require.Equal(t, 1, errs[0].Position().Line)
	require.Equal(t, 5, errs[1].Position().Line)
}

func TestNilListIsEmptyError(t *testing.T) {
	var list *errors.List
	require.Nil(t, list.AsError())
	require.Equal(t, 0, list.Len())
}

func TestBackendErrorMessage(t *testing.T) {
	err := errors.NewBackendError("duckdb", "SELECT * FROM t", "relation %q does not exist", "t")
	require.Contains(t, err.Error(), "duckdb")
	require.Contains(t, err.Error(), "does not exist")
}
