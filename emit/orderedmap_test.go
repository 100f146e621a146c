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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedMapMarshalsInInsertionOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"b":1,"a":2,"c":3}`, string(b))
}

func TestOrderedMapSetTwiceKeepsOriginalPosition(t *testing.T) {
	m := NewOrderedMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 99)

	require.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	require.Equal(t, 99, v)
}

func TestOrderedMapDeleteRemovesKeyAndOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Delete("a")

	require.False(t, m.Has("a"))
	require.Equal(t, []string{"b"}, m.Keys())
}

func TestCanonicalOrderReordersAndAppendsExtrasSorted(t *testing.T) {
	m := NewOrderedMap()
	m.Set("zeta", 1)
	m.Set("type", 2)
	m.Set("field", 3)

	out := canonicalOrder(m, channelOrder)
	require.Equal(t, []string{"field", "type", "zeta"}, out.Keys())
}
