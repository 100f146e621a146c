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

// topLevelLabelKeys are LABEL keys that address the document itself
// rather than an encoding channel (spec.md §4.6).
var topLevelLabelKeys = map[string]bool{
	"title": true, "subtitle": true, "caption": true,
}

// applyChannelLabels sets each non-top-level LABEL entry as the "title"
// of its corresponding encoding channel, on every layer (spec.md §4.6:
// "Labels override axis titles per encoding channel on every layer").
// It must run before coord lowering (applyFlip in particular), so a
// title assigned to an aesthetic travels with that aesthetic's channel
// object through any later swap.
func applyChannelLabels(labels map[string]string, enc *OrderedMap) {
	for aes, title := range labels {
		if topLevelLabelKeys[aes] {
			continue
		}
		channel := channelFor(aes)
		v, ok := enc.Get(channel)
		if !ok {
			continue
		}
		chanObj, ok := v.(*OrderedMap)
		if !ok {
			continue
		}
		chanObj.Set("title", title)
	}
}
