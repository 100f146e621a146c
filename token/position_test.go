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

package token

import "testing"

func TestFilePosAt(t *testing.T) {
	src := "VISUALISE AS PLOT\nWITH line USING x=d,y=r\n"
	f := NewFile("", src)

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{9, 1, 10},
		{18, 2, 1},
		{23, 2, 6},
	}
	for _, tt := range tests {
		p := f.PosAt(tt.offset)
		if p.Line != tt.wantLine || p.Column != tt.wantCol {
			t.Errorf("PosAt(%d) = %d:%d, want %d:%d", tt.offset, p.Line, p.Column, tt.wantLine, tt.wantCol)
		}
	}
}

func TestNoPos(t *testing.T) {
	if NoPos.IsValid() {
		t.Fatal("NoPos must not be valid")
	}
	if NoPos.String() != "-" {
		t.Fatalf("NoPos.String() = %q, want %q", NoPos.String(), "-")
	}
}
