/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package beta registers benchmark fixtures used by the bench tests.
package beta

import (
	"dirpx.dev/bench"
)

// Tag identifies Entry.
type Tag struct{}

var sink int

// Entry is textually identical to alpha.Entry.
var Entry = bench.Static[Tag](func(c bench.Context) {
	c.Bench(func() { sink++ })
}, bench.Named("dup"))
