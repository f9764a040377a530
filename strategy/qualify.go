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

package strategy

import (
	"dirpx.dev/bench/apis"
	uref "dirpx.dev/bench/utils/reflect"
)

// Qualify appends the type arguments of id's tag type to label:
// ("sum", sumTag[int]) -> "sum[int]". Package paths inside the arguments are
// shortened to their last element. Non-generic tags return label unchanged.
func Qualify(label string, id apis.ID) string {
	t := id.Type()
	if t == nil {
		return label
	}
	_, args := uref.SplitTypeParams(t.Name())
	if args == "" {
		return label
	}
	return label + "[" + uref.ShortTypeArgs(args) + "]"
}
