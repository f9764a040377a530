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
	"reflect"

	"dirpx.dev/bench/apis"
)

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is the explicit fast path: if the entry's tag type implements
// apis.Namer, return its BenchName() and stop the chain.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryResolve checks whether the tag type (value or pointer receiver)
// implements apis.Namer and returns its non-empty BenchName().
func (*namerStrategy) TryResolve(e apis.Entry, _ apis.Config) (string, bool) {
	t := e.ID().Type()
	if t == nil {
		return "", false
	}
	if n, ok := reflect.Zero(t).Interface().(apis.Namer); ok {
		if name := n.BenchName(); name != "" {
			return name, true
		}
	}
	if n, ok := reflect.New(t).Interface().(apis.Namer); ok {
		if name := n.BenchName(); name != "" {
			return name, true
		}
	}
	return "", false
}
