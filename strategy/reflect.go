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
	"path"
	"reflect"
	"sync"

	"dirpx.dev/bench/apis"
	uref "dirpx.dev/bench/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives labels from the
// entry's tag type, with memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback that computes "pkg.Type" from the
// tag type. It strips generic instantiation parameters, so every
// instantiation of one generic definition shares a label.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = reflectStrategy{}

// typeLabelCache caches derived labels by tag type.
var typeLabelCache sync.Map // key: reflect.Type, val: string

// TryResolve computes the label for e's tag type.
func (reflectStrategy) TryResolve(e apis.Entry, _ apis.Config) (string, bool) {
	t := e.ID().Type()
	if t == nil {
		return "", false
	}
	label := byType(t)
	return label, label != ""
}

// byType derives the label for t with memoization.
func byType(t reflect.Type) string {
	if v, ok := typeLabelCache.Load(t); ok {
		return v.(string)
	}

	name, _ := uref.SplitTypeParams(t.Name())
	if p := t.PkgPath(); p != "" && name != "" {
		name = path.Base(p) + "." + name
	}

	typeLabelCache.Store(t, name)
	return name
}
