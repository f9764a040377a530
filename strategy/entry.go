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
	"strings"

	"dirpx.dev/bench/apis"
)

// NewEntryStrategy creates an apis.Strategy that uses the entry's own Name.
func NewEntryStrategy() apis.Strategy {
	return entryStrategy{}
}

// entryStrategy returns the name recorded by registration code.
type entryStrategy struct{}

// Ensure entryStrategy implements apis.Strategy.
var _ apis.Strategy = entryStrategy{}

// TryResolve returns e.Name when it is not blank.
func (entryStrategy) TryResolve(e apis.Entry, _ apis.Config) (string, bool) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return "", false
	}
	return name, true
}
