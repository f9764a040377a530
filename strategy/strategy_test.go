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

package strategy_test

import (
	"reflect"

	"dirpx.dev/bench/apis"
)

func noop(apis.Context) {}

// entryFor builds a registrable entry whose identity is T.
func entryFor[T any](name string) apis.Entry {
	id := apis.NewID(reflect.TypeFor[T]())
	return apis.Entry{
		Name:  name,
		GetID: func() apis.ID { return id },
		Loop:  apis.StaticLoop(noop),
	}
}
