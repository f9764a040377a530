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

// Package generic registers one generic benchmark definition for two
// element types.
package generic

import (
	"dirpx.dev/bench"
	"dirpx.dev/bench/apis"
)

// Number is the element constraint of the sum benchmark.
type Number interface {
	~int | ~float64
}

// SumTag identifies one instantiation of the sum benchmark.
type SumTag[T Number] struct{}

var (
	// Int is the sum benchmark over ints.
	Int = register[int]()
	// Float is the sum benchmark over float64s.
	Float = register[float64]()
)

var sink any

func register[T Number]() apis.Entry {
	xs := make([]T, 64)
	for i := range xs {
		xs[i] = T(i)
	}
	return bench.Runtime[SumTag[T]](func(b bench.Bencher) {
		b.SampleCount(10).SampleSize(4).Bench(func() { sink = sum(xs) })
	}, bench.Named("sum"))
}

func sum[T Number](xs []T) T {
	var total T
	for _, x := range xs {
		total += x
	}
	return total
}
