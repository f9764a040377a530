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

// Package identity derives benchmark identities from tag types.
//
// Every benchmark definition declares its own tag type, a named zero-sized
// type that exists only to be distinct:
//
//	type sortTag struct{}
//	type sumTag[T any] struct{}
//
// The identity of the definition is the tag type itself. Two definitions can
// have identical bodies, names and even source positions (two instantiations
// of one generic definition), yet their tag types differ, so their IDs differ.
package identity

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/config"
	uref "dirpx.dev/bench/utils/reflect"
)

var (
	// ErrUnnamedTag is returned when a tag type is not a named type.
	ErrUnnamedTag = errors.New("bench(identity): tag type must be a named type")
	// ErrBuiltinTag is returned when a tag type is a predeclared type.
	ErrBuiltinTag = errors.New("bench(identity): tag type must be declared in a package")
)

// ForType returns the identity for tag type t, normalized according to cfg.
// Pointers to a tag type resolve to the tag type itself.
func ForType(t reflect.Type, cfg apis.Config) (apis.ID, error) {
	nt, err := uref.Normalize(t, cfg)
	switch {
	case err == nil:
		return apis.NewID(nt), nil
	case errors.Is(err, uref.ErrReflectTypeBuiltin):
		return apis.ID{}, fmt.Errorf("%w: %v", ErrBuiltinTag, t)
	case errors.Is(err, uref.ErrReflectTypeNotNamed):
		return apis.ID{}, fmt.Errorf("%w: %v", ErrUnnamedTag, t)
	default:
		return apis.ID{}, fmt.Errorf("bench(identity): %w", err)
	}
}

// Of returns the identity for tag type T using config.DefaultConfig().
// Use ForType to normalize with another configuration.
// It panics if T cannot serve as a tag type.
func Of[T any]() apis.ID {
	id, err := ForType(reflect.TypeFor[T](), config.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return id
}

// Accessor returns an identity accessor for tag type T, suitable for
// apis.Entry.GetID. The identity is computed once, when Accessor is called,
// so an invalid tag type panics at registration rather than at run time.
func Accessor[T any]() func() apis.ID {
	id := Of[T]()
	return func() apis.ID { return id }
}
