// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/countervm/consts"

// Typed is implemented by every object that is registered with a
// [TypeParser] (actions, auth and action outputs).
type Typed interface {
	GetTypeID() uint8
}

type decoder[T any] struct {
	f func(*Packer) (T, error)
}

// TypeParser tracks which types were registered and how to decode them.
type TypeParser[T Typed] struct {
	indexToDecoder map[uint8]*decoder[T]
}

// NewTypeParser returns an instance of a Typeparser with generic type [T].
func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]*decoder[T]{},
	}
}

// Register registers a new type into TypeParser [p]. Registers the type by
// using the type ID of [instance] as the key and [f] as the decoder.
//
// If the type ID is already registered, Register returns an error.
func (p *TypeParser[T]) Register(instance T, f func(*Packer) (T, error)) error {
	if len(p.indexToDecoder) == int(consts.MaxUint8)+1 {
		return ErrTooManyItems
	}
	id := instance.GetTypeID()
	if _, ok := p.indexToDecoder[id]; ok {
		return ErrDuplicateItem
	}
	p.indexToDecoder[id] = &decoder[T]{f}
	return nil
}

// LookupIndex returns the decoder function associated with [index] in [p].
func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	d, ok := p.indexToDecoder[index]
	if ok {
		return d.f, true
	}
	return nil, false
}

// Unmarshal reads a type ID from [p] and decodes the matching type.
func (p *TypeParser[T]) Unmarshal(r *Packer) (T, error) {
	var empty T
	typeID := r.UnpackByte()
	if err := r.Err(); err != nil {
		return empty, err
	}
	f, ok := p.LookupIndex(typeID)
	if !ok {
		return empty, ErrUnknownType
	}
	return f(r)
}

// UnmarshalBytes decodes a single type from [b] and requires that [b] is fully
// consumed.
func (p *TypeParser[T]) UnmarshalBytes(b []byte) (T, error) {
	var empty T
	r := NewReader(b, len(b))
	v, err := p.Unmarshal(r)
	if err != nil {
		return empty, err
	}
	if !r.Empty() {
		return empty, ErrExtraBytes
	}
	return v, r.Err()
}
