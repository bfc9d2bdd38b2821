// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package patch supports partial JSON updates.

A [Field] remembers whether its key appeared in the request body, so an
update handler can distinguish "leave this column alone" from "set it to
null". Entity packages declare a patch type made of Fields and merge it
onto the stored record before validating the result as a whole.
*/
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is an optional JSON value that tracks its own presence.
//
// The zero value means the key was absent from the document. After
// unmarshalling, Set is true, and Value is nil exactly when the client
// sent an explicit null.
type Field[T any] struct {
	Set   bool
	Value *T
}

var nullLiteral = []byte("null")

// UnmarshalJSON implements [json.Unmarshaler]. encoding/json only calls it
// for keys present in the document, which is what flips Set.
func (field *Field[T]) UnmarshalJSON(data []byte) error {
	field.Set = true
	if bytes.Equal(data, nullLiteral) {
		field.Value = nil
		return nil
	}

	value := new(T)
	if err := json.Unmarshal(data, value); err != nil {
		return err
	}
	field.Value = value
	return nil
}

// Apply overwrites target when the field was supplied. An explicit null
// writes the zero value, leaving it to the caller's validation to decide
// whether that is legal.
func (field Field[T]) Apply(target *T) {
	if !field.Set {
		return
	}
	if field.Value == nil {
		var zero T
		*target = zero
		return
	}
	*target = *field.Value
}

// ApplyPtr overwrites a nullable target when the field was supplied; an
// explicit null clears it.
func (field Field[T]) ApplyPtr(target **T) {
	if field.Set {
		*target = field.Value
	}
}
