// Copyright (c) 2026 Inkshelf. All rights reserved.

package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf/pkg/pointer"
)

type document struct {
	Name  Field[string] `json:"name"`
	Count Field[int]    `json:"count"`
}

func TestField_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		nameSet   bool
		nameValue *string
		countSet  bool
	}{
		{"absent_keys_stay_unset", `{}`, false, nil, false},
		{"explicit_null_is_set_without_value", `{"name": null}`, true, nil, false},
		{"value_is_set", `{"name": "Dune", "count": 3}`, true, pointer.To("Dune"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc document
			require.NoError(t, json.Unmarshal([]byte(tt.body), &doc))

			assert.Equal(t, tt.nameSet, doc.Name.Set)
			assert.Equal(t, tt.nameValue, doc.Name.Value)
			assert.Equal(t, tt.countSet, doc.Count.Set)
		})
	}
}

func TestField_Unmarshal_TypeMismatch(t *testing.T) {
	var doc document
	assert.Error(t, json.Unmarshal([]byte(`{"count": "three"}`), &doc))
}

func TestField_Apply(t *testing.T) {
	target := "before"

	Field[string]{}.Apply(&target)
	assert.Equal(t, "before", target, "unset field must not touch the target")

	Field[string]{Set: true, Value: pointer.To("after")}.Apply(&target)
	assert.Equal(t, "after", target)

	Field[string]{Set: true}.Apply(&target)
	assert.Empty(t, target, "explicit null writes the zero value")
}

func TestField_ApplyPtr(t *testing.T) {
	target := pointer.To("before")

	Field[string]{}.ApplyPtr(&target)
	require.NotNil(t, target)
	assert.Equal(t, "before", *target)

	Field[string]{Set: true, Value: pointer.To("after")}.ApplyPtr(&target)
	require.NotNil(t, target)
	assert.Equal(t, "after", *target)

	Field[string]{Set: true}.ApplyPtr(&target)
	assert.Nil(t, target, "explicit null clears the pointer")
}

