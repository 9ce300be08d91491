// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package optional_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanctorale/sanctorale/pkg/optional"
)

type payload struct {
	Name  optional.Value[string] `json:"name"`
	Score optional.Value[int]    `json:"score"`
	Notes optional.Value[string] `json:"notes"`
}

func TestValue_States(t *testing.T) {
	var got payload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Agnes","score":"high","notes":null}`), &got))

	assert.True(t, got.Name.Present())
	assert.Equal(t, "Agnes", got.Name.V)

	assert.True(t, got.Score.Set)
	assert.True(t, got.Score.Invalid)
	assert.False(t, got.Score.Present())
	assert.Nil(t, got.Score.Ptr())

	assert.True(t, got.Notes.Set)
	assert.True(t, got.Notes.Null)
	assert.Nil(t, got.Notes.Ptr())
}

func TestValue_Absent(t *testing.T) {
	var got payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &got))

	assert.False(t, got.Name.Set)
	assert.False(t, got.Score.Set)
	assert.False(t, got.Notes.Set)
}

func TestConstructors(t *testing.T) {
	value := optional.Of(7)
	require.NotNil(t, value.Ptr())
	assert.Equal(t, 7, *value.Ptr())

	cleared := optional.Null[string]()
	assert.True(t, cleared.Set)
	assert.False(t, cleared.Present())
}
