package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanBlock(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanBlock("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanBlock("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanBlock(`  {"a":1} `))
}

func TestFirstObject(t *testing.T) {
	obj, ok := FirstObject(`Sure! {"a":{"b":"}"},"c":[1]} trailing {"x":1}`)
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":"}"},"c":[1]}`, obj)

	_, ok = FirstObject("no braces here")
	assert.False(t, ok)

	_, ok = FirstObject(`{"open": true`)
	assert.False(t, ok)
}

func TestExtract(t *testing.T) {
	doc, err := Extract(`{"scores":[0.1]}`)
	require.NoError(t, err)
	assert.Equal(t, `{"scores":[0.1]}`, doc)

	doc, err = Extract("Here you go:\n{\"scores\":[0.1]}\nThanks")
	require.NoError(t, err)
	assert.Equal(t, `{"scores":[0.1]}`, doc)

	_, err = Extract("not json at all")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestDecode_Schema(t *testing.T) {
	schema := MustSchema(`{"type":"object","required":["n"],"properties":{"n":{"type":"number"}}}`)

	var out struct {
		N float64 `json:"n"`
	}
	require.NoError(t, Decode(`{"n": 2.5}`, schema, &out))
	assert.Equal(t, 2.5, out.N)

	err := Decode(`{"n": "two"}`, schema, &out)
	assert.ErrorIs(t, err, ErrSchemaInvalid)

	err = Decode(`[1,2]`, schema, &out)
	assert.ErrorIs(t, err, ErrSchemaInvalid)
}
